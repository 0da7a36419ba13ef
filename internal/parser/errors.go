package parser

import (
	"fmt"

	"bong/internal/diag"
	"bong/internal/source"
	"bong/internal/token"
)

// ErrorKind classifies structural failures.
type ErrorKind uint8

const (
	// ExpectedValue: a value was required (after ':' / '=', after ',' in an array, at top level).
	ExpectedValue ErrorKind = iota + 1
	// ExpectedKey: an object entry must start with a Name or String.
	ExpectedKey
	// ExpectedAssign: ':' or '=' must follow an object key.
	ExpectedAssign
	// ExpectedCommaOrRBrace: after an object entry.
	ExpectedCommaOrRBrace
	// ExpectedCommaOrRBracket: after an array element.
	ExpectedCommaOrRBracket
	// UnterminatedObject: input ended inside '{ ... '.
	UnterminatedObject
	// UnterminatedArray: input ended inside '[ ... '.
	UnterminatedArray
	// TrailingInput: something other than whitespace or comments follows the value.
	TrailingInput
	// TooDeep: nesting exceeded Options.MaxDepth.
	TooDeep
)

var errorKindNames = [...]string{
	ExpectedValue:           "ExpectedValue",
	ExpectedKey:             "ExpectedKey",
	ExpectedAssign:          "ExpectedAssign",
	ExpectedCommaOrRBrace:   "ExpectedCommaOrRBrace",
	ExpectedCommaOrRBracket: "ExpectedCommaOrRBracket",
	UnterminatedObject:      "UnterminatedObject",
	UnterminatedArray:       "UnterminatedArray",
	TrailingInput:           "TrailingInput",
	TooDeep:                 "TooDeep",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) && errorKindNames[k] != "" {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Expected describes the construct the parser was looking for.
func (k ErrorKind) Expected() string {
	switch k {
	case ExpectedValue:
		return "value"
	case ExpectedKey:
		return "object key"
	case ExpectedAssign:
		return "':' or '='"
	case ExpectedCommaOrRBrace, UnterminatedObject:
		return "',' or '}'"
	case ExpectedCommaOrRBracket, UnterminatedArray:
		return "',' or ']'"
	case TrailingInput:
		return "end of input"
	}
	return ""
}

// Code maps the kind to its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case ExpectedValue:
		return diag.SynExpectValue
	case ExpectedKey:
		return diag.SynExpectKey
	case ExpectedAssign:
		return diag.SynExpectAssign
	case ExpectedCommaOrRBrace:
		return diag.SynExpectCommaOrRBrace
	case ExpectedCommaOrRBracket:
		return diag.SynExpectCommaOrRBracket
	case UnterminatedObject:
		return diag.SynUnclosedBrace
	case UnterminatedArray:
		return diag.SynUnclosedBracket
	case TrailingInput:
		return diag.SynUnexpectedToken
	case TooDeep:
		return diag.SynNestingTooDeep
	}
	return diag.UnknownCode
}

// Error is a structural parse error. Loc is the start of the offending token,
// or the end of input when Found is token.EOF.
type Error struct {
	Kind  ErrorKind
	Found token.Kind
	Loc   source.Location
	// Len and Text describe the offending token; both are empty at end of input.
	Len  uint32
	Text string
	// Open is where the enclosing container started (Unterminated* and TooDeep).
	Open source.Location
	// Want is what the parser needed when input ran out inside a container.
	Want ErrorKind
	// Closers completes every open container at end of input, innermost first.
	Closers string
}

// Message returns the error text without the location prefix.
func (e *Error) Message() string {
	want := e.Kind
	if e.Want != 0 {
		want = e.Want
	}
	switch e.Kind {
	case UnterminatedObject:
		return "unterminated object: expected " + want.Expected() + ", found end of input"
	case UnterminatedArray:
		return "unterminated array: expected " + want.Expected() + ", found end of input"
	case TooDeep:
		return "nesting too deep"
	}
	return "expected " + e.Kind.Expected() + ", found " + e.Found.Describe()
}

func (e *Error) Error() string {
	return e.Loc.String() + ": " + e.Message()
}

// Code returns the diagnostic code for the error.
func (e *Error) Code() diag.Code {
	return e.Kind.Code()
}

// Span returns the offending token extent, empty at end of input.
func (e *Error) Span(file source.FileID) source.Span {
	return source.SpanOf(file, e.Loc.Offset, e.Len)
}
