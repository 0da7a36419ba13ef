package lexer

import (
	"fmt"
	"unicode/utf8"

	"bong/internal/diag"
	"bong/internal/source"
)

// ErrorKind classifies lexical failures.
type ErrorKind uint8

const (
	// UnexpectedEOF: input ended where a construct required more (a lone '#' or '.').
	UnexpectedEOF ErrorKind = iota + 1
	// UnexpectedChar: a character that cannot start or continue a token here.
	UnexpectedChar
	// MalformedComment: '/' not followed by '/' or '*', or an unclosed block comment.
	MalformedComment
	// UnterminatedString: end of input before the closing quote.
	UnterminatedString
	// InvalidInt: digit run that does not fit in int64.
	InvalidInt
	// InvalidFloat: '.' without a following digit, or an unrepresentable float.
	InvalidFloat
)

var errorKindNames = [...]string{
	UnexpectedEOF:      "UnexpectedEOF",
	UnexpectedChar:     "UnexpectedChar",
	MalformedComment:   "MalformedComment",
	UnterminatedString: "UnterminatedString",
	InvalidInt:         "InvalidInt",
	InvalidFloat:       "InvalidFloat",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) && errorKindNames[k] != "" {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Code maps the kind to its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case UnexpectedEOF:
		return diag.LexUnexpectedEOF
	case UnexpectedChar:
		return diag.LexUnexpectedChar
	case MalformedComment:
		return diag.LexMalformedComment
	case UnterminatedString:
		return diag.LexUnterminatedStr
	case InvalidInt:
		return diag.LexInvalidInt
	case InvalidFloat:
		return diag.LexInvalidFloat
	}
	return diag.UnknownCode
}

// Error is a terminal lexical error. Loc is where scanning failed, not where
// the token being built started.
type Error struct {
	Kind ErrorKind
	Loc  source.Location
	// Char is the offending character for UnexpectedChar.
	Char rune
	// Text is the consumed literal for InvalidInt / InvalidFloat.
	Text string
}

// Message returns the error text without the location prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case UnexpectedEOF:
		return "unexpected end of input"
	case UnexpectedChar:
		return fmt.Sprintf("unexpected character %q", e.Char)
	case MalformedComment:
		return "malformed comment"
	case UnterminatedString:
		return "unterminated string literal"
	case InvalidInt:
		return fmt.Sprintf("invalid integer literal %q", e.Text)
	case InvalidFloat:
		return fmt.Sprintf("invalid float literal %q", e.Text)
	}
	return e.Kind.String()
}

func (e *Error) Error() string {
	return e.Loc.String() + ": " + e.Message()
}

// Code returns the diagnostic code for the error.
func (e *Error) Code() diag.Code {
	return e.Kind.Code()
}

// Span returns the source extent worth underlining: the offending character,
// the rejected numeric literal, or an empty span at Loc.
func (e *Error) Span(file source.FileID) source.Span {
	sp := source.At(file, e.Loc.Offset)
	switch e.Kind {
	case UnexpectedChar:
		switch {
		case e.Char == utf8.RuneError:
			sp.End++
		case e.Char >= 0:
			sp.End += uint32(utf8.RuneLen(e.Char))
		}
	case InvalidInt, InvalidFloat:
		if n := uint32(len(e.Text)); n <= sp.Start {
			sp.Start -= n
		}
	}
	return sp
}
