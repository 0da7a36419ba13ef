package token

import (
	"unicode/utf8"

	"bong/internal/source"
)

// Token represents a single source token: kind, start location and byte length.
// Text is the raw spelling sliced from the source; Value, Int and Float carry
// the decoded payload where the semantic value differs from the spelling.
type Token struct {
	Kind  Kind
	Loc   source.Location
	Len   uint32
	Text  string
	Value string
	Int   int64
	Float float64
}

// Slice returns src[Loc.Offset : Loc.Offset+Len]. For tokens produced from src
// it is identical to Text.
func (t Token) Slice(src string) string {
	return src[t.Loc.Offset : t.Loc.Offset+t.Len]
}

// Span converts the token extent into a file span for diagnostics.
func (t Token) Span(file source.FileID) source.Span {
	return source.SpanOf(file, t.Loc.Offset, t.Len)
}

// End returns the location just past the token, derived from its text.
func (t Token) End() source.Location {
	loc := t.Loc
	for _, r := range t.Text {
		if r == '\n' {
			loc.Line++
			loc.Col = 1
		} else {
			loc.Col++
		}
	}
	loc.Offset += t.Len
	return loc
}

// Reconstruct returns the source spelling implied by kind and payload alone:
// fixed punctuation and keywords, identifier forms for Name/Id/Class.
// ok is false for kinds whose spelling is not derivable (whitespace, comments,
// numbers, strings).
func (t Token) Reconstruct() (string, bool) {
	if s, ok := Spelling(t.Kind); ok {
		return s, true
	}
	switch t.Kind {
	case Name:
		return t.Value, true
	case Id:
		return "#" + t.Value, true
	case Class:
		return "." + t.Value, true
	}
	return "", false
}

// Width returns the token length in characters.
func (t Token) Width() int {
	return utf8.RuneCountInString(t.Text)
}

// IsTrivia reports whether the token is insignificant between syntactic elements.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }

// IsLiteral reports whether the token maps directly to a scalar value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Int, Float, String, Null, False, True:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is single-character punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case LBrace, RBrace, LBracket, RBracket, Comma, Colon, Equal, Semicolon:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is derived from an identifier.
func (t Token) IsIdent() bool {
	return t.Kind == Name || t.Kind == Id || t.Kind == Class
}
