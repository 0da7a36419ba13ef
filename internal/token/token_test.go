package token_test

import (
	"testing"

	"bong/internal/source"
	"bong/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Name:         "Name",
		token.MlWhitespace: "MlWhitespace",
		token.Semicolon:    "Semicolon",
		token.Kind(200):    "Kind(?)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := token.RBrace.Describe(); got != "'}'" {
		t.Fatalf("RBrace.Describe() = %q", got)
	}
	if got := token.EOF.Describe(); got != "end of input" {
		t.Fatalf("EOF.Describe() = %q", got)
	}
	if got := token.MlComment.Describe(); got != "comment" {
		t.Fatalf("MlComment.Describe() = %q", got)
	}
}

func TestLookupKeyword(t *testing.T) {
	for lexeme, want := range map[string]token.Kind{"null": token.Null, "false": token.False, "true": token.True} {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v want %v", lexeme, got, ok, want)
		}
	}
	for _, s := range []string{"True", "NULL", "nil", "nullable", ""} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) must not match", s)
		}
	}
}

func TestReconstruct(t *testing.T) {
	tests := []struct {
		tok  token.Token
		want string
		ok   bool
	}{
		{token.Token{Kind: token.Name, Value: "text"}, "text", true},
		{token.Token{Kind: token.Id, Value: "main"}, "#main", true},
		{token.Token{Kind: token.Class, Value: "title"}, ".title", true},
		{token.Token{Kind: token.True}, "true", true},
		{token.Token{Kind: token.Colon}, ":", true},
		{token.Token{Kind: token.String, Value: "x"}, "", false},
		{token.Token{Kind: token.SlWhitespace}, "", false},
	}
	for _, tt := range tests {
		got, ok := tt.tok.Reconstruct()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%v.Reconstruct() = %q,%v want %q,%v", tt.tok.Kind, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEndAndSpan(t *testing.T) {
	tok := token.Token{
		Kind: token.MlWhitespace,
		Loc:  source.Location{Offset: 11, Line: 1, Col: 12},
		Len:  6,
		Text: " \n    ",
	}
	end := tok.End()
	if end != (source.Location{Offset: 17, Line: 2, Col: 5}) {
		t.Fatalf("End() = %+v", end)
	}
	if sp := tok.Span(3); sp != (source.Span{File: 3, Start: 11, End: 17}) {
		t.Fatalf("Span() = %v", sp)
	}
	str := token.Token{Kind: token.String, Loc: source.Location{Offset: 0, Line: 1, Col: 1}, Len: 5, Text: `"éx"`}
	if w := str.Width(); w != 4 {
		t.Fatalf("Width() = %d", w)
	}
	if got := str.End(); got.Col != 5 || got.Offset != 5 {
		t.Fatalf("End() after multibyte = %+v", got)
	}
}

func TestClassification(t *testing.T) {
	trivia := []token.Kind{token.SlWhitespace, token.MlWhitespace, token.SlComment, token.MlComment}
	for _, k := range trivia {
		if !k.IsTrivia() {
			t.Fatalf("%v should be trivia", k)
		}
	}
	for _, k := range []token.Kind{token.Name, token.String, token.LBrace, token.EOF} {
		if k.IsTrivia() {
			t.Fatalf("%v must not be trivia", k)
		}
	}
	if !(token.Token{Kind: token.True}).IsLiteral() || (token.Token{Kind: token.Name}).IsLiteral() {
		t.Fatal("IsLiteral misclassifies")
	}
	if !(token.Token{Kind: token.Equal}).IsPunct() || (token.Token{Kind: token.Class}).IsPunct() {
		t.Fatal("IsPunct misclassifies")
	}
	if !(token.Token{Kind: token.Class}).IsIdent() {
		t.Fatal("Class is identifier-derived")
	}
}
