package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"bong/internal/diag"
	"bong/internal/lexer"
	"bong/internal/source"
	"bong/internal/testkit"
	"bong/internal/token"
)

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustLex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	if err := testkit.CheckTokenInvariants(src, toks); err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	return toks
}

func lexError(t *testing.T, src string) *lexer.Error {
	t.Helper()
	_, err := lexer.Lex(src)
	if err == nil {
		t.Fatalf("lex %q: expected error", src)
	}
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("lex %q: error %T is not *lexer.Error", src, err)
	}
	return lexErr
}

func loc(off, line, col uint32) source.Location {
	return source.Location{Offset: off, Line: line, Col: col}
}

func TestEndToEndElementSource(t *testing.T) {
	src := "text.title {\n    // text { \"hello world\" }\n    \"hello world\"\n}"
	toks := mustLex(t, src)

	want := []struct {
		kind token.Kind
		loc  source.Location
		len  uint32
	}{
		{token.Name, loc(0, 1, 1), 4},
		{token.Class, loc(4, 1, 5), 6},
		{token.SlWhitespace, loc(10, 1, 11), 1},
		{token.LBrace, loc(11, 1, 12), 1},
		{token.MlWhitespace, loc(12, 1, 13), 5},
		{token.SlComment, loc(17, 2, 5), 25},
		{token.MlWhitespace, loc(42, 2, 30), 5},
		{token.String, loc(47, 3, 5), 13},
		{token.MlWhitespace, loc(60, 3, 18), 1},
		{token.RBrace, loc(61, 4, 1), 1},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), kindsOf(toks), len(want))
	}
	for i, w := range want {
		tok := toks[i]
		if tok.Kind != w.kind || tok.Loc != w.loc || tok.Len != w.len {
			t.Fatalf("token %d: got %s@%+v len %d, want %s@%+v len %d",
				i, tok.Kind, tok.Loc, tok.Len, w.kind, w.loc, w.len)
		}
	}
	if toks[0].Value != "text" || toks[1].Value != "title" || toks[7].Value != "hello world" {
		t.Fatalf("payloads: %q %q %q", toks[0].Value, toks[1].Value, toks[7].Value)
	}
	if got := testkit.Concat(toks); got != src {
		t.Fatalf("concatenation differs:\n%q\n%q", got, src)
	}
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []token.Kind
	}{
		{"", nil},
		{"{}", []token.Kind{token.LBrace, token.RBrace}},
		{"[ ]", []token.Kind{token.LBracket, token.SlWhitespace, token.RBracket}},
		{"a:1,b=2;", []token.Kind{token.Name, token.Colon, token.Int, token.Comma, token.Name, token.Equal, token.Int, token.Semicolon}},
		{"null false true", []token.Kind{token.Null, token.SlWhitespace, token.False, token.SlWhitespace, token.True}},
		{"True nullx _null", []token.Kind{token.Name, token.SlWhitespace, token.Name, token.SlWhitespace, token.Name}},
		{"div#main.a.b", []token.Kind{token.Name, token.Id, token.Class, token.Class}},
		{"123abc", []token.Kind{token.Int, token.Name}},
		{"1.5.x", []token.Kind{token.Float, token.Class}},
		{"x// c\ny", []token.Kind{token.Name, token.SlComment, token.MlWhitespace, token.Name}},
		{"/**/", []token.Kind{token.MlComment}},
		{"// only", []token.Kind{token.SlComment}},
		{`"a""b"`, []token.Kind{token.String, token.String}},
		{"\r\n", []token.Kind{token.MlWhitespace}},
	}
	for _, tt := range tests {
		toks := mustLex(t, tt.src)
		if got := kindsOf(toks); !equalKinds(got, tt.want) {
			t.Fatalf("%q: got %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestWhitespaceMerge(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{" \t ", token.SlWhitespace},
		{" \t \n", token.MlWhitespace},
		{"  \n\n\t  \r\n ", token.MlWhitespace},
		{"\n", token.MlWhitespace},
		{"\r", token.SlWhitespace},
	}
	for _, tt := range tests {
		toks := mustLex(t, tt.src)
		if len(toks) != 1 {
			t.Fatalf("%q: expected single token, got %v", tt.src, kindsOf(toks))
		}
		if toks[0].Kind != tt.kind || toks[0].Text != tt.src {
			t.Fatalf("%q: got %s %q", tt.src, toks[0].Kind, toks[0].Text)
		}
	}

	toks := mustLex(t, "a  \n  b c")
	if got := kindsOf(toks); !equalKinds(got, []token.Kind{token.Name, token.MlWhitespace, token.Name, token.SlWhitespace, token.Name}) {
		t.Fatalf("mixed run: %v", got)
	}
	if err := testkit.CheckNoAdjacentWhitespace(toks); err != nil {
		t.Fatal(err)
	}
	if toks[2].Loc != loc(6, 2, 3) {
		t.Fatalf("b location: %+v", toks[2].Loc)
	}
}

func TestNestedComments(t *testing.T) {
	src := "/* a /* b */ c */"
	toks := mustLex(t, src)
	if len(toks) != 1 || toks[0].Kind != token.MlComment || toks[0].Text != src {
		t.Fatalf("nested comment: %v", kindsOf(toks))
	}

	toks = mustLex(t, "/*\n*/x")
	if toks[1].Kind != token.Name || toks[1].Loc != loc(5, 2, 3) {
		t.Fatalf("location after multi-line comment: %+v", toks[1])
	}

	err := lexError(t, "/* a /* b */")
	if err.Kind != lexer.MalformedComment || err.Loc != loc(12, 1, 13) {
		t.Fatalf("unclosed nested comment: %v (%+v)", err, err.Loc)
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"a\tb\\c"`, "a\tb\\c"},
		{`"line\nnext\r"`, "line\nnext\r"},
		{`"\c\q"`, "cq"},
		{`"say \"hi\""`, `say "hi"`},
		{`""`, ""},
		{`"plain é"`, "plain é"},
		{"\"raw\nnewline\"", "raw\nnewline"},
		{`"\é"`, "é"},
	}
	for _, tt := range tests {
		toks := mustLex(t, tt.src)
		if len(toks) != 1 || toks[0].Kind != token.String {
			t.Fatalf("%s: expected one string token, got %v", tt.src, kindsOf(toks))
		}
		if toks[0].Value != tt.want {
			t.Fatalf("%s: value %q, want %q", tt.src, toks[0].Value, tt.want)
		}
	}
}

func TestNumbers(t *testing.T) {
	toks := mustLex(t, "123 12.5 007 0.25")
	if toks[0].Kind != token.Int || toks[0].Int != 123 {
		t.Fatalf("123: %+v", toks[0])
	}
	if toks[2].Kind != token.Float || toks[2].Float != 12.5 {
		t.Fatalf("12.5: %+v", toks[2])
	}
	if toks[4].Kind != token.Int || toks[4].Int != 7 {
		t.Fatalf("007: %+v", toks[4])
	}
	if toks[6].Kind != token.Float || toks[6].Float != 0.25 {
		t.Fatalf("0.25: %+v", toks[6])
	}

	top := mustLex(t, "9223372036854775807")
	if top[0].Int != 9223372036854775807 {
		t.Fatalf("max int64: %d", top[0].Int)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind lexer.ErrorKind
		loc  source.Location
		char rune
		text string
	}{
		{"overflow", "99999999999999999999", lexer.InvalidInt, loc(20, 1, 21), 0, "99999999999999999999"},
		{"int64 max plus one", "9223372036854775808", lexer.InvalidInt, loc(19, 1, 20), 0, "9223372036854775808"},
		{"dot without digits", "12.", lexer.InvalidFloat, loc(3, 1, 4), 0, "12."},
		{"dot then letter", "1.e", lexer.InvalidFloat, loc(2, 1, 3), 0, "1."},
		{"stray char", "a @", lexer.UnexpectedChar, loc(2, 1, 3), '@', ""},
		{"non ascii ident", "é", lexer.UnexpectedChar, loc(0, 1, 1), 'é', ""},
		{"leading dot number", ".5", lexer.UnexpectedChar, loc(1, 1, 2), '5', ""},
		{"hash digit", "#1", lexer.UnexpectedChar, loc(1, 1, 2), '1', ""},
		{"hash space", "# x", lexer.UnexpectedChar, loc(1, 1, 2), ' ', ""},
		{"hash at end", "x#", lexer.UnexpectedEOF, loc(2, 1, 3), 0, ""},
		{"dot at end", "\n.", lexer.UnexpectedEOF, loc(2, 2, 2), 0, ""},
		{"lone slash", "a/b", lexer.MalformedComment, loc(1, 1, 2), 0, ""},
		{"slash at end", "/", lexer.MalformedComment, loc(0, 1, 1), 0, ""},
		{"unclosed block", "/* x", lexer.MalformedComment, loc(4, 1, 5), 0, ""},
		{"unterminated string", `"abc`, lexer.UnterminatedString, loc(4, 1, 5), 0, ""},
		{"unterminated escape", `"abc\`, lexer.UnterminatedString, loc(5, 1, 6), 0, ""},
		{"minus sign", "-1", lexer.UnexpectedChar, loc(0, 1, 1), '-', ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lexError(t, tt.src)
			if err.Kind != tt.kind {
				t.Fatalf("kind %s, want %s (%v)", err.Kind, tt.kind, err)
			}
			if err.Loc != tt.loc {
				t.Fatalf("loc %+v, want %+v", err.Loc, tt.loc)
			}
			if err.Char != tt.char || err.Text != tt.text {
				t.Fatalf("payload char=%q text=%q, want char=%q text=%q", err.Char, err.Text, tt.char, tt.text)
			}
			if err.Code() == diag.UnknownCode {
				t.Fatalf("missing diagnostic code for %s", err.Kind)
			}
		})
	}
}

func TestErrorIsTerminal(t *testing.T) {
	lx := lexer.NewString("a @ b", lexer.Options{})
	if tok, err := lx.Next(); err != nil || tok.Kind != token.Name {
		t.Fatalf("first token: %v %v", tok.Kind, err)
	}
	if _, err := lx.Next(); err != nil {
		t.Fatalf("whitespace: %v", err)
	}
	_, first := lx.Next()
	if first == nil {
		t.Fatalf("expected error at '@'")
	}
	for i := 0; i < 3; i++ {
		if _, err := lx.Next(); err != first {
			t.Fatalf("call %d: got %v, want the same error", i, err)
		}
	}
	if lx.Err() != first {
		t.Fatalf("Err() mismatch")
	}
}

func TestEOFRepeats(t *testing.T) {
	lx := lexer.NewString("x", lexer.Options{})
	if _, err := lx.Next(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		tok, err := lx.Next()
		if err != nil || tok.Kind != token.EOF || tok.Len != 0 || tok.Loc != loc(1, 1, 2) {
			t.Fatalf("call %d: %+v %v", i, tok, err)
		}
	}
}

func TestAllStopsEarly(t *testing.T) {
	lx := lexer.NewString("a b c d", lexer.Options{})
	n := 0
	for tok, err := range lx.All() {
		if err != nil {
			t.Fatal(err)
		}
		n++
		if tok.Kind == token.Name && tok.Value == "b" {
			break
		}
	}
	if n != 3 {
		t.Fatalf("expected 3 tokens before break, got %d", n)
	}
	// the lexer resumes after the consumer stops
	tok, err := lx.Next()
	if err != nil || tok.Kind != token.SlWhitespace {
		t.Fatalf("resume: %v %v", tok.Kind, err)
	}
}

func TestAllYieldsErrorLast(t *testing.T) {
	var kinds []token.Kind
	var got error
	for tok, err := range lexer.NewString("x !", lexer.Options{}).All() {
		if err != nil {
			got = err
			continue
		}
		kinds = append(kinds, tok.Kind)
	}
	if got == nil || len(kinds) != 2 {
		t.Fatalf("kinds=%v err=%v", kinds, got)
	}
}

func TestLexReturnsPrefixOnError(t *testing.T) {
	toks, err := lexer.Lex("{ a ! }")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := kindsOf(toks); !equalKinds(got, []token.Kind{token.LBrace, token.SlWhitespace, token.Name, token.SlWhitespace}) {
		t.Fatalf("prefix: %v", got)
	}
}

func TestReporterReceivesDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.bong", []byte("{\n  x: \"open"))
	bag := diag.NewBag(8)

	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	for _, err := range lx.All() {
		if err != nil {
			break
		}
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.LexUnterminatedStr || d.Severity != diag.SevError || d.Primary.File != id {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	start, _ := fs.Resolve(d.Primary)
	if start.Line != 2 || start.Col != 11 {
		t.Fatalf("diagnostic position %d:%d", start.Line, start.Col)
	}
}

func TestErrorSpan(t *testing.T) {
	err := lexError(t, "x = 99999999999999999999")
	sp := err.Span(3)
	if sp.File != 3 || sp.Start != 4 || sp.End != 24 {
		t.Fatalf("invalid int span %+v", sp)
	}
	err = lexError(t, "x é")
	if sp := err.Span(0); sp.Start != 2 || sp.End != 4 {
		t.Fatalf("unexpected char span %+v", sp)
	}
}

func TestLocationsAcrossLines(t *testing.T) {
	src := "\"é\"\n  x"
	toks := mustLex(t, src)
	if toks[0].Len != 4 || toks[0].End() != loc(4, 1, 4) {
		t.Fatalf("string extent: len=%d end=%+v", toks[0].Len, toks[0].End())
	}
	if toks[2].Loc != loc(7, 2, 3) {
		t.Fatalf("x at %+v", toks[2].Loc)
	}
}

func TestSpanCoverageSamples(t *testing.T) {
	samples := []string{
		"{ a: 1, b = [1, 2.5, \"x\"], c: { d: null } }",
		"page#home.wide.dark {\n\ttitle: \"Hi\\n\"\n\t/* nested /* c */ */\n}\n",
		strings.Repeat("[", 50) + strings.Repeat("]", 50),
		"   \n\n  // tail",
		"a;b;c",
	}
	for _, src := range samples {
		toks := mustLex(t, src)
		if err := testkit.CheckNoAdjacentWhitespace(toks); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}
