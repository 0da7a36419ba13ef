package lexer

import (
	"testing"

	"bong/internal/source"
)

// TestCursorSequential проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestCursorSequential(t *testing.T) {
	c := NewCursor("a\nb")

	steps := []struct {
		want rune
		loc  source.Location
	}{
		{'a', source.Location{Offset: 0, Line: 1, Col: 1}},
		{'\n', source.Location{Offset: 1, Line: 1, Col: 2}},
		{'b', source.Location{Offset: 2, Line: 2, Col: 1}},
	}
	for i, st := range steps {
		if c.EOF() {
			t.Fatalf("step %d: unexpected EOF", i)
		}
		if got := c.Loc(); got != st.loc {
			t.Fatalf("step %d: loc %+v, want %+v", i, got, st.loc)
		}
		if got := c.Bump(); got != st.want {
			t.Fatalf("step %d: bump %q, want %q", i, got, st.want)
		}
	}
	if !c.EOF() {
		t.Fatalf("expected EOF")
	}
	if c.Peek() != eof || c.Bump() != eof {
		t.Fatalf("expected eof sentinel at end")
	}
	if got := c.Loc(); got != (source.Location{Offset: 3, Line: 2, Col: 2}) {
		t.Fatalf("end loc %+v", got)
	}
}

func TestCursorMultibyteColumns(t *testing.T) {
	c := NewCursor("éa")
	c.Bump()
	if got := c.Loc(); got.Offset != 2 || got.Col != 2 {
		t.Fatalf("after é: %+v", got)
	}
	if c.Peek() != 'a' {
		t.Fatalf("peek after é: %q", c.Peek())
	}
}

func TestCursorPeekAt(t *testing.T) {
	c := NewCursor("/*é")
	if c.PeekAt(0) != '/' || c.PeekAt(1) != '*' || c.PeekAt(2) != 'é' || c.PeekAt(3) != eof {
		t.Fatalf("unexpected lookahead")
	}
}

func TestCursorMarkResetAndEat(t *testing.T) {
	c := NewCursor("ab\ncd")
	c.Bump()
	m := c.Mark()
	if !c.Eat('b') || c.Eat('x') || !c.Eat('\n') {
		t.Fatalf("eat mismatch")
	}
	if got := c.TextFrom(m); got != "b\n" {
		t.Fatalf("TextFrom: %q", got)
	}
	if got := c.LenFrom(m); got != 2 {
		t.Fatalf("LenFrom: %d", got)
	}
	c.Reset(m)
	if got := c.Loc(); got != m.Loc() {
		t.Fatalf("reset: %+v want %+v", got, m.Loc())
	}
}

func TestCursorInvalidUTF8(t *testing.T) {
	c := NewCursor("\xffa")
	if r := c.Bump(); r != '�' {
		t.Fatalf("expected RuneError, got %q", r)
	}
	if c.Offset() != 1 {
		t.Fatalf("invalid byte must advance by one, got %d", c.Offset())
	}
}
