package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"bong/internal/source"
)

// eof is returned by Peek/PeekAt once the cursor has run out of input.
const eof rune = -1

// Cursor представляет собой позицию в тексте: байтовое смещение плюс строка/колонка.
// Колонки считаются в рунах.
type Cursor struct {
	src  string
	off  uint32
	line uint32
	col  uint32
	// limit is the exclusive upper bound for off.
	limit uint32
}

// NewCursor creates a cursor at 1:1 of src.
func NewCursor(src string) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("len source overflow: %w", err))
	}
	return Cursor{
		src:   src,
		line:  1,
		col:   1,
		limit: limit,
	}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.off >= c.limit
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() uint32 {
	return c.off
}

// Loc returns the current location.
func (c *Cursor) Loc() source.Location {
	return source.Location{Offset: c.off, Line: c.line, Col: c.col}
}

// decode returns the rune at byte offset off and its size.
func (c *Cursor) decode(off uint32) (rune, uint32) {
	if off >= c.limit {
		return eof, 0
	}
	b := c.src[off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, sz := utf8.DecodeRuneInString(c.src[off:])
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	return r, usz
}

// Peek читает текущую руну, не сдвигая курсор; eof в конце текста.
func (c *Cursor) Peek() rune {
	r, _ := c.decode(c.off)
	return r
}

// PeekAt returns the rune n positions ahead of the current one (PeekAt(0) == Peek()).
func (c *Cursor) PeekAt(n int) rune {
	off := c.off
	for ; n > 0; n-- {
		_, sz := c.decode(off)
		if sz == 0 {
			return eof
		}
		off += sz
	}
	r, _ := c.decode(off)
	return r
}

// Bump перемещает курсор на одну руну вперёд и возвращает её.
// '\n' увеличивает строку и сбрасывает колонку в 1.
func (c *Cursor) Bump() rune {
	r, sz := c.decode(c.off)
	if sz == 0 {
		return eof
	}
	c.off += sz
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r
}

// Eat consumes the current rune if it equals r.
func (c *Cursor) Eat(r rune) bool {
	if c.Peek() != r {
		return false
	}
	c.Bump()
	return true
}

// Mark это метка начала читаемого фрагмента.
type Mark source.Location

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Loc())
}

// TextFrom returns the source text consumed since m.
func (c *Cursor) TextFrom(m Mark) string {
	return c.src[m.Offset:c.off]
}

// LenFrom returns the number of bytes consumed since m.
func (c *Cursor) LenFrom(m Mark) uint32 {
	return c.off - m.Offset
}

// Reset возвращает курсор назад к метке.
func (c *Cursor) Reset(m Mark) {
	c.off, c.line, c.col = m.Offset, m.Line, m.Col
}

// Loc returns the location the mark was taken at.
func (m Mark) Loc() source.Location {
	return source.Location(m)
}
