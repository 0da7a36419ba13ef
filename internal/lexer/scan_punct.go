package lexer

import (
	"unicode/utf8"

	"bong/internal/token"
)

// scanPunct: { } [ ] , : = ; — всегда односимвольные токены.
// Любой другой символ — UnexpectedChar в его позиции.
func (lx *Lexer) scanPunct() (token.Token, *Error) {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	if ch < utf8.RuneSelf {
		if kind, ok := token.Punct(byte(ch)); ok {
			lx.cursor.Bump()
			return lx.emit(kind, start), nil
		}
	}
	return token.Token{}, &Error{Kind: UnexpectedChar, Loc: start.Loc(), Char: ch}
}
