package lexer

import (
	"strconv"

	"bong/internal/token"
)

func isDec(r rune) bool { return r >= '0' && r <= '9' }

// scanNumber: [0-9]+ → Int; [0-9]+ '.' [0-9]+ → Float.
// Точка без цифры после неё — InvalidFloat в позиции после точки.
// Переполнение int64 — InvalidInt в позиции после литерала.
func (lx *Lexer) scanNumber() (token.Token, *Error) {
	start := lx.cursor.Mark()
	lx.eatDigits()

	if lx.cursor.Peek() != '.' {
		text := lx.cursor.TextFrom(start)
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return token.Token{}, &Error{Kind: InvalidInt, Loc: lx.cursor.Loc(), Text: text}
		}
		tok := lx.emit(token.Int, start)
		tok.Int = v
		return tok, nil
	}

	lx.cursor.Bump() // '.'
	if !isDec(lx.cursor.Peek()) {
		return token.Token{}, &Error{Kind: InvalidFloat, Loc: lx.cursor.Loc(), Text: lx.cursor.TextFrom(start)}
	}
	lx.eatDigits()

	text := lx.cursor.TextFrom(start)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// только ErrRange: цифры уже проверены
		return token.Token{}, &Error{Kind: InvalidFloat, Loc: lx.cursor.Loc(), Text: text}
	}
	tok := lx.emit(token.Float, start)
	tok.Float = v
	return tok, nil
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
