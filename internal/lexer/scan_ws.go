package lexer

import "bong/internal/token"

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isHorizontalSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

// scanWhitespace собирает пробельный отрезок.
// Без перевода строки это SlWhitespace. Если встретился '\n', дальше съедается
// любой пробельный символ и весь отрезок (включая часть до '\n') становится
// одним MlWhitespace.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isHorizontalSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() != '\n' {
		return lx.emit(token.SlWhitespace, start)
	}
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.MlWhitespace, start)
}
