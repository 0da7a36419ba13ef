package lexer

import "bong/internal/token"

// scanComment: "//..." до '\n' (сам '\n' не входит) или "/* ... */" с вложенностью.
// '/' без '/' или '*' после него — MalformedComment в позиции '/'.
// Незакрытый блочный комментарий — MalformedComment в позиции EOF.
func (lx *Lexer) scanComment() (token.Token, *Error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'

	switch lx.cursor.Peek() {
	case '/':
		lx.cursor.Bump()
		for ch := lx.cursor.Peek(); ch != eof && ch != '\n'; ch = lx.cursor.Peek() {
			lx.cursor.Bump()
		}
		return lx.emit(token.SlComment, start), nil

	case '*':
		lx.cursor.Bump()
		depth := 1
		for depth > 0 {
			switch ch := lx.cursor.Peek(); {
			case ch == eof:
				return token.Token{}, lx.errorAt(MalformedComment, lx.cursor.Loc())
			case ch == '/' && lx.cursor.PeekAt(1) == '*':
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
			case ch == '*' && lx.cursor.PeekAt(1) == '/':
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
			default:
				lx.cursor.Bump()
			}
		}
		return lx.emit(token.MlComment, start), nil
	}

	return token.Token{}, lx.errorAt(MalformedComment, start.Loc())
}
