package lexer

import (
	"strings"

	"bong/internal/token"
)

// scanString разбирает "...". Value — содержимое без кавычек с раскрытыми
// escape-последовательностями: \t, \n, \r; любой другой символ после '\'
// копируется как есть (\\ → \, \" → ", \c → c). Пока escape не встретился,
// Value — подстрока исходника без копирования.
func (lx *Lexer) scanString() (token.Token, *Error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'
	body := lx.cursor.Offset()

	var (
		sb      strings.Builder
		escaped bool
	)
	for {
		switch lx.cursor.Peek() {
		case eof:
			return token.Token{}, lx.errorAt(UnterminatedString, lx.cursor.Loc())

		case '"':
			val := sb.String()
			if !escaped {
				val = lx.src[body:lx.cursor.Offset()]
			}
			lx.cursor.Bump()
			tok := lx.emit(token.String, start)
			tok.Value = val
			return tok, nil

		case '\\':
			if !escaped {
				sb.WriteString(lx.src[body:lx.cursor.Offset()])
				escaped = true
			}
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				return token.Token{}, lx.errorAt(UnterminatedString, lx.cursor.Loc())
			}
			from := lx.cursor.Offset()
			switch lx.cursor.Bump() {
			case 't':
				sb.WriteByte('\t')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteString(lx.src[from:lx.cursor.Offset()])
			}

		default:
			from := lx.cursor.Offset()
			lx.cursor.Bump()
			if escaped {
				sb.WriteString(lx.src[from:lx.cursor.Offset()])
			}
		}
	}
}
