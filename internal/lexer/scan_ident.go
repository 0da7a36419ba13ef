package lexer

import "bong/internal/token"

// Идентификатор: [A-Za-z_][A-Za-z0-9_]* (только ASCII).
func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDec(r)
}

func (lx *Lexer) eatIdent() {
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// scanIdentOrKeyword: Name, либо Null/False/True при точном совпадении написания.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.eatIdent()
	tok := lx.emit(token.Name, start)
	if kw, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kw
		return tok
	}
	tok.Value = tok.Text
	return tok
}

// scanIdOrClass: "#ident" → Id, ".ident" → Class. Value хранит ident без префикса.
func (lx *Lexer) scanIdOrClass() (token.Token, *Error) {
	start := lx.cursor.Mark()
	kind := token.Id
	if lx.cursor.Bump() == '.' {
		kind = token.Class
	}

	switch ch := lx.cursor.Peek(); {
	case ch == eof:
		return token.Token{}, lx.errorAt(UnexpectedEOF, lx.cursor.Loc())
	case !isIdentStart(ch):
		return token.Token{}, &Error{Kind: UnexpectedChar, Loc: lx.cursor.Loc(), Char: ch}
	}

	lx.eatIdent()
	tok := lx.emit(kind, start)
	tok.Value = tok.Text[1:]
	return tok, nil
}
