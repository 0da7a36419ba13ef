package token

var keywords = map[string]Kind{
	"null":  Null,
	"false": False,
	"true":  True,
}

// fixedSpelling maps kinds whose text never varies to that text.
var fixedSpelling = map[Kind]string{
	Null:      "null",
	False:     "false",
	True:      "true",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
	Comma:     ",",
	Colon:     ":",
	Equal:     "=",
	Semicolon: ";",
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Регистр важен: "True" остаётся Name.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Spelling returns the fixed source text of k, if k has one.
func Spelling(k Kind) (string, bool) {
	s, ok := fixedSpelling[k]
	return s, ok
}

// Punct maps a single punctuation byte to its kind.
func Punct(b byte) (Kind, bool) {
	switch b {
	case '{':
		return LBrace, true
	case '}':
		return RBrace, true
	case '[':
		return LBracket, true
	case ']':
		return RBracket, true
	case ',':
		return Comma, true
	case ':':
		return Colon, true
	case '=':
		return Equal, true
	case ';':
		return Semicolon, true
	}
	return Invalid, false
}
