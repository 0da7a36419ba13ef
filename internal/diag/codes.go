package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo             Code = 1000
	LexUnexpectedChar   Code = 1001
	LexUnterminatedStr  Code = 1002
	LexMalformedComment Code = 1003
	LexInvalidInt       Code = 1004
	LexInvalidFloat     Code = 1005
	LexUnexpectedEOF    Code = 1006

	// Парсерные
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynExpectValue           Code = 2002
	SynExpectKey             Code = 2003
	SynExpectAssign          Code = 2004
	SynExpectCommaOrRBrace   Code = 2005
	SynExpectCommaOrRBracket Code = 2006
	SynUnclosedBrace         Code = 2007
	SynUnclosedBracket       Code = 2008
	SynNestingTooDeep        Code = 2009

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Ошибки проекта
	PrjManifestError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnexpectedChar:        "Unexpected character",
	LexUnterminatedStr:       "Unterminated string",
	LexMalformedComment:      "Malformed comment",
	LexInvalidInt:            "Invalid integer literal",
	LexInvalidFloat:          "Invalid float literal",
	LexUnexpectedEOF:         "Unexpected end of input",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Unexpected token",
	SynExpectValue:           "Expected value",
	SynExpectKey:             "Expected object key",
	SynExpectAssign:          "Expected ':' or '='",
	SynExpectCommaOrRBrace:   "Expected ',' or '}'",
	SynExpectCommaOrRBracket: "Expected ',' or ']'",
	SynUnclosedBrace:         "Unterminated object",
	SynUnclosedBracket:       "Unterminated array",
	SynNestingTooDeep:        "Nesting too deep",
	IOLoadFileError:          "Cannot load file",
	IOCacheError:             "Cache unavailable",
	PrjManifestError:         "Invalid bong.toml",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
