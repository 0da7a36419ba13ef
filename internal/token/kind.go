package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input. It never spans any bytes.
	EOF

	// Name represents a bare identifier.
	Name
	// Id represents '#' followed by an identifier.
	Id
	// Class represents '.' followed by an identifier.
	Class

	// SlWhitespace is a whitespace run that stays on one line.
	SlWhitespace
	// MlWhitespace is a whitespace run containing at least one newline.
	MlWhitespace
	// SlComment is a '//' comment up to (excluding) the newline.
	SlComment
	// MlComment is a possibly nested '/* ... */' comment.
	MlComment

	// Int represents a decimal integer literal.
	Int
	// Float represents a decimal literal with a fractional part.
	Float
	// String represents a double-quoted string literal.
	String
	// Null represents the 'null' literal.
	Null
	// False represents the 'false' literal.
	False
	// True represents the 'true' literal.
	True

	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Colon     // :
	Equal     // =
	Semicolon // ;
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Name:         "Name",
	Id:           "Id",
	Class:        "Class",
	SlWhitespace: "SlWhitespace",
	MlWhitespace: "MlWhitespace",
	SlComment:    "SlComment",
	MlComment:    "MlComment",
	Int:          "Int",
	Float:        "Float",
	String:       "String",
	Null:         "Null",
	False:        "False",
	True:         "True",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Comma:        "Comma",
	Colon:        "Colon",
	Equal:        "Equal",
	Semicolon:    "Semicolon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Describe returns the user-facing spelling of k for error messages:
// the literal punctuation for fixed tokens, a category name otherwise.
func (k Kind) Describe() string {
	if s, ok := fixedSpelling[k]; ok {
		return "'" + s + "'"
	}
	switch k {
	case EOF:
		return "end of input"
	case Name:
		return "name"
	case Id:
		return "id"
	case Class:
		return "class"
	case SlWhitespace, MlWhitespace:
		return "whitespace"
	case SlComment, MlComment:
		return "comment"
	case Int:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return "invalid token"
}

// IsEOF reports whether k marks end of input.
func (k Kind) IsEOF() bool { return k == EOF }
