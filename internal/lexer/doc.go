// Package lexer turns bong source text into tokens.
//
// The lexer is a single cursor that dispatches on the current character:
//
//	' ' '\t' '\r' '\n'   whitespace run (SlWhitespace, or MlWhitespace once a '\n' is seen)
//	'/'                  "//" line comment or nested "/* */" block comment
//	'0'..'9'             Int or Float
//	'"'                  String with \t \n \r escapes, other escapes pass through
//	A-Z a-z _            Name, or null / false / true
//	'#' '.'              Id / Class (must be followed by an identifier)
//	{ } [ ] , : = ;      punctuation
//
// Every input byte belongs to exactly one token, so concatenating token texts
// reproduces the input. The first error stops the lexer.
package lexer
