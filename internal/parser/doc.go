// Package parser builds value trees from bong tokens.
//
// Grammar (insignificant tokens, whitespace and comments, may appear between
// any two elements):
//
//	value   := object | array | Int | Float | String | true | false | null
//	object  := '{' (entry (',' entry)*)? '}'
//	entry   := key (':' | '=') value
//	key     := Name | String
//	array   := '[' (value (',' value)*)? ']'
//
// A comma must be followed by another entry or value: "[1,]" and "{a:1,}" are
// rejected. A repeated object key keeps the last value. The first structural
// error aborts the parse; there is no recovery.
//
// Parser works over an already lexed token slice. The element layer of the
// language (tags with ids, classes and children) is not handled here; callers
// that implement it can use Parser.Value to read one value at the cursor and
// continue from where it stopped.
package parser
