// Package token defines the lexical vocabulary of bong documents.
// Invariants:
//   - Token.Text is a substring of the lexed source string (no copies).
//   - len(Token.Text) == Token.Len and Token.Loc.Offset is where it starts.
//   - Concatenating Text of every token in emission order yields the input.
//   - Token.Value holds the identifier for Name/Id/Class (without '#' or '.')
//     and the unescaped contents for String; it is empty for every other kind.
//   - Whitespace and comments are ordinary tokens (see IsTrivia); the value
//     parser decides where they may appear.
package token
