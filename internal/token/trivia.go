package token

// IsTrivia reports whether tokens of kind k are whitespace or comments.
func (k Kind) IsTrivia() bool {
	switch k {
	case SlWhitespace, MlWhitespace, SlComment, MlComment:
		return true
	}
	return false
}
