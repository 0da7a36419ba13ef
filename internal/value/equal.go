package value

// Equal reports whether a and b are structurally identical trees.
// Int(1) and Float(1) are different values.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Object:
		bv := b.(Object)
		if len(av) != len(bv) {
			return false
		}
		for k, ac := range av {
			bc, ok := bv[k]
			if !ok || !Equal(ac, bc) {
				return false
			}
		}
		return true
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
