package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"bong/internal/source"
	"bong/internal/token"
)

// CheckTokenInvariants runs the span invariants every successful tokenization
// must satisfy:
//  1. tokens are contiguous: each starts where the previous one ended,
//     and together they cover src exactly once;
//  2. every token is non-empty and its Text equals src[Loc.Offset:+Len];
//  3. Loc.Line/Col agree with the end location of the previous token;
//  4. fixed-spelling and identifier tokens reconstruct to their text.
func CheckTokenInvariants(src string, toks []token.Token) error {
	lenSrc, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len source overflow: %w", err)
	}

	want := source.StartLocation
	for i, tok := range toks {
		if tok.Loc != want {
			return fmt.Errorf("token %d (%s): location %+v, expected %+v", i, tok.Kind, tok.Loc, want)
		}
		if tok.Len == 0 {
			return fmt.Errorf("token %d (%s): empty token at %s", i, tok.Kind, tok.Loc)
		}
		end := tok.Loc.Offset + tok.Len
		if end > lenSrc {
			return fmt.Errorf("token %d (%s): ends at %d beyond input length %d", i, tok.Kind, end, lenSrc)
		}
		if got := tok.Slice(src); got != tok.Text {
			return fmt.Errorf("token %d (%s): text %q differs from source slice %q", i, tok.Kind, tok.Text, got)
		}
		if spelled, ok := tok.Reconstruct(); ok && spelled != tok.Text {
			return fmt.Errorf("token %d (%s): reconstructs to %q, source has %q", i, tok.Kind, spelled, tok.Text)
		}
		want = tok.End()
	}
	if want.Offset != lenSrc {
		return fmt.Errorf("tokens cover %d of %d bytes", want.Offset, lenSrc)
	}
	return nil
}

// CheckNoAdjacentWhitespace reports a violation of the merge rule: two
// whitespace tokens must never be adjacent, and SlWhitespace never contains '\n'.
func CheckNoAdjacentWhitespace(toks []token.Token) error {
	for i, tok := range toks {
		isWS := tok.Kind == token.SlWhitespace || tok.Kind == token.MlWhitespace
		if !isWS {
			continue
		}
		if tok.Kind == token.SlWhitespace {
			for j := 0; j < len(tok.Text); j++ {
				if tok.Text[j] == '\n' {
					return fmt.Errorf("token %d: SlWhitespace contains a newline at %s", i, tok.Loc)
				}
			}
		}
		if i > 0 {
			prev := toks[i-1].Kind
			if prev == token.SlWhitespace || prev == token.MlWhitespace {
				return fmt.Errorf("tokens %d and %d: adjacent whitespace (%s, %s)", i-1, i, prev, tok.Kind)
			}
		}
	}
	return nil
}

// Concat joins token texts in order.
func Concat(toks []token.Token) string {
	n := 0
	for _, tok := range toks {
		n += len(tok.Text)
	}
	buf := make([]byte, 0, n)
	for _, tok := range toks {
		buf = append(buf, tok.Text...)
	}
	return string(buf)
}
