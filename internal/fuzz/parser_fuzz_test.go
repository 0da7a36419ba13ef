package fuzztests

import (
	"bytes"
	"errors"
	"testing"

	"bong/internal/diag"
	"bong/internal/diagfmt"
	"bong/internal/lexer"
	"bong/internal/parser"
	"bong/internal/value"
)

func FuzzParserValues(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		bag := diag.NewBag(8)
		n, err := parser.ParseString(string(input), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err != nil {
			var (
				le *lexer.Error
				pe *parser.Error
			)
			if !errors.As(err, &le) && !errors.As(err, &pe) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			if bag.Len() != 1 {
				t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
			}
			return
		}
		if n == nil {
			t.Fatal("nil tree without error")
		}

		var buf bytes.Buffer
		if err := diagfmt.FormatValuePretty(&buf, n); err != nil {
			t.Fatalf("FormatValuePretty: %v", err)
		}
		again, err := parser.ParseString(buf.String(), parser.Options{})
		if err != nil {
			t.Fatalf("printed tree does not reparse: %v\n%s", err, buf.String())
		}
		if !value.Equal(n, again) {
			t.Fatalf("round trip changed the tree:\n%s", buf.String())
		}
	})
}
