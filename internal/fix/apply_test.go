package fix_test

import (
	"testing"

	"bong/internal/diag"
	"bong/internal/fix"
	"bong/internal/parser"
	"bong/internal/source"
)

// repair applies parser suggestions until the text parses or nothing applies.
func repair(t *testing.T, src string) string {
	t.Helper()
	for range 8 {
		fs := source.NewFileSet()
		fileID := fs.AddVirtual("in.bong", []byte(src))
		bag := diag.NewBag(4)
		_, err := parser.ParseString(src, parser.Options{Reporter: diag.BagReporter{Bag: bag}, File: fileID})
		if err == nil {
			return src
		}
		res, err := fix.Apply(fs, bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeAll})
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		src = string(res.FileChanges[0].Content)
	}
	t.Fatalf("no fixpoint for %q", src)
	return ""
}

func TestRepairParserSuggestions(t *testing.T) {
	tests := map[string]string{
		"{a: 1,}":          "{a: 1}",
		"[1 2 3]":          "[1, 2, 3]",
		"{a: [1, 2\n":      "{a: [1, 2\n]}",
		"{a: [1,\n":        "{a: [1\n]}",
		`{a: 1 "b": true}`: `{a: 1, "b": true}`,
	}
	for in, want := range tests {
		if got := repair(t, in); got != want {
			t.Fatalf("repair(%q) = %q, want %q", in, got, want)
		}
	}
}
