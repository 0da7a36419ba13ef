package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"bong/internal/diag"
	"bong/internal/source"
)

func newBag(t *testing.T, ds ...diag.Diagnostic) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(10)
	for _, d := range ds {
		if !bag.Add(d) {
			t.Fatalf("bag rejected %v", d)
		}
	}
	return bag
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.Add("/home/user/project/conf/app.bong", []byte("{ x: \"open\n"), 0)
	fs.SetBaseDir("/home/user/project")

	bag := newBag(t, diag.NewError(diag.LexUnterminatedStr,
		source.Span{File: fileID, Start: 5, End: 11}, "unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/conf/app.bong:1:6"},
		{"Relative path", PathModeRelative, "conf/app.bong:1:6"},
		{"Basename only", PathModeBasename, "app.bong:1:6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode}); err != nil {
				t.Fatalf("Pretty: %v", err)
			}
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Fatalf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: unterminated string literal") {
				t.Fatalf("header missing, got:\n%s", output)
			}
		})
	}
}

func TestPrettyExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.bong", []byte("{\n  x: \"open\n"))

	bag := newBag(t, diag.NewError(diag.LexUnterminatedStr,
		source.Span{File: fileID, Start: 7, End: 12}, "unterminated string literal"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := strings.Join([]string{
		"test.bong:2:6: ERROR LEX1002: unterminated string literal",
		"  1 | {",
		"  2 |   x: \"open",
		"    |      ^^^^^",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("Pretty output mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	// '界' занимает две колонки терминала
	fileID := fs.AddVirtual("wide.bong", []byte("[\"界\", @]"))

	bag := newBag(t, diag.NewError(diag.LexUnexpectedChar,
		source.Span{File: fileID, Start: 8, End: 9}, "unexpected character '@'"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if lines[0] != "wide.bong:1:7: ERROR LEX1001: unexpected character '@'" {
		t.Fatalf("header = %q", lines[0])
	}
	if want := "    | " + strings.Repeat(" ", 7) + "^"; lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("n.bong", []byte("{a: 1"))

	d := diag.NewError(diag.SynUnclosedBrace, source.Span{File: fileID, Start: 5, End: 5}, "unterminated object").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "object opened here").
		WithFix("close the object", diag.FixEdit{Span: source.Span{File: fileID, Start: 5, End: 5}, NewText: "}"})
	bag := newBag(t, d)

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}

	buf.Reset()
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"note: n.bong:1:1: object opened here",
		"fix: close the object",
		"n.bong:1:6 -> \"}\"",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.bong", []byte("@"))
	bag := newBag(t, diag.NewError(diag.LexUnexpectedChar, source.Span{File: fileID, Start: 0, End: 1}, "unexpected character '@'"))

	var plain, colored bytes.Buffer
	if err := Pretty(&plain, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escape codes: %q", colored.String())
	}
}

func TestPrettyUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := newBag(t, diag.NewError(diag.IOLoadFileError, source.Span{File: 7}, "cannot read"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if got := buf.String(); got != "<unknown>: ERROR IO4001: cannot read\n" {
		t.Fatalf("got %q", got)
	}
}
