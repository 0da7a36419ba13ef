package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.bong")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	baseDir := t.TempDir()
	target := filepath.Join(baseDir, "nested", "file.bong")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := "nested/file.bong"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestLineStart(t *testing.T) {
	idx := buildLineIndex([]byte("a\n\nbc\n"))
	tests := []struct {
		off       uint32
		line, beg uint32
	}{
		{0, 1, 0},
		{1, 1, 0},
		{2, 2, 2},
		{3, 3, 3},
		{5, 3, 3},
		{6, 4, 6},
	}
	for _, tt := range tests {
		line, beg := lineStart(idx, tt.off)
		if line != tt.line || beg != tt.beg {
			t.Errorf("lineStart(%d) = (%d,%d), want (%d,%d)", tt.off, line, beg, tt.line, tt.beg)
		}
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if !changed || string(out) != "a\rb\nc" {
		t.Fatalf("normalizeCRLF = %q, %v", out, changed)
	}
	if _, changed := normalizeCRLF([]byte("plain")); changed {
		t.Fatal("no CR must report unchanged")
	}
}

func TestSpanCoverAndText(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("Cover across files must be a no-op, got %v", got)
	}
	if got := SpanOf(1, 1, 3).Text([]byte("[1, 2]")); got != "1, " {
		t.Fatalf("Text = %q", got)
	}
	if got := At(1, 9).Text([]byte("short")); got != "" {
		t.Fatalf("out of range Text = %q", got)
	}
}
