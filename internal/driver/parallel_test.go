package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bong/internal/diag"
	"bong/internal/value"
)

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bong"), "{x: 1}")
	writeFile(t, filepath.Join(dir, "sub", "b.bong"), "[1,]")
	writeFile(t, filepath.Join(dir, "sub", "c.bong"), "\"c\"")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not bong")
	return dir
}

func TestListFiles(t *testing.T) {
	dir := setupDir(t)
	files, err := ListFiles(dir, "")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.bong"),
		filepath.Join(dir, "sub", "b.bong"),
		filepath.Join(dir, "sub", "c.bong"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v", files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}

	txt, err := ListFiles(dir, "*.txt")
	if err != nil || len(txt) != 1 {
		t.Fatalf("*.txt: %v %v", txt, err)
	}
	if _, err := ListFiles(dir, "[bad"); err == nil {
		t.Fatal("expected pattern error")
	}
}

func TestParseDir(t *testing.T) {
	dir := setupDir(t)
	events := make(chan Event, 64)

	_, results, err := ParseDir(context.Background(), dir, Options{Jobs: 2, Events: events})
	close(events)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	if !value.Equal(results[0].Value, value.Object{"x": value.Int(1)}) || results[0].Failed() {
		t.Fatalf("a.bong: %+v", results[0])
	}
	if results[1].Value != nil || !results[1].Failed() {
		t.Fatalf("b.bong should fail: %+v", results[1])
	}
	if got := results[1].Bag.Items()[0].Code; got != diag.SynExpectValue {
		t.Fatalf("b.bong code = %s", got.ID())
	}
	if !value.Equal(results[2].Value, value.String("c")) {
		t.Fatalf("c.bong: %+v", results[2])
	}

	final := make(map[string]Status)
	for ev := range events {
		final[ev.File] = ev.Status
	}
	if final[results[0].Path] != StatusDone || final[results[1].Path] != StatusError {
		t.Fatalf("final statuses = %v", final)
	}

	merged := MergeBags(results, 10)
	if merged.Len() != 1 || !merged.HasErrors() {
		t.Fatalf("merged = %+v", merged.Items())
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := setupDir(t)
	_, results, err := TokenizeDir(context.Background(), dir, Options{Jobs: 1})
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	// "[1,]" лексически корректен
	for _, r := range results {
		if r.Failed() {
			t.Fatalf("%s: %+v", r.Path, r.Bag.Items())
		}
		if len(r.Tokens) == 0 || r.Value != nil {
			t.Fatalf("%s: tokens=%d value=%v", r.Path, len(r.Tokens), r.Value)
		}
	}
}

func TestParseDirLoadError(t *testing.T) {
	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling.bong")); err != nil {
		t.Skipf("symlink: %v", err)
	}

	fs, results, err := ParseDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) != 1 || !results[0].Failed() {
		t.Fatalf("results = %+v", results)
	}
	d := results[0].Bag.Items()[0]
	if d.Code != diag.IOLoadFileError {
		t.Fatalf("code = %s", d.Code.ID())
	}
	if got := fs.Get(d.Primary.File).Path; filepath.Base(got) != "dangling.bong" {
		t.Fatalf("diagnostic path = %s", got)
	}
}

func TestParseDirEmpty(t *testing.T) {
	_, results, err := ParseDir(context.Background(), t.TempDir(), Options{})
	if err != nil || len(results) != 0 {
		t.Fatalf("results = %v, err = %v", results, err)
	}
}

func TestParseDirCancelled(t *testing.T) {
	dir := setupDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ParseDir(ctx, dir, Options{Jobs: 1}); err == nil {
		t.Fatal("expected context error")
	}
}
