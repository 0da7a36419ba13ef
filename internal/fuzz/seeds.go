package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // входы фаззера обрезаются до этого размера
)

var inlineSeeds = []string{
	"",
	"text.title {\n    // comment\n    \"string\"\n}",
	"{a: 1, a: 2}",
	"{}",
	"[]",
	"[true, false, null]",
	"\"a\\tb\\\\c\"",
	"12.5",
	"12.",
	"99999999999999999999",
	"/* a /* b */ c */ 0",
	"/* a /* b */",
	"#id .class name",
	"{k = [1, {x: \"y\"}]}",
	"[[[[[[[[]]]]]]]]",
	"{\"é\": 1}",
	"\xff\xfe",
	"\r\n\t ",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.bong файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".bong" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
