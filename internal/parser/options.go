package parser

import (
	"bong/internal/diag"
	"bong/internal/source"
)

type Options struct {
	// Reporter получает диагностику для первой структурной ошибки; может быть nil.
	Reporter diag.Reporter
	// File is the FileID used for diagnostic spans.
	File source.FileID
	// MaxDepth caps object/array nesting; 0 means unlimited.
	MaxDepth int
	// NormalizeKeys folds object keys to Unicode NFC before insertion, so
	// "é" typed as e+U+0301 and as U+00E9 name the same key.
	NormalizeKeys bool
}
