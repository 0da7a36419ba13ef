package lexer

import (
	"bong/internal/diag"
	"bong/internal/source"
)

type Options struct {
	// Reporter получает диагностику для каждой лексической ошибки; может быть nil.
	Reporter diag.Reporter
	// File используется NewString для спанов диагностик; New берёт ID из source.File.
	File source.FileID
}
