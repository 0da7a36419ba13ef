package driver

import (
	"context"
	"fmt"

	"bong/internal/diag"
	"bong/internal/parser"
	"bong/internal/source"
	"bong/internal/trace"
	"bong/internal/value"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Value is nil when the file has a lexical or structural error.
	Value value.Node
	Bag   *diag.Bag
	// Cached reports that Value came from the disk cache.
	Cached bool
}

// Parse loads path and parses it as one value.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.maxDiagnostics())
	n, cached := parseFile(ctx, file, bag, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Value:   n,
		Bag:     bag,
		Cached:  cached,
	}, nil
}

// ParseSource parses an in-memory text registered under name (stdin, tests).
func ParseSource(ctx context.Context, name string, content []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	bag := diag.NewBag(opts.maxDiagnostics())
	opts.Cache = nil // виртуальные файлы не кэшируются
	n, _ := parseFile(ctx, file, bag, opts)
	return &ParseResult{FileSet: fs, File: file, Value: n, Bag: bag}
}

// parseFile lexes and parses one file. Successful trees are looked up in and
// stored to opts.Cache; failures are never cached so their diagnostics are
// always reproduced.
func parseFile(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) (value.Node, bool) {
	if n, ok, err := opts.Cache.LoadValue(file, opts); err != nil {
		trace.Point(ctx, trace.ScopeDetail, "cache_error", err.Error())
	} else if ok {
		trace.Point(ctx, trace.ScopeDetail, "cache_hit", file.Path)
		return n, true
	}

	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	tokens, err := lexFile(ctx, file, rep, opts)
	if err != nil {
		return nil, false
	}

	_, span := trace.StartSpan(ctx, trace.ScopePass, "parse")
	n, err := parser.Parse(tokens, parser.Options{
		Reporter:      rep,
		File:          file.ID,
		MaxDepth:      opts.MaxDepth,
		NormalizeKeys: opts.NormalizeKeys,
	})
	detail := "ok"
	if err != nil {
		detail = "error"
	}
	opts.Timer.Add("parse", span.End(detail))
	if err != nil {
		return nil, false
	}

	if err := opts.Cache.StoreValue(file, opts, n); err != nil {
		trace.Point(ctx, trace.ScopeDetail, "cache_error", err.Error())
	}
	return n, false
}
