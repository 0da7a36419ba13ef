package driver

import (
	"context"
	"fmt"
	"strconv"

	"bong/internal/diag"
	"bong/internal/lexer"
	"bong/internal/source"
	"bong/internal/token"
	"bong/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and collects its tokens. A lexical error ends the run:
// Tokens holds everything before it and Bag holds its diagnostic.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.maxDiagnostics())
	tokens, _ := lexFile(ctx, file, diag.BagReporter{Bag: bag}, opts)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// lexFile runs the lexer over file, reporting into rep.
func lexFile(ctx context.Context, file *source.File, rep diag.Reporter, opts Options) ([]token.Token, error) {
	_, span := trace.StartSpan(ctx, trace.ScopePass, "lex")

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	var lexErr error
	for tok, err := range lx.All() {
		if err != nil {
			lexErr = err
			break
		}
		tokens = append(tokens, tok)
	}

	span.WithExtra("tokens", strconv.Itoa(len(tokens)))
	detail := "ok"
	if lexErr != nil {
		detail = "error"
	}
	opts.Timer.Add("lex", span.End(detail))
	return tokens, lexErr
}
