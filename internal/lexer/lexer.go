package lexer

import (
	"iter"

	"bong/internal/diag"
	"bong/internal/source"
	"bong/internal/token"
)

// Lexer is a pull-based tokenizer over one source text. Each token is a
// zero-copy slice of the text. The first error is terminal: every later call
// to Next returns it again.
type Lexer struct {
	file   source.FileID
	src    string
	cursor Cursor
	opts   Options
	err    *Error
}

// New creates a lexer over a file from a FileSet.
func New(file *source.File, opts Options) *Lexer {
	lx := NewString(file.Text(), opts)
	lx.file = file.ID
	return lx
}

// NewString creates a lexer over src. Diagnostics are attributed to opts.File.
func NewString(src string, opts Options) *Lexer {
	return &Lexer{
		file:   opts.File,
		src:    src,
		cursor: NewCursor(src),
		opts:   opts,
	}
}

// Source returns the text being tokenized.
func (lx *Lexer) Source() string {
	return lx.src
}

// Next возвращает следующий токен. В конце текста возвращает EOF нулевой длины
// (сколько угодно раз). После ошибки всегда возвращает ту же ошибку.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.err != nil {
		return token.Token{Kind: token.Invalid, Loc: lx.err.Loc}, lx.err
	}
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Loc: lx.cursor.Loc()}, nil
	}

	var (
		tok token.Token
		err *Error
	)
	switch ch := lx.cursor.Peek(); {
	case isSpace(ch):
		tok = lx.scanWhitespace()
	case ch == '/':
		tok, err = lx.scanComment()
	case isDec(ch):
		tok, err = lx.scanNumber()
	case ch == '"':
		tok, err = lx.scanString()
	case isIdentStart(ch):
		tok = lx.scanIdentOrKeyword()
	case ch == '#' || ch == '.':
		tok, err = lx.scanIdOrClass()
	default:
		tok, err = lx.scanPunct()
	}
	if err != nil {
		lx.fail(err)
		return token.Token{Kind: token.Invalid, Loc: err.Loc}, err
	}
	return tok, nil
}

// All returns the remaining tokens as a lazy sequence. The sequence ends at
// end of input (EOF is not yielded) or right after yielding the first error.
func (lx *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := lx.Next()
			if err != nil {
				yield(tok, err)
				return
			}
			if tok.Kind == token.EOF {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Lex tokenizes src from scratch and collects every token. On error it returns
// the tokens scanned before the failure together with the error.
func Lex(src string) ([]token.Token, error) {
	return LexWith(src, Options{})
}

// LexWith is Lex with options.
func LexWith(src string, opts Options) ([]token.Token, error) {
	lx := NewString(src, opts)
	toks := make([]token.Token, 0, len(src)/4+1)
	for tok, err := range lx.All() {
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// Err returns the terminal error, if any.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

func (lx *Lexer) fail(err *Error) {
	lx.err = err
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, err.Code(), err.Span(lx.file), err.Message()).Emit()
}

// emit builds a token of kind covering everything consumed since m.
func (lx *Lexer) emit(kind token.Kind, m Mark) token.Token {
	return token.Token{
		Kind: kind,
		Loc:  m.Loc(),
		Len:  lx.cursor.LenFrom(m),
		Text: lx.cursor.TextFrom(m),
	}
}

func (lx *Lexer) errorAt(kind ErrorKind, loc source.Location) *Error {
	return &Error{Kind: kind, Loc: loc}
}
