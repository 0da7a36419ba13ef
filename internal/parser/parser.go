package parser

import (
	"golang.org/x/text/unicode/norm"

	"bong/internal/diag"
	"bong/internal/fix"
	"bong/internal/lexer"
	"bong/internal/source"
	"bong/internal/token"
	"bong/internal/value"
)

// Parser — состояние разбора над одним срезом токенов.
type Parser struct {
	toks []token.Token
	pos  int
	opts Options
	// end is where input ends: the end of the last token, or 1:1 for no tokens.
	end source.Location
	// open holds '{' / '[' tokens of the containers being parsed, innermost last.
	open []token.Token
}

// New creates a parser positioned at the first token. A trailing EOF token,
// if present, is treated as end of input.
func New(toks []token.Token, opts Options) *Parser {
	end := source.StartLocation
	if n := len(toks); n > 0 {
		end = toks[n-1].End()
	}
	return &Parser{toks: toks, opts: opts, end: end}
}

// ParseValue parses toks as exactly one value. Whitespace and comments may
// surround it; anything else after it is a TrailingInput error.
func ParseValue(toks []token.Token) (value.Node, error) {
	return Parse(toks, Options{})
}

// Parse is ParseValue with options.
func Parse(toks []token.Token, opts Options) (value.Node, error) {
	p := New(toks, opts)
	n, err := p.Value()
	if err != nil {
		return nil, err
	}
	p.SkipTrivia()
	if tok := p.Peek(); tok.Kind != token.EOF {
		return nil, p.fail(p.errorAt(TrailingInput, tok))
	}
	return n, nil
}

// ParseString lexes and parses src as one value. Lexical errors are returned
// as *lexer.Error, structural ones as *Error.
func ParseString(src string, opts Options) (value.Node, error) {
	toks, err := lexer.LexWith(src, lexer.Options{Reporter: opts.Reporter, File: opts.File})
	if err != nil {
		return nil, err
	}
	return Parse(toks, opts)
}

// Peek returns the token at the cursor without consuming it; whitespace and
// comments are not skipped. At end of input it returns an EOF token located
// at the end of the last token.
func (p *Parser) Peek() token.Token {
	if p.pos < len(p.toks) && p.toks[p.pos].Kind != token.EOF {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.EOF, Loc: p.end}
}

// SkipTrivia advances past whitespace and comment tokens.
func (p *Parser) SkipTrivia() {
	for p.pos < len(p.toks) && p.toks[p.pos].IsTrivia() {
		p.pos++
	}
}

// Done skips trivia and reports whether the input is exhausted.
func (p *Parser) Done() bool {
	p.SkipTrivia()
	return p.Peek().Kind == token.EOF
}

// Pos returns the index of the next unconsumed token.
func (p *Parser) Pos() int {
	return p.pos
}

// Value skips leading trivia, parses one value and leaves the cursor right
// after it. Trivia following the value is not consumed.
func (p *Parser) Value() (value.Node, error) {
	p.open = p.open[:0]
	n, err := p.parseValue()
	if err != nil {
		return nil, p.fail(err)
	}
	return n, nil
}

func (p *Parser) at(k token.Kind) bool {
	return p.Peek().Kind == k
}

// advance съедает текущий токен.
func (p *Parser) advance() token.Token {
	tok := p.Peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// expectKey читает ключ объекта: Name или String.
func (p *Parser) expectKey() (string, *Error) {
	tok := p.Peek()
	if tok.Kind != token.Name && tok.Kind != token.String {
		return "", p.errorAt(ExpectedKey, tok)
	}
	p.advance()
	key := tok.Value
	if p.opts.NormalizeKeys {
		key = norm.NFC.String(key)
	}
	return key, nil
}

func (p *Parser) parseValue() (value.Node, *Error) {
	p.SkipTrivia()
	tok := p.Peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseObject()
	case token.LBracket:
		return p.parseArray()
	case token.Int:
		p.advance()
		return value.Int(tok.Int), nil
	case token.Float:
		p.advance()
		return value.Float(tok.Float), nil
	case token.String:
		p.advance()
		return value.String(tok.Value), nil
	case token.True:
		p.advance()
		return value.Bool(true), nil
	case token.False:
		p.advance()
		return value.Bool(false), nil
	case token.Null:
		p.advance()
		return value.Null{}, nil
	}
	return nil, p.errorAt(ExpectedValue, tok)
}

func (p *Parser) parseObject() (value.Node, *Error) {
	openTok := p.advance() // '{'
	if err := p.enter(openTok); err != nil {
		return nil, err
	}
	defer p.leave()

	obj := value.Object{}
	p.SkipTrivia()
	if p.at(token.RBrace) {
		p.advance()
		return obj, nil
	}

	for {
		key, err := p.expectKey()
		if err != nil {
			return nil, err
		}

		p.SkipTrivia()
		if !p.at(token.Colon) && !p.at(token.Equal) {
			return nil, p.errorAt(ExpectedAssign, p.Peek())
		}
		p.advance()

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj[key] = v

		p.SkipTrivia()
		switch tok := p.Peek(); tok.Kind {
		case token.Comma:
			p.advance()
			p.SkipTrivia()
		case token.RBrace:
			p.advance()
			return obj, nil
		default:
			return nil, p.errorAt(ExpectedCommaOrRBrace, tok)
		}
	}
}

func (p *Parser) parseArray() (value.Node, *Error) {
	openTok := p.advance() // '['
	if err := p.enter(openTok); err != nil {
		return nil, err
	}
	defer p.leave()

	arr := value.Array{}
	p.SkipTrivia()
	if p.at(token.RBracket) {
		p.advance()
		return arr, nil
	}

	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		p.SkipTrivia()
		switch tok := p.Peek(); tok.Kind {
		case token.Comma:
			p.advance()
		case token.RBracket:
			p.advance()
			return arr, nil
		default:
			return nil, p.errorAt(ExpectedCommaOrRBracket, tok)
		}
	}
}

func (p *Parser) enter(openTok token.Token) *Error {
	p.open = append(p.open, openTok)
	if p.opts.MaxDepth > 0 && len(p.open) > p.opts.MaxDepth {
		return &Error{
			Kind:  TooDeep,
			Found: openTok.Kind,
			Loc:   openTok.Loc,
			Len:   openTok.Len,
			Text:  openTok.Text,
			Open:  p.open[0].Loc,
		}
	}
	return nil
}

func (p *Parser) leave() {
	p.open = p.open[:len(p.open)-1]
}

// errorAt builds an error for tok. End of input inside a container becomes
// Unterminated{Object,Array} for the innermost open container.
func (p *Parser) errorAt(kind ErrorKind, tok token.Token) *Error {
	err := &Error{
		Kind:  kind,
		Found: tok.Kind,
		Loc:   tok.Loc,
		Len:   tok.Len,
		Text:  tok.Text,
	}
	if tok.Kind == token.EOF && len(p.open) > 0 {
		inner := p.open[len(p.open)-1]
		err.Open = inner.Loc
		err.Want = kind
		if inner.Kind == token.LBrace {
			err.Kind = UnterminatedObject
		} else {
			err.Kind = UnterminatedArray
		}
		for i := len(p.open) - 1; i >= 0; i-- {
			if p.open[i].Kind == token.LBrace {
				err.Closers += "}"
			} else {
				err.Closers += "]"
			}
		}
	}
	return err
}

// fail reports err to the configured Reporter and returns it as error.
func (p *Parser) fail(err *Error) error {
	if p.opts.Reporter != nil {
		b := diag.ReportError(p.opts.Reporter, err.Code(), err.Span(p.opts.File), err.Message())
		if err.Open.IsValid() {
			what := "container"
			switch err.Kind {
			case UnterminatedObject:
				what = "object"
			case UnterminatedArray:
				what = "array"
			}
			b.WithNote(source.SpanOf(p.opts.File, err.Open.Offset, 1), what+" opened here")
		}
		if f, ok := p.suggest(err); ok {
			b.WithFix(f.Title, f.Edits...)
		}
		b.Emit()
	}
	return err
}

// suggest returns a mechanical repair for err, if one is obvious:
// dropping a trailing comma, inserting a missing comma, or closing the
// containers left open at end of input.
func (p *Parser) suggest(err *Error) (diag.Fix, bool) {
	file := p.opts.File
	switch {
	case err.Closers != "":
		at := source.At(file, err.Loc.Offset)
		return fix.InsertText("insert '"+err.Closers+"'", at, err.Closers), true

	case err.Kind == ExpectedKey && err.Found == token.RBrace,
		err.Kind == ExpectedValue && err.Found == token.RBracket:
		prev, ok := p.prevSignificant()
		if !ok || prev.Kind != token.Comma {
			return diag.Fix{}, false
		}
		return fix.DeleteSpan("remove trailing ','", prev.Span(file), prev.Text), true

	case err.Kind == ExpectedCommaOrRBrace && (err.Found == token.Name || err.Found == token.String),
		err.Kind == ExpectedCommaOrRBracket && startsValue(err.Found):
		prev, ok := p.prevSignificant()
		if !ok {
			return diag.Fix{}, false
		}
		end := prev.End().Offset
		return fix.InsertText("insert ','", source.At(file, end), ","), true
	}
	return diag.Fix{}, false
}

// prevSignificant returns the last non-trivia token before the cursor.
func (p *Parser) prevSignificant() (token.Token, bool) {
	for i := min(p.pos, len(p.toks)) - 1; i >= 0; i-- {
		if !p.toks[i].IsTrivia() {
			return p.toks[i], true
		}
	}
	return token.Token{}, false
}

func startsValue(k token.Kind) bool {
	switch k {
	case token.LBrace, token.LBracket, token.Int, token.Float, token.String,
		token.True, token.False, token.Null:
		return true
	}
	return false
}
