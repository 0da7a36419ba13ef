package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"bong/internal/token"
)

// TokenOutput is the JSON shape of one token.
type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Value  any    `json:"value,omitempty"`
	Offset uint32 `json:"offset"`
	Len    uint32 `json:"len"`
	Line   uint32 `json:"line"`
	Col    uint32 `json:"col"`
}

// tokenValue возвращает декодированное значение, если оно отличается от текста токена.
func tokenValue(tok token.Token) (any, bool) {
	switch tok.Kind {
	case token.Int:
		return tok.Int, true
	case token.Float:
		return tok.Float, true
	case token.String, token.Id, token.Class:
		return tok.Value, true
	}
	return nil, false
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		end := tok.End()

		if _, err := fmt.Fprintf(w, "%3d: %-15s %q at %d:%d-%d:%d",
			i+1, tok.Kind.String(), tok.Text,
			tok.Loc.Line, tok.Loc.Col, end.Line, end.Col); err != nil {
			return err
		}

		if v, ok := tokenValue(tok); ok {
			if s, isStr := v.(string); isStr {
				if _, err := fmt.Fprintf(w, " = %q", s); err != nil {
					return err
				}
			} else if _, err := fmt.Fprintf(w, " = %v", v); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// BuildTokensOutput converts tokens into their JSON shape.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Offset: tok.Loc.Offset,
			Len:    tok.Len,
			Line:   tok.Loc.Line,
			Col:    tok.Loc.Col,
		}
		if v, ok := tokenValue(tok); ok {
			out.Value = v
		}
		output = append(output, out)
	}
	return output
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens))
}
