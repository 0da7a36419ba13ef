package fix

import (
	"bong/internal/diag"
	"bong/internal/source"
)

// InsertText inserts text at the empty span at.
func InsertText(title string, at source.Span, text string) diag.Fix {
	return diag.Fix{Title: title, Edits: []diag.FixEdit{{Span: at, NewText: text}}}
}

// DeleteSpan removes span; the edit is skipped when the text there is not expect.
func DeleteSpan(title string, span source.Span, expect string) diag.Fix {
	return diag.Fix{Title: title, Edits: []diag.FixEdit{{Span: span, OldText: expect}}}
}
