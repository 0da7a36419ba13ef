package diag

import (
	"bong/internal/source"
)

// Severity orders diagnostics; Error is the only level the core emits.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces the text under Span with NewText. A non-empty OldText
// must match the current text for the edit to apply.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// NewError builds an error diagnostic without notes or fixes.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Primary: primary, Message: msg}
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

// key identifies a diagnostic for deduplication: one finding per code and
// primary span, whatever the message says.
type key struct {
	code       Code
	file       source.FileID
	start, end uint32
}

func (d *Diagnostic) key() key {
	return key{code: d.Code, file: d.Primary.File, start: d.Primary.Start, end: d.Primary.End}
}
