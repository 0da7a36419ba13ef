// Package diag defines the diagnostic model shared by the lexer, the value
// parser and the driver.
//
// # Purpose
//
//   - Provide deterministic, serialisable records of findings produced while
//     loading, lexing and parsing bong documents.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format or print anything. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error.
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short human text.
//   - Primary – the source.Span pointing at the problem.
//   - Notes – optional secondary spans with extra context.
//   - Fixes – optional text edits a tool may apply.
//
// Lexical and structural errors are fatal to their phase, so a single file
// produces at most one error diagnostic from the core; the Bag still exists
// because directory runs and IO failures aggregate across files.
package diag
