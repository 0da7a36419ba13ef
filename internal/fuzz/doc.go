// Package fuzztests houses Go fuzz harnesses for the lexer and the value
// parser. Besides smoke testing for panics they check the span invariants on
// every successful tokenization and that a parsed tree survives a round trip
// through the pretty printer.
//
// Назначение: прогонять произвольные байты через lexer/parser.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/diagfmt, internal/testkit.
package fuzztests
