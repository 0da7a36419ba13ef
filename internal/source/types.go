package source

import "fmt"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, counted in characters
}

// Location is a cursor position: byte offset plus the line/column it maps to.
// Columns count characters (runes), not bytes.
type Location struct {
	Offset uint32 // 0-based byte index
	Line   uint32 // 1-based
	Col    uint32 // 1-based
}

// StartLocation is the location of the first byte of any input.
var StartLocation = Location{Offset: 0, Line: 1, Col: 1}

// IsValid reports whether the location was produced by a cursor (Line > 0).
func (l Location) IsValid() bool {
	return l.Line > 0
}

// LineCol drops the byte offset.
func (l Location) LineCol() LineCol {
	return LineCol{Line: l.Line, Col: l.Col}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}
