package source

import "fmt"

// Span is a half-open byte range [Start, End) of one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// At is the empty span at off: where an insertion goes.
func At(file FileID, off uint32) Span {
	return Span{File: file, Start: off, End: off}
}

// SpanOf covers n bytes starting at off.
func SpanOf(file FileID, off, n uint32) Span {
	return Span{File: file, Start: off, End: off + n}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Text returns the bytes of content under s, or "" when s is out of range.
func (s Span) Text(content []byte) string {
	if s.Start > s.End || int(s.End) > len(content) {
		return ""
	}
	return string(content[s.Start:s.End])
}

// Cover widens s to include other; spans of different files leave s as is.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}
