package diagfmt

import "bong/internal/source"

// formatPath renders the path of span's file, or "<unknown>" for IDs the set never issued.
func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if int(id) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(id)
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	default:
		return f.FormatPath(mode.flag(), "")
	}
}
