package fix

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"bong/internal/diag"
	"bong/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix in source order.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every fix that does not conflict with an earlier one.
	ApplyModeAll
	// ApplyModeID applies the fix whose ID equals ApplyOptions.TargetID.
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange is the new content of one file. Nothing is written to disk.
type FileChange struct {
	FileID    source.FileID
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	id    string
	order int
}

// FixID is the base identifier of the idx-th fix of d: code, file, primary
// start and fix index. Two diagnostics with the same code at the same offset
// share it; FixIDs tells them apart.
func FixID(d *diag.Diagnostic, idx int) string {
	return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
}

// FixIDs assigns an identifier to every fix of every diagnostic, as shown by
// `bong fix --list`. The first fix with a given base keeps it, later ones get
// "-2", "-3", ... in report order, so ids are unique within the list.
func FixIDs(diagnostics []diag.Diagnostic) [][]string {
	ids := make([][]string, len(diagnostics))
	seen := make(map[string]int)
	for i := range diagnostics {
		d := &diagnostics[i]
		ids[i] = make([]string, len(d.Fixes))
		for idx := range d.Fixes {
			base := FixID(d, idx)
			seen[base]++
			if n := seen[base]; n > 1 {
				ids[i][idx] = fmt.Sprintf("%s-%d", base, n)
			} else {
				ids[i][idx] = base
			}
		}
	}
	return ids
}

// Apply collects fixes from diagnostics, selects a subset according to opts
// and applies them to the file contents held by fs.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)

	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)

	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skippedDuringApply, changes := applyCandidates(fs, selected)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skippedDuringApply...)
	result.FileChanges = append(result.FileChanges, changes...)

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates turns every fix with edits into a candidate. Fixes without
// edits and exact repeats of an earlier fix (same base id and edits) are
// reported as skipped.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var cands []candidate
	var skips []SkippedFix
	ids := FixIDs(diagnostics)
	seen := make(map[string][][]diag.FixEdit)

	for i := range diagnostics {
		d := &diagnostics[i]
		for idx, f := range d.Fixes {
			id := ids[i][idx]
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			base := FixID(d, idx)
			if slices.ContainsFunc(seen[base], func(edits []diag.FixEdit) bool { return slices.Equal(edits, f.Edits) }) {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "duplicate fix"})
				continue
			}
			seen[base] = append(seen[base], f.Edits)
			cands = append(cands, candidate{diag: *d, fix: f, id: id, order: len(cands)})
		}
	}
	return cands, skips
}

// sortCandidates orders candidates by primary span, then by the order the
// diagnostics were reported in.
func sortCandidates(candidates []candidate) {
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		return cmp.Or(
			cmp.Compare(pa.File, pb.File),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.order, b.order),
		)
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeOnce:
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

// fileEdits is the accepted edits of one file, in acceptance order.
type fileEdits struct {
	file  *source.File
	path  string // for messages
	edits []diag.FixEdit
}

func newFileEdits(fs *source.FileSet, id source.FileID) *fileEdits {
	return &fileEdits{file: fs.Get(id), path: formatFilePath(fs, id)}
}

// admit reports why edits cannot join f, or "" when they can. Spans refer to
// the original content: accepted edits never overlap, so the text under a new
// span is still the original text.
func (f *fileEdits) admit(edits []diag.FixEdit) string {
	content := f.file.Content
	for _, e := range edits {
		if e.Span.Start > e.Span.End || int(e.Span.End) > len(content) {
			return "edit span out of range"
		}
		if e.OldText != "" && e.Span.Text(content) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range f.edits {
			if spansConflict(prev, e) {
				return "conflicts with previously applied edits in " + f.path
			}
		}
	}
	return ""
}

// render rebuilds the content in one forward pass. Insertions at the same
// offset keep their acceptance order.
func (f *fileEdits) render() []byte {
	edits := slices.Clone(f.edits)
	slices.SortStableFunc(edits, func(a, b diag.FixEdit) int {
		if c := cmp.Compare(a.Span.Start, b.Span.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Span.End, b.Span.End)
	})
	content := f.file.Content
	out := make([]byte, 0, len(content))
	pos := uint32(0)
	for _, e := range edits {
		out = append(out, content[pos:e.Span.Start]...)
		out = append(out, e.NewText...)
		pos = e.Span.End
	}
	return append(out, content[pos:]...)
}

func applyCandidates(fs *source.FileSet, selected []candidate) ([]AppliedFix, []SkippedFix, []FileChange) {
	files := make(map[source.FileID]*fileEdits)
	var applied []AppliedFix
	var skipped []SkippedFix

	for _, cand := range selected {
		buckets := groupEditsByFile(cand.fix.Edits)
		reason := ""
		for fileID, edits := range buckets {
			if int(fileID) >= fs.Len() {
				reason = "edit targets an unknown file"
				break
			}
			fe := files[fileID]
			if fe == nil {
				fe = newFileEdits(fs, fileID)
			}
			if reason = fe.admit(edits); reason != "" {
				break
			}
		}
		if reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}

		for fileID, edits := range buckets {
			fe := files[fileID]
			if fe == nil {
				fe = newFileEdits(fs, fileID)
				files[fileID] = fe
			}
			fe.edits = append(fe.edits, edits...)
		}
		applied = append(applied, AppliedFix{
			ID:          cand.id,
			Title:       cand.fix.Title,
			Code:        cand.diag.Code,
			Message:     cand.diag.Message,
			PrimaryPath: formatFilePath(fs, cand.diag.Primary.File),
			EditCount:   len(cand.fix.Edits),
		})
	}

	changes := make([]FileChange, 0, len(files))
	for fileID, fe := range files {
		changes = append(changes, FileChange{
			FileID:    fileID,
			Path:      fe.file.Path,
			EditCount: len(fe.edits),
			Content:   fe.render(),
		})
	}
	slices.SortFunc(changes, func(a, b FileChange) int { return cmp.Compare(a.Path, b.Path) })
	return applied, skipped, changes
}

// spansConflict reports whether two edits overlap. Spans are half-open, so
// two insertions never conflict. An insertion conflicts with a non-empty span
// when Start <= pos < End: its start counts, its end does not.
func spansConflict(a, b diag.FixEdit) bool {
	aIns, bIns := a.Span.Start == a.Span.End, b.Span.Start == b.Span.End
	switch {
	case aIns && bIns:
		return false
	case aIns:
		return b.Span.Start <= a.Span.Start && a.Span.Start < b.Span.End
	case bIns:
		return a.Span.Start <= b.Span.Start && b.Span.Start < a.Span.End
	}
	return a.Span.Start < b.Span.End && b.Span.Start < a.Span.End
}

func groupEditsByFile(edits []diag.FixEdit) map[source.FileID][]diag.FixEdit {
	buckets := make(map[source.FileID][]diag.FixEdit)
	for _, edit := range edits {
		buckets[edit.Span.File] = append(buckets[edit.Span.File], edit)
	}
	return buckets
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	if int(fileID) >= fs.Len() {
		return ""
	}
	return fs.Get(fileID).FormatPath("auto", fs.BaseDir())
}
