package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bong/internal/driver"
	"bong/internal/fix"
)

// maxFixPasses ограничивает повторный разбор в режиме --all.
const maxFixPasses = 16

func newFixCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.bong|directory>",
		Short: "Apply suggested repairs to bong files",
		Long: `Fix parses each file and applies the repairs attached to its diagnostics:
a dropped trailing comma, a missing comma, or missing closing brackets.
With --all it re-parses after every repair until the file parses or nothing applies.
Rewritten files use LF line endings and no byte order mark.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFix(cmd, args[0])
		},
	}
	cmd.Flags().Bool("all", false, "apply every repair, re-parsing in between")
	cmd.Flags().Bool("once", false, "apply the first available repair (default)")
	cmd.Flags().String("id", "", "apply the repair with a specific identifier")
	cmd.Flags().Bool("dry-run", false, "print the repaired text instead of writing files")
	cmd.Flags().Bool("list", false, "list available repairs with their identifiers")
	return cmd
}

// fileFix is the outcome of repairing one file.
type fileFix struct {
	path      string
	content   []byte
	changed   bool
	applied   []fix.AppliedFix
	skipped   []fix.SkippedFix
	remaining *driver.ParseResult
}

func (a *app) runFix(cmd *cobra.Command, target string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("failed to get once flag: %w", err)
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("failed to get list flag: %w", err)
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	applyOpts := fix.ApplyOptions{Mode: mode, TargetID: targetID}

	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	// ошибки не кэшируются, а исправлять имеет смысл только их
	opts.Cache = nil

	files := []string{target}
	dir := isDir(target)
	if dir {
		// id уникален только в пределах одного файла
		if targetID != "" {
			return fmt.Errorf("fix: --id can only be used with a single file")
		}
		if files, err = driver.ListFiles(target, opts.Include); err != nil {
			return fmt.Errorf("fix: %w", err)
		}
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if list {
		return listFixes(cmd.Context(), stdout, files, opts)
	}

	report := stdout
	if dryRun {
		report = stderr
	}

	failed := false
	for _, path := range files {
		ff, err := fixFile(cmd.Context(), path, opts, applyOpts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		if ff.changed {
			if dryRun {
				if dir && !a.settings.quiet {
					fmt.Fprintf(stdout, "== %s ==\n", displayPath(target, path))
				}
				if _, err := stdout.Write(ff.content); err != nil {
					return err
				}
			} else if err := writeFixed(path, ff.content); err != nil {
				return err
			}
		}
		if !a.settings.quiet {
			printFixReport(report, ff)
		}
		if err := a.writeDiagnostics(stderr, ff.remaining.Bag, ff.remaining.FileSet, "pretty"); err != nil {
			return err
		}
		if ff.remaining.Bag.HasErrors() {
			failed = true
		}
	}
	if failed {
		return errDiagnostics
	}
	return nil
}

// fixFile repairs path in memory. In ApplyModeAll it re-parses the new text
// after every pass so each follow-up error can contribute its own repair.
func fixFile(ctx context.Context, path string, opts driver.Options, applyOpts fix.ApplyOptions) (*fileFix, error) {
	res, err := driver.Parse(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	out := &fileFix{path: path, content: res.File.Content, remaining: res}

	for range maxFixPasses {
		ar, err := fix.Apply(res.FileSet, res.Bag.Items(), applyOpts)
		if ar != nil {
			out.applied = append(out.applied, ar.Applied...)
			out.skipped = append(out.skipped, ar.Skipped...)
		}
		if errors.Is(err, fix.ErrNoFixes) {
			break
		}
		if err != nil {
			return nil, err
		}
		out.content = ar.FileChanges[0].Content
		out.changed = true
		res = driver.ParseSource(ctx, path, out.content, opts)
		out.remaining = res
		if applyOpts.Mode != fix.ApplyModeAll {
			break
		}
	}
	return out, nil
}

func writeFixed(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printFixReport(w io.Writer, ff *fileFix) {
	if len(ff.applied) > 0 {
		fmt.Fprintf(w, "%s: applied %d %s\n", ff.path, len(ff.applied), plural(len(ff.applied), "fix", "fixes"))
		for _, item := range ff.applied {
			fmt.Fprintf(w, "  %s [%s] (%d %s)\n", item.Title, item.ID, item.EditCount, plural(item.EditCount, "edit", "edits"))
		}
	}
	for _, skip := range ff.skipped {
		id := skip.ID
		if id == "" {
			id = "(unnamed)"
		}
		if skip.Title != "" {
			fmt.Fprintf(w, "  skipped %s [%s]: %s\n", skip.Title, id, skip.Reason)
		} else {
			fmt.Fprintf(w, "  skipped [%s]: %s\n", id, skip.Reason)
		}
	}
}

// listFixes prints "path: id title" for every repair without applying any.
func listFixes(ctx context.Context, w io.Writer, files []string, opts driver.Options) error {
	for _, path := range files {
		res, err := driver.Parse(ctx, path, opts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		items := res.Bag.Items()
		ids := fix.FixIDs(items)
		for i := range items {
			for idx, f := range items[i].Fixes {
				fmt.Fprintf(w, "%s: %s %s\n", path, ids[i][idx], f.Title)
			}
		}
	}
	return nil
}
