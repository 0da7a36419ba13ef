package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bong/internal/diagfmt"
	"bong/internal/driver"
	"bong/internal/source"
	"bong/internal/value"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.bong|directory|->",
		Short: "Parse bong files into value trees",
		Long: `Parse reads one bong value per file and prints the resulting tree.
Pass a directory to parse every matching file in parallel, or - to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "value output format (pretty|json|msgpack)")
	addParseFlags(cmd)
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, target string) error {
	format, err := a.outputFormat(cmd, "pretty", "json", "msgpack")
	if err != nil {
		return err
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if target != "-" && isDir(target) {
		fileSet, results, err := a.parseDir(cmd, target, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if err := a.writeDirValues(stdout, target, results, format); err != nil {
			return err
		}
		bag := driver.MergeBags(results, opts.MaxDiagnostics)
		if err := a.writeDiagnostics(stderr, bag, fileSet, "pretty"); err != nil {
			return err
		}
		if bag.HasErrors() {
			return errDiagnostics
		}
		return nil
	}

	var result *driver.ParseResult
	if target == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		result = driver.ParseSource(cmd.Context(), "<stdin>", content, opts)
	} else {
		result, err = driver.Parse(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	}

	if err := a.writeDiagnostics(stderr, result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}
	if result.Value == nil {
		return errDiagnostics
	}
	return writeValue(stdout, result.Value, format)
}

// parseDir parses a directory, with the progress view when it is enabled.
func (a *app) parseDir(cmd *cobra.Command, dir string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return nil, nil, err
	}
	if shouldUseTUI(mode, cmd.ErrOrStderr(), a.settings.quiet) {
		return runParseDirWithUI(cmd.Context(), "parsing "+dir, dir, opts, cmd.ErrOrStderr())
	}
	return driver.ParseDir(cmd.Context(), dir, opts)
}

// writeDirValues prints every parsed tree. In pretty form each file gets a
// "== path ==" header and failed files are skipped; json and msgpack emit one
// object keyed by relative path with null for failed files.
func (a *app) writeDirValues(w io.Writer, dir string, results []driver.FileResult, format string) error {
	if format == "pretty" {
		for i := range results {
			r := &results[i]
			if r.Value == nil {
				continue
			}
			if !a.settings.quiet {
				fmt.Fprintf(w, "== %s ==\n", displayPath(dir, r.Path))
			}
			if err := diagfmt.FormatValuePretty(w, r.Value); err != nil {
				return err
			}
		}
		return nil
	}

	all := make(value.Object, len(results))
	for i := range results {
		r := &results[i]
		if r.Value == nil {
			all[displayPath(dir, r.Path)] = value.Null{}
			continue
		}
		all[displayPath(dir, r.Path)] = r.Value
	}
	return writeValue(w, all, format)
}

func writeValue(w io.Writer, n value.Node, format string) error {
	switch format {
	case "json":
		return diagfmt.FormatValueJSON(w, n)
	case "msgpack":
		return diagfmt.FormatValueMsgpack(w, n)
	default:
		return diagfmt.FormatValuePretty(w, n)
	}
}
