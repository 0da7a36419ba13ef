package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bong/internal/diag"
	"bong/internal/driver"
	"bong/internal/source"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.bong|directory|->",
		Short: "Validate bong files without printing values",
		Long:  `Check parses the input and prints only diagnostics. It exits with status 1 if any file has an error.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	addParseFlags(cmd)
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, target string) error {
	format, err := a.outputFormat(cmd, "pretty", "json", "short")
	if err != nil {
		return err
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	var (
		fileSet *source.FileSet
		bag     *diag.Bag
		files   int
		failed  int
	)
	switch {
	case target != "-" && isDir(target):
		var results []driver.FileResult
		fileSet, results, err = a.parseDir(cmd, target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		bag = driver.MergeBags(results, opts.MaxDiagnostics)
		files = len(results)
		for i := range results {
			if results[i].Failed() {
				failed++
			}
		}
	case target == "-":
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		res := driver.ParseSource(cmd.Context(), "<stdin>", content, opts)
		fileSet, bag, files = res.FileSet, res.Bag, 1
	default:
		res, err := driver.Parse(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		fileSet, bag, files = res.FileSet, res.Bag, 1
	}
	if files == 1 && bag.HasErrors() {
		failed = 1
	}

	if err := a.writeDiagnostics(cmd.OutOrStdout(), bag, fileSet, format); err != nil {
		return err
	}
	if !a.settings.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d %s: %d with errors\n", files, plural(files, "file", "files"), failed)
	}
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
