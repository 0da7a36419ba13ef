package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"bong/internal/diagfmt"
	"bong/internal/driver"
	"bong/internal/token"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.bong|directory>",
		Short: "Tokenize a bong file",
		Long:  `Tokenize breaks a bong file into tokens. On a lexical error it prints the tokens read so far and the error.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokenize(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func (a *app) runTokenize(cmd *cobra.Command, target string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	writeTokens := func(toks []token.Token) error {
		if format == "json" {
			return diagfmt.FormatTokensJSON(stdout, toks)
		}
		return diagfmt.FormatTokensPretty(stdout, toks)
	}

	if isDir(target) {
		fileSet, results, err := driver.TokenizeDir(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		for i := range results {
			r := &results[i]
			if !a.settings.quiet {
				fmt.Fprintf(stdout, "== %s ==\n", displayPath(target, r.Path))
			}
			if err := writeTokens(r.Tokens); err != nil {
				return err
			}
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

	result, err := driver.Tokenize(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Токены до ошибки выводятся всегда
	if err := writeTokens(result.Tokens); err != nil {
		return err
	}
	if err := a.writeDiagnostics(stderr, result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

// displayPath shows path relative to the directory being processed.
func displayPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
