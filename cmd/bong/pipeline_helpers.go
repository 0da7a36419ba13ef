package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bong/internal/diag"
	"bong/internal/diagfmt"
	"bong/internal/driver"
	"bong/internal/source"
)

// addParseFlags регистрирует флаги, общие для parse и check.
func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the parse cache")
	cmd.Flags().Int("max-depth", 0, "maximum object/array nesting (0=unlimited)")
	cmd.Flags().Bool("normalize-keys", false, "NFC-normalize object keys")
}

// driverOptions merges bong.toml values with the command's own flags.
// Flags that the command does not define keep the manifest value.
func (a *app) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	cfg := a.settings.cfg
	opts := driver.Options{
		MaxDiagnostics: cfg.Output.MaxDiagnostics,
		MaxDepth:       cfg.Parse.MaxDepth,
		NormalizeKeys:  cfg.Parse.NormalizeKeys,
		Jobs:           cfg.Run.Jobs,
		Include:        cfg.Run.Include,
		Timer:          a.timer,
	}

	flags := cmd.Flags()
	var err error
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if opts.Jobs < 0 {
			return opts, fmt.Errorf("--jobs must be >= 0, got %d", opts.Jobs)
		}
	}
	if flags.Lookup("max-depth") != nil && flags.Changed("max-depth") {
		if opts.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return opts, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
		if opts.MaxDepth < 0 {
			return opts, fmt.Errorf("--max-depth must be >= 0, got %d", opts.MaxDepth)
		}
	}
	if flags.Lookup("normalize-keys") != nil && flags.Changed("normalize-keys") {
		if opts.NormalizeKeys, err = flags.GetBool("normalize-keys"); err != nil {
			return opts, fmt.Errorf("failed to get normalize-keys flag: %w", err)
		}
	}

	useCache := cfg.CacheEnabled()
	if flags.Lookup("no-cache") != nil {
		noCache, err := flags.GetBool("no-cache")
		if err != nil {
			return opts, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		useCache = useCache && !noCache
	}
	if useCache {
		opts.Cache = a.openCache(cmd)
	}
	return opts, nil
}

// openCache opens the parse cache; failures only disable caching.
func (a *app) openCache(cmd *cobra.Command) *driver.DiskCache {
	dir, err := a.settings.manifest.CacheDir()
	if err == nil {
		var cache *driver.DiskCache
		if cache, err = driver.OpenDiskCache(dir); err == nil {
			return cache
		}
	}
	if !a.settings.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: parse cache disabled: %v\n", err)
	}
	return nil
}

// writeDiagnostics выводит диагностики в формате pretty, json или short.
func (a *app) writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	bag.Dedup()
	switch format {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case "short":
		out := diag.FormatShortDiagnostics(bag.Items(), fs, true)
		if out == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, out)
		return err
	default:
		if bag.Len() == 0 {
			return nil
		}
		if err := diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     a.settings.color,
			Context:   1,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
			ShowFixes: true,
		}); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}
}

// outputFormat returns the --format flag or, when unset, the manifest
// [output].format if the command accepts it.
func (a *app) outputFormat(cmd *cobra.Command, allowed ...string) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if !cmd.Flags().Changed("format") && a.settings.cfg.Output.Format != "" {
		for _, f := range allowed {
			if f == a.settings.cfg.Output.Format {
				format = f
			}
		}
	}
	for _, f := range allowed {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown format: %s", format)
}

// isDir reports whether path names an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
