package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bong/internal/driver"
)

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the parse cache",
		Long:  "Remove every cached value tree from the cache directory of the current project.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runClean(cmd)
		},
	}
}

func (a *app) runClean(cmd *cobra.Command) error {
	dir, err := a.settings.manifest.CacheDir()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "cache directory not found")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}

	cache, err := driver.OpenDiskCache(dir)
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear %q: %w", dir, err)
	}
	if !a.settings.quiet {
		fmt.Fprintf(out, "removed %s\n", dir)
	}
	return nil
}
