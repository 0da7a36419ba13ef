package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bong/internal/project"
)

const exampleFile = "example.bong"

const exampleContent = `// example bong value
{
  name: "example",
  version: 1,
  ratio: 0.5,
  enabled: true,
  tags: ["demo", "bong"],
  parent: null
}
`

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create a bong.toml manifest",
		Long: `Init writes bong.toml with the default settings and an example.bong next
to it. If [path] is omitted the current directory is used; a missing directory is created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return a.runInit(cmd, target)
		},
	}
}

// runInit refuses to overwrite an existing bong.toml; an existing
// example.bong is left untouched.
func (a *app) runInit(cmd *cobra.Command, target string) error {
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	data, err := project.Encode(project.DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	examplePath := filepath.Join(target, exampleFile)
	createdExample := false
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(examplePath, []byte(exampleContent), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", exampleFile, err)
		}
		createdExample = true
	}

	if a.settings.quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized bong project in %s\n", target)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdExample {
		fmt.Fprintf(out, "  - %s\n", exampleFile)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", exampleFile)
	}
	return nil
}
