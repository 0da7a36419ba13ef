package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bong/internal/project"
)

// settings — итоговая конфигурация: bong.toml поверх значений по умолчанию,
// поверх него явно заданные флаги.
type settings struct {
	cfg      project.Config
	manifest *project.Manifest
	color    bool
	quiet    bool
	timings  bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	var manifest *project.Manifest
	if configPath != "" {
		manifest, err = project.Load(configPath)
	} else {
		manifest, _, err = project.LoadNearest(".")
	}
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	cfg := project.DefaultConfig()
	if manifest != nil {
		cfg = manifest.Config
	}

	if flags.Changed("color") {
		if cfg.Output.Color, err = flags.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if flags.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid option: %w", err)
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	colorFlag := cfg.Output.Color
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(cmd.ErrOrStderr()))

	return &settings{
		cfg:      cfg,
		manifest: manifest,
		color:    useColor,
		quiet:    quiet,
		timings:  timings,
	}, nil
}
