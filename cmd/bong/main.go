package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bong/internal/observ"
	"bong/internal/prof"
	"bong/internal/trace"
	"bong/internal/version"
)

// errDiagnostics означает, что команда уже напечатала ошибки и должна
// завершиться с кодом 1 без дополнительного сообщения.
var errDiagnostics = errors.New("errors reported")

// app держит состояние одного запуска CLI: настройки, трассировку и таймер.
type app struct {
	settings *settings
	timer    *observ.Timer
	cleanup  func()
	profile  *prof.Session
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.finish(stderr)

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDiagnostics):
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bong",
		Short:         "bong literal-value tokenizer and parser",
		Long:          `bong tokenizes and parses bong literal values: objects, arrays, strings, numbers, booleans and null`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to bong.toml (default: nearest above the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr, .ndjson for NDJSON)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", trace.DefaultRingSize, "events kept in ring mode")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	// Добавляем команды
	rootCmd.AddCommand(newTokenizeCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newFixCmd(a))
	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newCleanCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

// setup загружает настройки и трассировку перед запуском подкоманды.
func (a *app) setup(cmd *cobra.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	a.settings = s
	color.NoColor = !s.color

	if s.timings {
		a.timer = observ.NewTimer()
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	a.cleanup = cleanup

	if a.profile, err = setupProfiling(cmd); err != nil {
		return err
	}
	return nil
}

// finish flushes tracing and prints timings; it runs even when the command failed.
func (a *app) finish(stderr io.Writer) {
	if err := a.profile.Stop(); err != nil {
		fmt.Fprintf(stderr, "profile: %v\n", err)
	}
	if a.cleanup != nil {
		a.cleanup()
	}
	if a.timer != nil {
		printTimings(stderr, a.timer)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
