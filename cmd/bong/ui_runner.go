package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"bong/internal/driver"
	"bong/internal/source"
	"bong/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runParseDirWithUI runs driver.ParseDir while a progress view renders to out.
func runParseDirWithUI(ctx context.Context, title, dir string, opts driver.Options, out io.Writer) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListFiles(dir, opts.Include)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал: дочитываем события, чтобы воркеры не встали на отправке
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
