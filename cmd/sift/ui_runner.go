package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sift/internal/driver"
	"sift/internal/source"
	"sift/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.CheckFileResult
	err     error
}

// runCheckDirWithUI runs the directory check behind a Bubble Tea progress
// view. Worker completions stream into the model through an event channel.
func runCheckDirWithUI(cmd *cobra.Command, dir string, opts driver.CheckOptions) (*source.FileSet, []driver.CheckFileResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan ui.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	opts.Observer = func(_, _ int, path string) {
		events <- ui.Event{File: path, Status: ui.StatusDone}
	}

	go func() {
		fileSet, results, err := driver.CheckDir(cmd.Context(), dir, opts)
		outcomeCh <- checkOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
