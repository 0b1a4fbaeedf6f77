package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"partref/internal/driver"
	"partref/internal/source"
	"partref/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

type generateOutcome struct {
	fs      *source.FileSet
	results []driver.GenerateFileResult
	err     error
}

// runCheckMany гоняет CheckMany, при включённом TUI — под прогресс-моделью.
func runCheckMany(cmd *cobra.Command, mode uiMode, files []string, opts driver.ManyOptions) (*source.FileSet, []driver.FileResult, error) {
	if !shouldUseTUI(mode, len(files)) {
		return driver.CheckMany(cmd.Context(), files, opts)
	}

	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)
	opts.Events = events

	go func() {
		fs, results, err := driver.CheckMany(cmd.Context(), files, opts)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
	}()

	model := ui.NewProgressModel("checking", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

func runGenerateMany(cmd *cobra.Command, mode uiMode, files []string, opts driver.GenerateManyOptions) (*source.FileSet, []driver.GenerateFileResult, error) {
	if !shouldUseTUI(mode, len(files)) {
		return driver.GenerateMany(cmd.Context(), files, opts)
	}

	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan generateOutcome, 1)
	opts.Events = events

	go func() {
		fs, results, err := driver.GenerateMany(cmd.Context(), files, opts)
		outcomeCh <- generateOutcome{fs: fs, results: results, err: err}
	}()

	model := ui.NewProgressModel("generating", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
