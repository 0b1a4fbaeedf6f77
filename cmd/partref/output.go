package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"partref/internal/diag"
	"partref/internal/diagfmt"
	"partref/internal/driver"
	"partref/internal/source"
)

// outputOptions — общие настройки вывода диагностик для check и generate.
type outputOptions struct {
	format   string
	useColor bool
	quiet    bool
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	var opts outputOptions
	var err error
	opts.format, err = cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch opts.format {
	case "pretty", "json", "short":
	default:
		return opts, fmt.Errorf("unknown format: %s", opts.format)
	}
	opts.useColor, err = resolveColor(cmd)
	if err != nil {
		return opts, err
	}
	opts.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return opts, nil
}

// renderResults печатает диагностики набора файлов в выбранном формате и
// сообщает, были ли ошибки.
func renderResults(fs *source.FileSet, results []driver.FileResult, opts outputOptions) (bool, error) {
	hadErrors := false
	for _, r := range results {
		if r.Result != nil && r.Result.Bag.HasErrors() {
			hadErrors = true
			break
		}
	}

	switch opts.format {
	case "short":
		var all []diag.Diagnostic
		for _, r := range results {
			if r.Result == nil {
				continue
			}
			all = append(all, r.Result.Bag.Items()...)
		}
		output := diag.FormatShortDiagnostics(all, fs, true)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:     opts.useColor,
			Context:   2,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
			ShowFixes: true,
		}
		printed := false
		for _, r := range results {
			if r.Result == nil || r.Result.Bag.Len() == 0 {
				continue
			}
			if printed {
				fmt.Fprintln(os.Stdout)
			}
			printed = true
			if len(results) > 1 {
				fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			}
			diagfmt.Pretty(os.Stdout, r.Result.Bag, fs, prettyOpts)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			if r.Result == nil {
				continue
			}
			output[r.Path] = diagfmt.BuildDiagnosticsOutput(r.Result.Bag, fs, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return hadErrors, fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}

	return hadErrors, nil
}

// silentExit подавляет usage/ошибку cobra: диагностики уже напечатаны.
func silentExit(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
