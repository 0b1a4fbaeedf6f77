package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"partref/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check .pref declaration files",
	Long: `Check runs the full pipeline (lex, parse, sema with the capability
algebra) over the given files. Directories are walked recursively for
*.pref files; with no arguments the current directory is checked.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().String("stage", "full", "pipeline stage to stop after (lex|parse|full)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("disk-cache", false, "enable persistent result cache (experimental)")
	checkCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	outOpts, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}

	stageStr, err := cmd.Flags().GetString("stage")
	if err != nil {
		return fmt.Errorf("failed to get stage flag: %w", err)
	}
	var stage driver.Stage
	switch stageStr {
	case "lex":
		stage = driver.StageLex
	case "parse":
		stage = driver.StageParse
	case "full":
		stage = driver.StageFull
	default:
		return fmt.Errorf("unknown stage value: %s", stageStr)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	opts := driver.ManyOptions{
		Options: driver.Options{
			Stage:          stage,
			MaxDiagnostics: maxDiagnostics,
			Timings:        showTimings,
		},
		Jobs: jobs,
	}
	if enableDiskCache {
		cache, err := driver.OpenDiskCache("partref")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	files, err := driver.CollectFiles(args)
	if err != nil {
		return err
	}

	fs, results, err := runCheckMany(cmd, mode, files, opts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	hadErrors, err := renderResults(fs, results, outOpts)
	if err != nil {
		return err
	}
	if showTimings {
		printFileTimings(os.Stdout, results)
	}
	if !outOpts.quiet {
		fmt.Fprintf(os.Stdout, "checked %d file(s)\n", len(results))
	}
	if hadErrors {
		return silentExit(cmd)
	}
	return nil
}
