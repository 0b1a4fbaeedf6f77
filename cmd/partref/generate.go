package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"partref/internal/driver"
	"partref/internal/project"
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate accessor files from .pref declarations",
	Long: `Generate checks every file and, when it is clean, writes the
<stem>` + project.DefaultSuffix + `.go accessor file next to it. The partref.toml manifest
(found by walking up from the working directory) supplies the suffix,
output directory and type-qualifier imports; flags override it.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("format", "pretty", "output format for diagnostics (pretty|json|short)")
	generateCmd.Flags().Bool("check-only", false, "verify generated files are up to date, write nothing")
	generateCmd.Flags().String("suffix", "", "output filename suffix (default from manifest)")
	generateCmd.Flags().String("output-dir", "", "directory for generated files (default: next to source)")
	generateCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	generateCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	outOpts, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}

	checkOnly, err := cmd.Flags().GetBool("check-only")
	if err != nil {
		return fmt.Errorf("failed to get check-only flag: %w", err)
	}
	suffix, err := cmd.Flags().GetString("suffix")
	if err != nil {
		return fmt.Errorf("failed to get suffix flag: %w", err)
	}
	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return fmt.Errorf("failed to get output-dir flag: %w", err)
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
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	// Манифест ищется от рабочего каталога; отсутствие — не ошибка.
	manifest, err := loadManifest()
	if err != nil {
		return err
	}
	if suffix == "" {
		suffix = manifest.Generate.Suffix
	}
	if outputDir == "" {
		outputDir = manifest.Generate.OutputDir
	}

	opts := driver.GenerateManyOptions{
		GenerateOptions: driver.GenerateOptions{
			Options: driver.Options{
				MaxDiagnostics: maxDiagnostics,
				Timings:        showTimings,
			},
			Suffix:    suffix,
			OutputDir: outputDir,
			Imports:   manifest.Generate.Imports,
			CheckOnly: checkOnly,
		},
		Jobs: jobs,
	}

	files, err := driver.CollectFiles(args)
	if err != nil {
		return err
	}

	fs, results, err := runGenerateMany(cmd, mode, files, opts)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	checkResults := make([]driver.FileResult, 0, len(results))
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		checkResults = append(checkResults, driver.FileResult{Path: r.Path, Result: r.Result.Result})
	}
	hadErrors, err := renderResults(fs, checkResults, outOpts)
	if err != nil {
		return err
	}
	if showTimings {
		printGenerateTimings(os.Stdout, results)
	}

	written := 0
	for _, r := range results {
		if r.Result != nil && r.Result.Written {
			written++
			if !outOpts.quiet {
				fmt.Fprintf(os.Stdout, "wrote %s\n", r.Result.OutPath)
			}
		}
	}
	if !outOpts.quiet {
		if checkOnly {
			fmt.Fprintf(os.Stdout, "verified %d file(s)\n", len(results))
		} else {
			fmt.Fprintf(os.Stdout, "generated %d of %d file(s)\n", written, len(results))
		}
	}
	if hadErrors {
		return silentExit(cmd)
	}
	return nil
}

// loadManifest возвращает ближайший partref.toml вверх от рабочего
// каталога либо манифест по умолчанию.
func loadManifest() (*project.Manifest, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	manifest, ok, err := project.FindAndLoad(wd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return project.Default(), nil
	}
	return manifest, nil
}
