package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"partref/internal/diagfmt"
	"partref/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.pref>",
	Short: "Dump the AST of a declaration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   2,
			ShowNotes: true,
		})
	}
	if result.AST == nil {
		return silentExit(cmd)
	}

	switch format {
	case "pretty":
		if err := diagfmt.FormatASTPretty(os.Stdout, result.AST, result.FileSet); err != nil {
			return fmt.Errorf("failed to format AST: %w", err)
		}
	case "json":
		if err := diagfmt.FormatASTJSON(os.Stdout, result.AST); err != nil {
			return fmt.Errorf("failed to format AST: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		return silentExit(cmd)
	}
	return nil
}
