package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"partref/internal/diagfmt"
	"partref/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file.pref>",
	Short: "Dump the token stream of a declaration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if _, err := resolveColor(cmd); err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenize failed: %w", err)
	}

	switch format {
	case "pretty":
		if err := diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet); err != nil {
			return fmt.Errorf("failed to format tokens: %w", err)
		}
	case "json":
		if err := diagfmt.FormatTokensJSON(os.Stdout, result.Tokens); err != nil {
			return fmt.Errorf("failed to format tokens: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		return silentExit(cmd)
	}
	return nil
}
