package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"partref/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "partref",
	Short: "Capability checker and accessor generator for partial references",
	Long: `partref checks .pref declaration files (parts, records, views,
borrows and splits) against the capability algebra and generates
zero-cost Go accessor types for every transfer it proved safe.`,
}

func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor читает --color и настраивает fatih/color глобально.
func resolveColor(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	var use bool
	switch value {
	case "always":
		use = true
	case "never":
		use = false
	case "auto":
		use = isTerminal(os.Stdout)
	default:
		return false, errUnknownColor(value)
	}
	color.NoColor = !use
	return use, nil
}
