package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"strait/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "strait",
	Short: "Strait contract diagnostics toolchain",
	Long:  `Strait renders the compiler's contract obligation failures into diagnostics`,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0=manifest)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
