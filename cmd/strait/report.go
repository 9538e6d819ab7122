package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strait/internal/diag"
	"strait/internal/diagfmt"
	"strait/internal/driver"
	"strait/internal/project"
)

var reportCmd = &cobra.Command{
	Use:   "report [flags] <failures.mp>",
	Short: "Render a solver failure dump into diagnostics",
	Long:  `Read the failure dump the compiler wrote during obligation solving and print the resulting diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().String("format", "", "output format (pretty|json|short), default from strait.toml")
	reportCmd.Flags().Int("jobs", 0, "max parallel render workers (0=auto)")
	reportCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	reportCmd.Flags().Bool("no-source", false, "omit source lines and underlines")
	reportCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runReport(cmd *cobra.Command, args []string) error {
	dumpPath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	noSource, err := cmd.Flags().GetBool("no-source")
	if err != nil {
		return fmt.Errorf("failed to get no-source flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	manifest, _, err := project.Load(".")
	if err != nil {
		return err
	}
	if format == "" {
		format = manifest.Config.Output.Format
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = manifest.Config.Output.MaxDiagnostics
	}

	opts := driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		RecursionLimit: manifest.Config.Limits.Recursion,
	}
	sess, fatal, err := driver.RunFile(cmd.Context(), dumpPath, opts)
	if err != nil {
		return err
	}

	sess.Bag.Sort()

	pathMode := pickPathMode(manifest.Config.Output.Paths)
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	useColor := colorFlag == "on" ||
		(colorFlag == "auto" && manifest.Config.Output.Color != "never" && isTerminal(os.Stdout)) ||
		(colorFlag == "auto" && manifest.Config.Output.Color == "always")

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, sess.Bag, sess.Files, diagfmt.PrettyOpts{
			Color:      useColor,
			PathMode:   pathMode,
			ShowNotes:  withNotes,
			ShowSource: !noSource,
		})
	case "short":
		output := diag.FormatShortDiagnostics(sess.Bag.Items(), sess.Files, withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		}
		if err := diagfmt.JSON(os.Stdout, sess.Bag, sess.Files, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if fatal != nil {
		fmt.Fprintf(os.Stderr, "strait: fatal %s: %s\n", fatal.Code.ID(), fatal.Msg)
		os.Exit(2)
	}
	if sess.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func pickPathMode(mode string) diagfmt.PathMode {
	switch mode {
	case "absolute":
		return diagfmt.PathModeAbsolute
	case "relative":
		return diagfmt.PathModeRelative
	case "basename":
		return diagfmt.PathModeBasename
	default:
		return diagfmt.PathModeAuto
	}
}
