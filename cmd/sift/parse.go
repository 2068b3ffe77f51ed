package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sift/internal/diagfmt"
	"sift/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.js|file.css>",
	Short: "Parse a source file and dump its tree",
	Long:  `Parse builds the lossless tree of a source file and prints its structure`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("no-dump", false, "suppress the tree dump, report diagnostics only")
}

func runParse(cmd *cobra.Command, args []string) error {
	noDump, err := cmd.Flags().GetBool("no-dump")
	if err != nil {
		return err
	}

	fileSet, result, err := driver.Parse(args[0], maxDiagnosticsFlag(cmd))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.HasWarnings() {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	if !noDump {
		diagfmt.DumpTree(os.Stdout, result.Tree)
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%d problem(s) found", result.Bag.Len())
	}
	return nil
}
