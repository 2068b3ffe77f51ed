package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sift/internal/diagfmt"
	"sift/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.js|file.css>",
	Short: "Tokenize a source file",
	Long:  `Tokenize breaks a source file into its tokens, trivia attached`,
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

	fileSet, result, err := driver.Tokenize(args[0], maxDiagnosticsFlag(cmd))
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.HasWarnings() {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.Lang, fileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, result.Lang)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
