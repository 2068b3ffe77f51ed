package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sift/internal/analyze"
	"sift/internal/config"
	"sift/internal/driver"
	"sift/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply available fixes to sources",
	Long:  "Run the lint rules and apply their structural fixes, rewriting files in place.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("unsafe", false, "also apply fixes that may need review")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	fixCmd.Flags().Int("jobs", 0, "parallel workers (0 = one per CPU)")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	unsafeFixes, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	cfg := config.Default()
	if manifest, ok, err := config.Load("."); err != nil {
		return err
	} else if ok {
		cfg = manifest.Config
	}
	var rules []analyze.Rule
	for _, r := range analyze.DefaultRules() {
		if cfg.RuleEnabled(r.Name()) {
			rules = append(rules, r)
		}
	}

	mode := fix.ModeSafe
	if unsafeFixes {
		mode = fix.ModeAll
	}
	opts := driver.FixOptions{
		MaxDiagnostics: maxDiagnosticsFlag(cmd),
		Jobs:           jobs,
		Rules:          rules,
		Mode:           mode,
		DryRun:         dryRun,
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	var results []driver.FixFileResult
	if info.IsDir() {
		_, results, err = driver.FixDir(cmd.Context(), targetPath, opts)
	} else {
		var result driver.FixFileResult
		_, result, err = driver.Fix(targetPath, opts)
		results = []driver.FixFileResult{result}
	}
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	return printFixResults(results, dryRun)
}

func printFixResults(results []driver.FixFileResult, dryRun bool) error {
	applied, changed := 0, 0
	for _, r := range results {
		if len(r.Applied) == 0 && len(r.Skipped) == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s:\n", r.Path)
		for _, a := range r.Applied {
			fmt.Fprintf(os.Stdout, "  applied %s: %s\n", a.Rule, a.Title)
			applied++
		}
		for _, s := range r.Skipped {
			fmt.Fprintf(os.Stdout, "  skipped %s: %s (%s)\n", s.Rule, s.Title, s.Reason)
		}
		if r.Changed {
			changed++
		}
	}

	switch {
	case applied == 0:
		fmt.Fprintln(os.Stdout, "No applicable fixes found.")
	case dryRun:
		fmt.Fprintf(os.Stdout, "%d fix(es) would change %d file(s).\n", applied, changed)
	default:
		fmt.Fprintf(os.Stdout, "Applied %d fix(es) across %d file(s).\n", applied, changed)
	}
	return nil
}
