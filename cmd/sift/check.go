package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sift/internal/analyze"
	"sift/internal/config"
	"sift/internal/diag"
	"sift/internal/diagfmt"
	"sift/internal/driver"
	"sift/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Parse and lint sources",
	Long:  `Check parses the given sources, runs the configured lint rules, and reports diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = one per CPU)")
	checkCmd.Flags().Bool("no-cache", false, "disable the on-disk result cache")
	checkCmd.Flags().Bool("progress", false, "show interactive progress (directories only)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return err
	}

	opts, err := buildCheckOptions(cmd, jobs, noCache)
	if err != nil {
		return err
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	var fileSet *source.FileSet
	bag := diag.NewBag(bagLimit(opts.MaxDiagnostics))

	if info.IsDir() {
		var results []driver.CheckFileResult
		if showProgress && isTerminal(os.Stdout) {
			fileSet, results, err = runCheckDirWithUI(cmd, targetPath, opts)
		} else {
			fileSet, results, err = driver.CheckDir(cmd.Context(), targetPath, opts)
		}
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}
		for _, r := range results {
			if r.Bag != nil {
				bag.Merge(r.Bag)
			}
		}
	} else {
		var result driver.CheckFileResult
		fileSet, result, err = driver.Check(targetPath, opts)
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}
		bag.Merge(result.Bag)
	}

	bag.Sort()
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			ShowNotes: !quiet,
		})
	case "json":
		if err := diagfmt.JSON(os.Stdout, bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     !quiet,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if bag.HasErrors() {
		return fmt.Errorf("%d problem(s) found", bag.Len())
	}
	return nil
}

// buildCheckOptions merges sift.toml with command-line flags; flags win.
func buildCheckOptions(cmd *cobra.Command, jobs int, noCache bool) (driver.CheckOptions, error) {
	cfg := config.Default()
	if manifest, ok, err := config.Load("."); err != nil {
		return driver.CheckOptions{}, err
	} else if ok {
		cfg = manifest.Config
	}

	var rules []analyze.Rule
	for _, r := range analyze.DefaultRules() {
		if cfg.RuleEnabled(r.Name()) {
			rules = append(rules, r)
		}
	}

	maxDiagnostics := maxDiagnosticsFlag(cmd)
	if maxDiagnostics <= 0 && cfg.Check.MaxDiagnostics > 0 {
		maxDiagnostics = int(cfg.Check.MaxDiagnostics)
	}
	if jobs == 0 {
		jobs = cfg.Check.Jobs
	}

	opts := driver.CheckOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Rules:          rules,
		Severity:       cfg.Rules.Severity,
	}
	if cfg.Check.Cache && !noCache {
		cache, err := driver.OpenDiskCache("sift")
		if err == nil {
			opts.Cache = cache
		}
	}
	return opts, nil
}

func bagLimit(maxDiagnostics int) int {
	if maxDiagnostics <= 0 {
		return 256
	}
	return maxDiagnostics
}
