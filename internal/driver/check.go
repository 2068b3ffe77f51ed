package driver

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"sift/internal/analyze"
	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

// CheckOptions configures the check pipeline.
type CheckOptions struct {
	MaxDiagnostics int
	Jobs           int
	Rules          []analyze.Rule
	// Cache, when non-nil, serves unchanged files from disk.
	Cache *DiskCache
	// Severity overrides rule severities by name: "info", "warning",
	// "error".
	Severity map[string]string
	// Observer, when set, is called after each file finishes.
	Observer func(done, total int, path string)
}

// CheckFileResult holds one file's diagnostics and lint signals.
type CheckFileResult struct {
	Path    string
	FileID  source.FileID
	Tree    *syntax.Tree // nil when served from cache
	Bag     *diag.Bag
	Signals []analyze.Signal
	// FromCache marks results restored from the disk cache.
	FromCache bool
}

// ruleSetKey identifies the rule configuration for cache invalidation.
func ruleSetKey(opts *CheckOptions) string {
	var sb strings.Builder
	for _, r := range opts.Rules {
		sb.WriteString(r.Name())
		if sev, ok := opts.Severity[r.Name()]; ok {
			sb.WriteByte('=')
			sb.WriteString(sev)
		}
		sb.WriteByte(',')
	}
	return sb.String()
}

func overrideSeverity(d diag.Diagnostic, sev string) diag.Diagnostic {
	switch sev {
	case "info":
		d.Severity = diag.SevInfo
	case "warning":
		d.Severity = diag.SevWarning
	case "error":
		d.Severity = diag.SevError
	}
	return d
}

// CheckFile parses and analyzes one loaded file, consulting the cache
// first.
func CheckFile(fileSet *source.FileSet, id source.FileID, opts *CheckOptions) (CheckFileResult, error) {
	file := fileSet.Get(id)
	key := ruleSetKey(opts)

	if opts.Cache != nil {
		var payload DiskPayload
		if hit, err := opts.Cache.Get(file.Hash, &payload); err == nil && hit && payload.RuleSet == key {
			bag := diag.NewBag(bagCap(opts.MaxDiagnostics))
			restoreDiagnostics(payload.Diagnostics, id, bag)
			return CheckFileResult{Path: file.Path, FileID: id, Bag: bag, FromCache: true}, nil
		}
	}

	bag := diag.NewBag(bagCap(opts.MaxDiagnostics))
	maxErrors, err := safecast.Conv[uint](bagCap(opts.MaxDiagnostics))
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	tree, err := parseTree(file, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	if err != nil {
		return CheckFileResult{}, err
	}

	analyzer := analyze.New(opts.Rules...)
	signals := analyzer.Run(tree)
	fixable := 0
	for i, sig := range signals {
		if sev, ok := opts.Severity[sig.Rule]; ok {
			signals[i].Diagnostic = overrideSeverity(sig.Diagnostic, sev)
		}
		bag.Add(signals[i].Diagnostic)
		if len(sig.Actions) > 0 {
			fixable++
		}
	}

	if opts.Cache != nil {
		payload := &DiskPayload{
			Schema:      diskCacheSchemaVersion,
			RuleSet:     key,
			Diagnostics: cacheDiagnostics(bag),
			Fixable:     fixable,
		}
		// best effort: a failed write only costs a reparse next run
		_ = opts.Cache.Put(file.Hash, payload)
	}

	return CheckFileResult{
		Path:    file.Path,
		FileID:  id,
		Tree:    tree,
		Bag:     bag,
		Signals: signals,
	}, nil
}

// CheckDir checks every source file under dir in parallel.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*source.FileSet, []CheckFileResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs, loadErrors := loadAll(fileSet, files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]CheckFileResult, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = CheckFileResult{Path: path, Bag: loadErrorBag(opts.MaxDiagnostics, loadErr)}
			} else {
				res, err := CheckFile(fileSet, fileIDs[path], &opts)
				if err != nil {
					return err
				}
				results[i] = res
			}
			if opts.Observer != nil {
				opts.Observer(int(done.Add(1)), len(files), path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
