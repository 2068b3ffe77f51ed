package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"sift/internal/analyze"
	"sift/internal/diag"
	"sift/internal/fix"
	"sift/internal/parser"
	"sift/internal/source"
)

// FixOptions configures the fix pipeline.
type FixOptions struct {
	MaxDiagnostics int
	Jobs           int
	Rules          []analyze.Rule
	Mode           fix.Mode
	// DryRun computes rewrites without touching the filesystem.
	DryRun bool
}

// FixFileResult holds one file's fix outcome.
type FixFileResult struct {
	Path    string
	FileID  source.FileID
	Bag     *diag.Bag
	Applied []fix.Applied
	Skipped []fix.Skipped
	Changed bool
	// Output is the rewritten source when Changed.
	Output string
}

// FixFile parses, analyzes, and rewrites one loaded file in memory.
func FixFile(fileSet *source.FileSet, id source.FileID, opts *FixOptions) (FixFileResult, error) {
	file := fileSet.Get(id)
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
		return FixFileResult{}, err
	}

	signals := analyze.New(opts.Rules...).Run(tree)
	outcome, err := fix.Apply(tree, signals, opts.Mode)
	if err != nil {
		return FixFileResult{}, fmt.Errorf("%s: %w", file.Path, err)
	}

	res := FixFileResult{
		Path:    file.Path,
		FileID:  id,
		Bag:     bag,
		Applied: outcome.Applied,
		Skipped: outcome.Skipped,
	}
	if outcome.Changed() {
		out := outcome.Tree.Text()
		if out != string(file.Content) {
			res.Changed = true
			res.Output = out
		}
	}
	return res, nil
}

// FixDir fixes every source file under dir in parallel and writes changed
// files back, preserving their permissions.
func FixDir(ctx context.Context, dir string, opts FixOptions) (*source.FileSet, []FixFileResult, error) {
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
	results := make([]FixFileResult, len(files))

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
				results[i] = FixFileResult{Path: path, Bag: loadErrorBag(opts.MaxDiagnostics, loadErr)}
				return nil
			}
			res, err := FixFile(fileSet, fileIDs[path], &opts)
			if err != nil {
				return err
			}
			if res.Changed && !opts.DryRun {
				if err := writeBack(path, res.Output); err != nil {
					return err
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func writeBack(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}
