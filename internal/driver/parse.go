package driver

import (
	"context"
	"fmt"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

// ParseFileResult holds the tree of one file.
type ParseFileResult struct {
	Path   string
	FileID source.FileID
	Tree   *syntax.Tree
	Bag    *diag.Bag
}

// ParseFile parses one loaded file.
func ParseFile(fileSet *source.FileSet, id source.FileID, maxDiagnostics int) (ParseFileResult, error) {
	file := fileSet.Get(id)
	bag := diag.NewBag(bagCap(maxDiagnostics))

	maxErrors, err := safecast.Conv[uint](bagCap(maxDiagnostics))
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	tree, err := parseTree(file, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	if err != nil {
		return ParseFileResult{}, err
	}
	return ParseFileResult{
		Path:   file.Path,
		FileID: id,
		Tree:   tree,
		Bag:    bag,
	}, nil
}

// ParseDir parses every source file under dir in parallel.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []ParseFileResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs, loadErrors := loadAll(fileSet, files)

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]ParseFileResult, len(files))

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
				results[i] = ParseFileResult{Path: path, Bag: loadErrorBag(maxDiagnostics, loadErr)}
				return nil
			}
			res, err := ParseFile(fileSet, fileIDs[path], maxDiagnostics)
			if err != nil {
				return err
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
