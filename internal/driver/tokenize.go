package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

// TokenizeFileResult holds the token stream of one file.
type TokenizeFileResult struct {
	Path   string
	FileID source.FileID
	Lang   *syntax.Language
	Tokens []parser.Lexed
	Bag    *diag.Bag
}

// TokenizeFile lexes one loaded file to EOF.
func TokenizeFile(fileSet *source.FileSet, id source.FileID, maxDiagnostics int) (TokenizeFileResult, error) {
	file := fileSet.Get(id)
	bag := diag.NewBag(bagCap(maxDiagnostics))

	lx, lang, err := lexerFor(file, diag.BagReporter{Bag: bag})
	if err != nil {
		return TokenizeFileResult{}, err
	}

	var tokens []parser.Lexed
	for {
		tok := lx.Next(parser.LexRegular)
		tokens = append(tokens, tok)
		if tok.Kind == lang.EOFKind {
			break
		}
	}
	return TokenizeFileResult{
		Path:   file.Path,
		FileID: id,
		Lang:   lang,
		Tokens: tokens,
		Bag:    bag,
	}, nil
}

// TokenizeDir tokenizes every source file under dir in parallel.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeFileResult, error) {
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
	results := make([]TokenizeFileResult, len(files))

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
				results[i] = TokenizeFileResult{Path: path, Bag: loadErrorBag(maxDiagnostics, loadErr)}
				return nil
			}
			res, err := TokenizeFile(fileSet, fileIDs[path], maxDiagnostics)
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
