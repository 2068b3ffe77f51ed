package driver

import (
	"sift/internal/source"
)

// Tokenize loads and lexes one file.
func Tokenize(path string, maxDiagnostics int) (*source.FileSet, TokenizeFileResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, TokenizeFileResult{}, err
	}
	res, err := TokenizeFile(fileSet, id, maxDiagnostics)
	return fileSet, res, err
}

// Parse loads and parses one file.
func Parse(path string, maxDiagnostics int) (*source.FileSet, ParseFileResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, ParseFileResult{}, err
	}
	res, err := ParseFile(fileSet, id, maxDiagnostics)
	return fileSet, res, err
}

// Check loads, parses, and analyzes one file.
func Check(path string, opts CheckOptions) (*source.FileSet, CheckFileResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, CheckFileResult{}, err
	}
	res, err := CheckFile(fileSet, id, &opts)
	return fileSet, res, err
}

// Fix loads, analyzes, and rewrites one file, writing it back unless
// DryRun.
func Fix(path string, opts FixOptions) (*source.FileSet, FixFileResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, FixFileResult{}, err
	}
	res, err := FixFile(fileSet, id, &opts)
	if err != nil {
		return fileSet, res, err
	}
	if res.Changed && !opts.DryRun {
		if err := writeBack(path, res.Output); err != nil {
			return fileSet, res, err
		}
	}
	return fileSet, res, nil
}
