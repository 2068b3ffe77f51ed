// Package driver runs the toolchain pipelines over files and directories:
// tokenize, parse, check, and fix. Directory pipelines process files in
// parallel with a bounded worker group and return results in a
// deterministic order.
package driver

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"sift/internal/diag"
	"sift/internal/source"
)

const defaultMaxDiagnostics = 256

func bagCap(maxDiagnostics int) int {
	if maxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return maxDiagnostics
}

// ListSourceFiles returns the sorted source files under dir; the UI uses it
// to pre-populate its file list.
func ListSourceFiles(dir string) ([]string, error) {
	return listSourceFiles(dir)
}

// listSourceFiles returns a sorted list of all supported source files under
// dir.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range sourceExtensions {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// loadAll preloads every file into the set; load failures are collected
// instead of aborting the run.
func loadAll(fileSet *source.FileSet, files []string) (map[string]source.FileID, map[string]error) {
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}
	return fileIDs, loadErrors
}

func loadErrorBag(maxDiagnostics int, loadErr error) *diag.Bag {
	bag := diag.NewBag(bagCap(maxDiagnostics))
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + loadErr.Error(),
		Primary:  source.Span{},
	})
	return bag
}
