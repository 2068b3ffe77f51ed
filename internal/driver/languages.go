package driver

import (
	"fmt"
	"path/filepath"

	"sift/internal/css"
	"sift/internal/diag"
	"sift/internal/js"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

// sourceExtensions lists the file types the toolchain understands.
var sourceExtensions = []string{".js", ".css"}

// LanguageFor selects the grammar by file extension.
func LanguageFor(path string) (*syntax.Language, bool) {
	switch filepath.Ext(path) {
	case ".js":
		return &js.Lang, true
	case ".css":
		return &css.Lang, true
	default:
		return nil, false
	}
}

// lexerFor creates the grammar's lexer for a loaded file.
func lexerFor(f *source.File, rep diag.Reporter) (parser.LanguageLexer, *syntax.Language, error) {
	switch filepath.Ext(f.Path) {
	case ".js":
		return js.NewLexer(f, rep), &js.Lang, nil
	case ".css":
		return css.NewLexer(f, rep), &css.Lang, nil
	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s", f.Path)
	}
}

// parseTree parses a loaded file with the grammar its extension selects.
func parseTree(f *source.File, opts parser.Options) (*syntax.Tree, error) {
	switch filepath.Ext(f.Path) {
	case ".js":
		return js.Parse(f, opts), nil
	case ".css":
		return css.Parse(f, opts), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", f.Path)
	}
}
