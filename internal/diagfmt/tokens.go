package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

// TokenOutput is one token in JSON output.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

func triviaKinds(leading []syntax.Trivia) []string {
	var out []string
	for _, tr := range leading {
		out = append(out, tr.Kind.String())
	}
	return out
}

// FormatTokensPretty prints a token stream in a human-readable format.
func FormatTokensPretty(w io.Writer, tokens []parser.Lexed, lang *syntax.Language, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		fmt.Fprintf(w, "%3d: %-24s", i+1, lang.KindName(tok.Kind))
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if leading := triviaKinds(tok.Leading); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == lang.EOFKind {
			break
		}
	}
	return nil
}

// FormatTokensJSON prints a token stream as JSON.
func FormatTokensJSON(w io.Writer, tokens []parser.Lexed, lang *syntax.Language) error {
	var output []TokenOutput
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    lang.KindName(tok.Kind),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: triviaKinds(tok.Leading),
		})
		if tok.Kind == lang.EOFKind {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
