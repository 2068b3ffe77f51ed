package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sift/internal/diag"
	"sift/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	codeColor = color.New(color.Faint)
	noteColor = color.New(color.FgBlue)
)

// Pretty renders diagnostics for humans. It walks bag.Items() (the caller
// sorts the bag first) and prints, per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~~ underline
//
// followed by notes and the footer.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printHeader(w, d, fs, opts)
		printSpanContext(w, d.Primary, fs, severityColor(d.Severity), opts.Color)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				start, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
					paint(noteColor, "note:", opts.Color),
					formatPath(fs, n.Span.File, opts.PathMode),
					start.Line, start.Col, n.Msg)
				printSpanContext(w, n.Span, fs, noteColor, opts.Color)
			}
		}
		if d.Footer != "" {
			fmt.Fprintf(w, "  = %s\n", d.Footer)
		}
	}
}

func printHeader(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	sev := severityColor(d.Severity)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(fs, d.Primary.File, opts.PathMode),
		start.Line, start.Col,
		paint(sev, strings.ToUpper(d.Severity.String()), opts.Color),
		paint(codeColor, d.Code.ID(), opts.Color),
		d.Message)
}

// printSpanContext prints the first line the span covers with a caret
// underline. Widths are measured in display cells so wide runes line up.
func printSpanContext(w io.Writer, sp source.Span, fs *source.FileSet, c *color.Color, useColor bool) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && start.Col > 1 {
		return
	}

	fmt.Fprintf(w, "    %s\n", line)

	prefixCols := start.Col - 1
	if prefixCols > uint32(len(line)) {
		prefixCols = uint32(len(line))
	}
	pad := runewidth.StringWidth(line[:prefixCols])

	spanEnd := uint32(len(line))
	if end.Line == start.Line && end.Col-1 < spanEnd {
		spanEnd = end.Col - 1
	}
	width := 1
	if spanEnd > prefixCols {
		width = runewidth.StringWidth(line[prefixCols:spanEnd])
		if width < 1 {
			width = 1
		}
	}

	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), paint(c, marker, useColor))
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}
