package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"sift/internal/syntax"
)

// DumpTree prints the tree structure with one element per line:
// node kinds with their spans, tokens with their text.
func DumpTree(w io.Writer, tree *syntax.Tree) {
	dumpNode(w, tree.Root(), 0)
}

func dumpNode(w io.Writer, n *syntax.Node, depth int) {
	lang := n.Tree().Language()
	sp := n.FullSpan()
	fmt.Fprintf(w, "%s%s@%d..%d\n", strings.Repeat("  ", depth), lang.KindName(n.Kind()), sp.Start, sp.End)
	for _, c := range n.Children() {
		switch c := c.(type) {
		case *syntax.Node:
			dumpNode(w, c, depth+1)
		case *syntax.Token:
			tsp := c.Span()
			fmt.Fprintf(w, "%s%s@%d..%d %q\n",
				strings.Repeat("  ", depth+1), lang.KindName(c.Kind()), tsp.Start, tsp.End, c.Text())
		}
	}
}
