package syntax

import (
	"strings"
)

// GreenChild is a position-independent child of a green node: either a
// *GreenNode or a *GreenToken. Green structures are immutable and freely
// shared between trees; an edit rebuilds only the spine from the edited
// child to the root.
type GreenChild interface {
	// GreenKind returns the kind of the child.
	GreenKind() Kind
	// Width returns the full width in bytes, leading trivia included.
	Width() uint32
	writeText(sb *strings.Builder)
}

// GreenToken is an immutable terminal: its significant text plus the trivia
// that precedes it. Trailing trivia of the file belongs to the EOF token.
type GreenToken struct {
	kind    Kind
	text    string
	leading []Trivia
	width   uint32
}

// NewGreenToken builds a green token. The leading slice is owned by the
// token afterwards.
func NewGreenToken(kind Kind, text string, leading []Trivia) *GreenToken {
	w := uint32(len(text))
	for _, tr := range leading {
		w += uint32(len(tr.Text))
	}
	return &GreenToken{kind: kind, text: text, leading: leading, width: w}
}

func (t *GreenToken) GreenKind() Kind { return t.kind }

// Text returns the significant text, without trivia.
func (t *GreenToken) Text() string { return t.text }

// Leading returns the trivia preceding the token. Read-only.
func (t *GreenToken) Leading() []Trivia { return t.leading }

// LeadingWidth is the byte width of the leading trivia.
func (t *GreenToken) LeadingWidth() uint32 {
	return t.width - uint32(len(t.text))
}

func (t *GreenToken) Width() uint32 { return t.width }

func (t *GreenToken) writeText(sb *strings.Builder) {
	for _, tr := range t.leading {
		sb.WriteString(tr.Text)
	}
	sb.WriteString(t.text)
}

// GreenNode is an immutable interior node.
type GreenNode struct {
	kind     Kind
	children []GreenChild
	width    uint32
}

// NewGreenNode builds a green node owning the children slice.
func NewGreenNode(kind Kind, children []GreenChild) *GreenNode {
	var w uint32
	for _, c := range children {
		w += c.Width()
	}
	return &GreenNode{kind: kind, children: children, width: w}
}

func (n *GreenNode) GreenKind() Kind { return n.kind }

func (n *GreenNode) Width() uint32 { return n.width }

// NumChildren returns the child count.
func (n *GreenNode) NumChildren() int { return len(n.children) }

// Child returns the i-th child.
func (n *GreenNode) Child(i int) GreenChild { return n.children[i] }

// Children returns the child slice. Read-only.
func (n *GreenNode) Children() []GreenChild { return n.children }

func (n *GreenNode) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		c.writeText(sb)
	}
}

// Text reconstructs the exact source text covered by the node, trivia
// included.
func (n *GreenNode) Text() string {
	var sb strings.Builder
	sb.Grow(int(n.width))
	n.writeText(&sb)
	return sb.String()
}
