package syntax

import (
	"slices"

	"sift/internal/source"
)

// Element is a red cursor over a green child: a *Node or a *Token. Red
// cursors carry absolute offsets and parent links; they are cheap values
// recreated on traversal, never stored in the tree itself.
type Element interface {
	Kind() Kind
	// FullSpan covers the element including leading trivia.
	FullSpan() source.Span
	// Span covers only significant text (trimmed range).
	Span() source.Span
	// Path is the child-index route from the root; it is the structural
	// identity used by batch mutation.
	Path() []int
	ParentNode() *Node
	ChildIndex() int
	green() GreenChild
}

// Node is a red cursor over a GreenNode.
type Node struct {
	tree   *Tree
	greenN *GreenNode
	parent *Node
	index  int
	offset uint32
}

// internal constructor fields are set directly by Tree.Root and Children.
func (n *Node) green() GreenChild { return n.greenN }

// Green returns the underlying green node.
func (n *Node) Green() *GreenNode { return n.greenN }

// Tree returns the owning tree.
func (n *Node) Tree() *Tree { return n.tree }

func (n *Node) Kind() Kind { return n.greenN.GreenKind() }

func (n *Node) ParentNode() *Node { return n.parent }

func (n *Node) ChildIndex() int { return n.index }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return n.greenN.NumChildren() }

// ChildAt returns the i-th child as a red cursor.
func (n *Node) ChildAt(i int) Element {
	off := n.offset
	for j := 0; j < i; j++ {
		off += n.greenN.Child(j).Width()
	}
	switch g := n.greenN.Child(i).(type) {
	case *GreenNode:
		return &Node{tree: n.tree, greenN: g, parent: n, index: i, offset: off}
	case *GreenToken:
		return &Token{tree: n.tree, greenT: g, parent: n, index: i, offset: off}
	}
	return nil
}

// Children materializes all children as red cursors.
func (n *Node) Children() []Element {
	out := make([]Element, 0, n.greenN.NumChildren())
	off := n.offset
	for i, g := range n.greenN.Children() {
		switch g := g.(type) {
		case *GreenNode:
			out = append(out, &Node{tree: n.tree, greenN: g, parent: n, index: i, offset: off})
		case *GreenToken:
			out = append(out, &Token{tree: n.tree, greenT: g, parent: n, index: i, offset: off})
		}
		off += g.Width()
	}
	return out
}

// ChildNodes returns only the node children.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if cn, ok := c.(*Node); ok {
			out = append(out, cn)
		}
	}
	return out
}

// FirstChildOfKind returns the first child node of the given kind.
func (n *Node) FirstChildOfKind(k Kind) (*Node, bool) {
	for _, c := range n.Children() {
		if cn, ok := c.(*Node); ok && cn.Kind() == k {
			return cn, true
		}
	}
	return nil, false
}

// FirstTokenOfKind returns the first direct token child of the given kind.
func (n *Node) FirstTokenOfKind(k Kind) (*Token, bool) {
	for _, c := range n.Children() {
		if ct, ok := c.(*Token); ok && ct.Kind() == k {
			return ct, true
		}
	}
	return nil, false
}

// FirstToken returns the leftmost token under the node.
func (n *Node) FirstToken() *Token {
	for _, c := range n.Children() {
		switch c := c.(type) {
		case *Token:
			return c
		case *Node:
			if t := c.FirstToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

// LastToken returns the rightmost token under the node.
func (n *Node) LastToken() *Token {
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		switch c := children[i].(type) {
		case *Token:
			return c
		case *Node:
			if t := c.LastToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

func (n *Node) FullSpan() source.Span {
	return source.Span{File: n.tree.file, Start: n.offset, End: n.offset + n.greenN.Width()}
}

// Span is the trimmed range: it skips the leading trivia of the node's first
// token. With leading-only trivia the end needs no adjustment.
func (n *Node) Span() source.Span {
	full := n.FullSpan()
	if t := n.FirstToken(); t != nil {
		full.Start = t.Span().Start
	}
	return full
}

func (n *Node) Path() []int {
	if n.parent == nil {
		return nil
	}
	path := append(n.parent.Path(), n.index)
	return path
}

// Text reconstructs the node's full source text, interior trivia included.
func (n *Node) Text() string { return n.greenN.Text() }

// Ancestors walks from the parent to the root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// AncestorOfKind returns the nearest ancestor with the given kind.
func (n *Node) AncestorOfKind(k Kind) (*Node, bool) {
	for p := n.parent; p != nil; p = p.parent {
		if p.Kind() == k {
			return p, true
		}
	}
	return nil, false
}

// Preorder visits the node and every descendant element in source order.
// Returning false from visit skips the element's subtree.
func (n *Node) Preorder(visit func(Element) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children() {
		switch c := c.(type) {
		case *Node:
			c.Preorder(visit)
		case *Token:
			visit(c)
		}
	}
}

// SamePosition reports whether two red cursors address the same structural
// slot, i.e. identical paths.
func SamePosition(a, b Element) bool {
	return slices.Equal(a.Path(), b.Path())
}
