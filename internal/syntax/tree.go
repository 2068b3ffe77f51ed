package syntax

import (
	"sift/internal/source"
)

// Tree pairs an immutable green root with the language that produced it and
// the file it came from. Trees are shared by value: cloning is copying a
// pointer, and edits produce a brand new Tree.
type Tree struct {
	lang *Language
	root *GreenNode
	file source.FileID
}

// NewTree wraps a finished green root.
func NewTree(lang *Language, root *GreenNode, file source.FileID) *Tree {
	return &Tree{lang: lang, root: root, file: file}
}

// Language returns the grammar this tree belongs to.
func (t *Tree) Language() *Language { return t.lang }

// File returns the source file the tree was parsed from.
func (t *Tree) File() source.FileID { return t.file }

// GreenRoot exposes the root for rebuilding; ordinary consumers use Root.
func (t *Tree) GreenRoot() *GreenNode { return t.root }

// Root returns a red cursor over the root node.
func (t *Tree) Root() *Node {
	return &Node{tree: t, greenN: t.root, parent: nil, index: 0, offset: 0}
}

// Text reproduces the original source byte-for-byte, whitespace and comments
// included.
func (t *Tree) Text() string {
	return t.root.Text()
}
