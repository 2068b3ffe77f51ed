// Package mutation edits immutable trees in batches. Edits address nodes by
// structural path, accumulate without touching the tree, and apply in one
// bottom-up rebuild that shares every untouched green subtree with the
// original.
package mutation

import (
	"errors"
	"fmt"
	"slices"

	"sift/internal/syntax"
)

// ErrConflict is returned by Commit when two edits address the same slot or
// one edit lies inside a subtree another edit removes or replaces.
var ErrConflict = errors.New("conflicting edits")

type editOp uint8

const (
	opRemove editOp = iota
	opReplace
	opInsertAfter
)

func (o editOp) String() string {
	switch o {
	case opRemove:
		return "remove"
	case opReplace:
		return "replace"
	case opInsertAfter:
		return "insert-after"
	}
	return "unknown"
}

type edit struct {
	path []int
	op   editOp
	repl syntax.GreenChild
}

// Batch is an ordered set of pending edits against one tree.
type Batch struct {
	edits []edit
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Empty reports whether the batch holds no edits.
func (b *Batch) Empty() bool { return len(b.edits) == 0 }

// Len returns the number of pending edits.
func (b *Batch) Len() int { return len(b.edits) }

// Remove deletes the element from its parent's child list.
func (b *Batch) Remove(el syntax.Element) {
	b.edits = append(b.edits, edit{path: el.Path(), op: opRemove})
}

// Replace swaps the element for a new green subtree.
func (b *Batch) Replace(el syntax.Element, with syntax.GreenChild) {
	b.edits = append(b.edits, edit{path: el.Path(), op: opReplace, repl: with})
}

// InsertAfter places a new green subtree directly after the element.
func (b *Batch) InsertAfter(el syntax.Element, add syntax.GreenChild) {
	b.edits = append(b.edits, edit{path: el.Path(), op: opInsertAfter, repl: add})
}

// Merge appends every edit of another batch. Conflicts surface at Commit.
func (b *Batch) Merge(other *Batch) {
	b.edits = append(b.edits, other.edits...)
}

// Commit applies the batch to a tree and returns the rebuilt tree. The input
// tree is never modified. On conflict nothing is applied.
func (b *Batch) Commit(tree *syntax.Tree) (*syntax.Tree, error) {
	if len(b.edits) == 0 {
		return tree, nil
	}

	sorted := slices.Clone(b.edits)
	slices.SortStableFunc(sorted, func(a, b edit) int {
		return slices.Compare(a.path, b.path)
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if slices.Equal(prev.path, cur.path) {
			return nil, fmt.Errorf("%w: %s and %s both address %v",
				ErrConflict, prev.op, cur.op, cur.path)
		}
		if isPrefix(prev.path, cur.path) {
			return nil, fmt.Errorf("%w: %s at %v lies inside %s at %v",
				ErrConflict, cur.op, cur.path, prev.op, prev.path)
		}
	}

	for _, e := range sorted {
		if len(e.path) == 0 {
			return nil, fmt.Errorf("%w: cannot %s the root node", ErrConflict, e.op)
		}
	}

	root, err := rebuild(tree.GreenRoot(), sorted, 0)
	if err != nil {
		return nil, err
	}
	return syntax.NewTree(tree.Language(), root, tree.File()), nil
}

func isPrefix(short, long []int) bool {
	return len(short) < len(long) && slices.Equal(short, long[:len(short)])
}

// rebuild reconstructs one green node, applying the edits that live under
// it. edits are sorted by path and all share the prefix consumed so far.
func rebuild(n *syntax.GreenNode, edits []edit, depth int) (*syntax.GreenNode, error) {
	children := make([]syntax.GreenChild, 0, n.NumChildren())
	next := 0

	for i := 0; i < n.NumChildren(); i++ {
		child := n.Child(i)

		var here []edit
		for next < len(edits) && edits[next].path[depth] == i {
			here = append(here, edits[next])
			next++
		}
		if len(here) == 0 {
			children = append(children, child)
			continue
		}

		if len(here[0].path) == depth+1 {
			// leaf edit; conflict detection guarantees it is alone
			switch e := here[0]; e.op {
			case opRemove:
			case opReplace:
				children = append(children, e.repl)
			case opInsertAfter:
				children = append(children, child, e.repl)
			}
			continue
		}

		sub, ok := child.(*syntax.GreenNode)
		if !ok {
			return nil, fmt.Errorf("edit path %v descends into a token", here[0].path)
		}
		rebuilt, err := rebuild(sub, here, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, rebuilt)
	}

	return syntax.NewGreenNode(n.GreenKind(), children), nil
}
