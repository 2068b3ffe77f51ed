package js

import (
	"sift/internal/mutation"
	"sift/internal/syntax"
)

// RemoveDeclarator builds the batch that deletes one declarator while
// keeping the statement well formed: the sole declarator takes the whole
// statement with it, a non-last one takes its trailing comma, the last one
// takes the comma before it.
func RemoveDeclarator(d DeclaratorNode) *mutation.Batch {
	b := mutation.NewBatch()
	list := d.N.ParentNode()
	if list == nil || list.Kind() != DeclaratorList {
		b.Remove(d.N)
		return b
	}

	total := 0
	for _, c := range list.ChildNodes() {
		if c.Kind() == Declarator {
			total++
		}
	}
	if total <= 1 {
		if stmt, ok := d.N.AncestorOfKind(VariableStatement); ok {
			b.Remove(stmt)
		} else {
			b.Remove(d.N)
		}
		return b
	}

	b.Remove(d.N)
	children := list.Children()
	idx := d.N.ChildIndex()
	for i := idx + 1; i < len(children); i++ {
		if t, ok := children[i].(*syntax.Token); ok && t.Kind() == Comma {
			b.Remove(t)
			return b
		}
	}
	for i := idx - 1; i >= 0; i-- {
		if t, ok := children[i].(*syntax.Token); ok && t.Kind() == Comma {
			b.Remove(t)
			return b
		}
	}
	return b
}
