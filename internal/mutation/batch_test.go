package mutation

import (
	"errors"
	"testing"

	"sift/internal/syntax"
)

// A minimal list grammar: ROOT holds ITEM nodes separated by comma tokens.
const (
	tEOF syntax.Kind = iota
	tWord
	tComma
	nRoot
	nItem
)

var listLang = syntax.Language{
	Name: "list",
	KindName: func(k syntax.Kind) string {
		return [...]string{"EOF", "WORD", "COMMA", "ROOT", "ITEM"}[k]
	},
	RootKind: nRoot,
	EOFKind:  tEOF,
	IsBogus:  func(syntax.Kind) bool { return false },
}

func item(word string, lead string) *syntax.GreenNode {
	var trivia []syntax.Trivia
	if lead != "" {
		trivia = []syntax.Trivia{{Kind: syntax.TriviaWhitespace, Text: lead}}
	}
	return syntax.NewGreenNode(nItem, []syntax.GreenChild{
		syntax.NewGreenToken(tWord, word, trivia),
	})
}

// buildListTree models "a, b, c".
func buildListTree() *syntax.Tree {
	root := syntax.NewGreenNode(nRoot, []syntax.GreenChild{
		item("a", ""),
		syntax.NewGreenToken(tComma, ",", nil),
		item("b", " "),
		syntax.NewGreenToken(tComma, ",", nil),
		item("c", " "),
		syntax.NewGreenToken(tEOF, "", nil),
	})
	return syntax.NewTree(&listLang, root, 0)
}

func TestRemoveElement(t *testing.T) {
	tree := buildListTree()
	b := NewBatch()
	b.Remove(tree.Root().ChildAt(2))
	b.Remove(tree.Root().ChildAt(3))

	out, err := b.Commit(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Text(); got != "a, c" {
		t.Fatalf("text = %q, want %q", got, "a, c")
	}
	if tree.Text() != "a, b, c" {
		t.Fatalf("commit must not touch the input tree")
	}
}

func TestReplaceElement(t *testing.T) {
	tree := buildListTree()
	b := NewBatch()
	b.Replace(tree.Root().ChildAt(2), item("B", " "))

	out, err := b.Commit(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Text(); got != "a, B, c" {
		t.Fatalf("text = %q", got)
	}
}

func TestInsertAfterElement(t *testing.T) {
	tree := buildListTree()
	b := NewBatch()
	b.InsertAfter(tree.Root().ChildAt(1), item("x", " "))

	out, err := b.Commit(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Text(); got != "a, x b, c" {
		t.Fatalf("text = %q", got)
	}
}

func TestDuplicatePathConflicts(t *testing.T) {
	tree := buildListTree()
	b := NewBatch()
	el := tree.Root().ChildAt(2)
	b.Remove(el)
	b.Replace(el, item("B", " "))

	if _, err := b.Commit(tree); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestNestedPathConflicts(t *testing.T) {
	tree := buildListTree()
	itemB := tree.Root().ChildNodes()[1]
	b := NewBatch()
	b.Remove(itemB)
	b.Replace(itemB.ChildAt(0), syntax.NewGreenToken(tWord, "B", nil))

	if _, err := b.Commit(tree); !errors.Is(err, ErrConflict) {
		t.Fatalf("an edit inside a removed subtree must conflict, got %v", err)
	}
}

func TestRootEditRejected(t *testing.T) {
	tree := buildListTree()
	b := NewBatch()
	b.Remove(tree.Root())

	if _, err := b.Commit(tree); !errors.Is(err, ErrConflict) {
		t.Fatalf("removing the root must be rejected, got %v", err)
	}
}

func TestEmptyBatchReturnsSameTree(t *testing.T) {
	tree := buildListTree()
	out, err := NewBatch().Commit(tree)
	if err != nil {
		t.Fatal(err)
	}
	if out != tree {
		t.Fatalf("empty commit must be the identity")
	}
}

func TestUntouchedSubtreesAreShared(t *testing.T) {
	tree := buildListTree()
	b := NewBatch()
	b.Remove(tree.Root().ChildAt(4))

	out, err := b.Commit(tree)
	if err != nil {
		t.Fatal(err)
	}
	if out.GreenRoot().Child(0) != tree.GreenRoot().Child(0) {
		t.Fatalf("untouched green subtrees must be shared by reference")
	}
	if out.GreenRoot() == tree.GreenRoot() {
		t.Fatalf("the edited spine must be fresh")
	}
}

func TestMergeCombinesBatches(t *testing.T) {
	tree := buildListTree()
	a := NewBatch()
	a.Remove(tree.Root().ChildAt(2))
	b := NewBatch()
	b.Remove(tree.Root().ChildAt(3))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("merged len = %d", a.Len())
	}
	out, err := a.Commit(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Text(); got != "a, c" {
		t.Fatalf("text = %q", got)
	}
}
