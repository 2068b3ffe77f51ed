package syntax

import "testing"

// A tiny fake grammar for exercising the tree machinery.
const (
	tEOF Kind = iota
	tWord
	tComma
	nRoot
	nPair
)

var testLang = Language{
	Name: "test",
	KindName: func(k Kind) string {
		switch k {
		case tEOF:
			return "EOF"
		case tWord:
			return "WORD"
		case tComma:
			return "COMMA"
		case nRoot:
			return "ROOT"
		case nPair:
			return "PAIR"
		}
		return "UNKNOWN"
	},
	RootKind: nRoot,
	EOFKind:  tEOF,
	IsBogus:  func(Kind) bool { return false },
}

func ws(text string) []Trivia {
	return []Trivia{{Kind: TriviaWhitespace, Text: text}}
}

// buildTestTree models "ab, cd" followed by EOF with trailing trivia " ".
func buildTestTree() *Tree {
	pair := NewGreenNode(nPair, []GreenChild{
		NewGreenToken(tWord, "ab", nil),
		NewGreenToken(tComma, ",", nil),
		NewGreenToken(tWord, "cd", ws(" ")),
	})
	root := NewGreenNode(nRoot, []GreenChild{
		pair,
		NewGreenToken(tEOF, "", ws(" ")),
	})
	return NewTree(&testLang, root, 0)
}

func TestTreeTextIsLossless(t *testing.T) {
	tree := buildTestTree()
	if got := tree.Text(); got != "ab, cd " {
		t.Fatalf("tree text = %q, want %q", got, "ab, cd ")
	}
}

func TestNodeSpans(t *testing.T) {
	tree := buildTestTree()
	pair := tree.Root().ChildNodes()[0]

	full := pair.FullSpan()
	if full.Start != 0 || full.End != 6 {
		t.Fatalf("pair full span = %d..%d, want 0..6", full.Start, full.End)
	}

	cd, ok := pair.ChildAt(2).(*Token)
	if !ok {
		t.Fatalf("expected token child")
	}
	if cd.FullSpan().Start != 3 || cd.Span().Start != 4 {
		t.Fatalf("trivia must be inside the full span but outside the trimmed span")
	}
	if cd.Text() != "cd" {
		t.Fatalf("token text = %q", cd.Text())
	}
}

func TestPathsIdentifySlots(t *testing.T) {
	tree := buildTestTree()
	pair := tree.Root().ChildNodes()[0]

	if got := pair.Path(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("pair path = %v, want [0]", got)
	}
	comma := pair.ChildAt(1)
	if got := comma.Path(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("comma path = %v, want [0 1]", got)
	}
	if !SamePosition(pair.ChildAt(1), pair.ChildAt(1)) {
		t.Fatalf("identical slots must compare equal")
	}
	if SamePosition(pair.ChildAt(0), pair.ChildAt(1)) {
		t.Fatalf("distinct slots must not compare equal")
	}
}

func TestStructuralSharing(t *testing.T) {
	pair := NewGreenNode(nPair, []GreenChild{
		NewGreenToken(tWord, "ab", nil),
	})
	rootA := NewGreenNode(nRoot, []GreenChild{pair})
	rootB := NewGreenNode(nRoot, []GreenChild{pair, NewGreenToken(tEOF, "", nil)})

	if rootA.Child(0) != rootB.Child(0) {
		t.Fatalf("green children must be shared by reference")
	}
}

func TestPreorderVisitsEverything(t *testing.T) {
	tree := buildTestTree()
	var kinds []Kind
	tree.Root().Preorder(func(el Element) bool {
		kinds = append(kinds, el.Kind())
		return true
	})
	want := []Kind{nRoot, nPair, tWord, tComma, tWord, tEOF}
	if len(kinds) != len(want) {
		t.Fatalf("visited %d elements, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visit order %v, want %v", kinds, want)
		}
	}
}

func TestFirstAndLastToken(t *testing.T) {
	tree := buildTestTree()
	root := tree.Root()
	if tok := root.FirstToken(); tok == nil || tok.Text() != "ab" {
		t.Fatalf("first token wrong")
	}
	if tok := root.LastToken(); tok == nil || tok.Kind() != tEOF {
		t.Fatalf("last token must be the EOF sentinel")
	}
}
