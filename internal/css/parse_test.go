package css

import (
	"testing"

	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

func parseSource(t *testing.T, src string) (*syntax.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.css", []byte(src))
	bag := diag.NewBag(32)
	tree := Parse(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return tree, bag
}

func findNode(root *syntax.Node, kind syntax.Kind) *syntax.Node {
	var found *syntax.Node
	root.Preorder(func(el syntax.Element) bool {
		if found != nil {
			return false
		}
		if n, ok := el.(*syntax.Node); ok && n.Kind() == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestRoundTripIsLossless(t *testing.T) {
	inputs := []string{
		"",
		"a { color: red; }",
		"/* header */\n@media screen {\n}\n",
		"@color-profile --fogra39 {\n  src: url('x.icc');\n}\n",
		"@color-profile { src: none; }",
		".x { ; broken }\n",
		"@charset \"utf-8\";\n",
		"div > p { margin: 0 auto; }\n\n",
	}
	for _, src := range inputs {
		tree, _ := parseSource(t, src)
		if got := tree.Text(); got != src {
			t.Fatalf("round trip broke:\n in: %q\nout: %q", src, got)
		}
	}
}

func TestColorProfileWellFormed(t *testing.T) {
	tree, bag := parseSource(t, "@color-profile --fogra39 { components: cyan; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	cp, ok := AsColorProfile(findNode(tree.Root(), ColorProfileAtRule))
	if !ok {
		t.Fatalf("missing color-profile node")
	}
	name, ok := cp.Name()
	if !ok || name.Text() != "--fogra39" {
		t.Fatalf("profile name = %v", name)
	}
	block, ok := cp.Block()
	if !ok {
		t.Fatalf("missing declaration block")
	}
	decls := block.Declarations()
	if len(decls) != 1 {
		t.Fatalf("declarations = %d, want 1", len(decls))
	}
	if n, _ := decls[0].Name(); n.Text() != "components" {
		t.Fatalf("declaration name wrong")
	}
	if _, ok := decls[0].Value(); !ok {
		t.Fatalf("declaration value missing")
	}
}

func TestColorProfileMissingName(t *testing.T) {
	tree, bag := parseSource(t, "@color-profile { src: none; }")
	if !bag.HasErrors() {
		t.Fatalf("missing name must be reported")
	}
	if findNode(tree.Root(), ColorProfileAtRule) != nil {
		t.Fatalf("rule without a name must not finalize as well formed")
	}
	bogus := findNode(tree.Root(), BogusAtRule)
	if bogus == nil {
		t.Fatalf("expected a bogus at-rule")
	}
	// The block is still parsed inside the bogus rule.
	block := findNode(bogus, DeclarationBlock)
	if block == nil {
		t.Fatalf("block must be parsed even when the name is missing")
	}
	if len((DeclarationBlockNode{N: block}).Declarations()) != 1 {
		t.Fatalf("declarations inside the bogus rule must survive")
	}
}

func TestColorProfileRejectsCSSWideKeywords(t *testing.T) {
	for _, kw := range []string{"default", "inherit", "initial", "revert", "revert-layer", "unset"} {
		tree, bag := parseSource(t, "@color-profile "+kw+" {}")
		if !bag.HasErrors() {
			t.Fatalf("%q must be rejected as a profile name", kw)
		}
		if findNode(tree.Root(), BogusAtRule) == nil {
			t.Fatalf("rule named %q must finalize as bogus", kw)
		}
	}
}

func TestColorProfileNumberName(t *testing.T) {
	tree, bag := parseSource(t, "@color-profile 42 {}")
	if !bag.HasErrors() {
		t.Fatalf("a number is not a custom identifier")
	}
	if tree.Text() != "@color-profile 42 {}" {
		t.Fatalf("recovery dropped input")
	}
	bogus := findNode(tree.Root(), BogusAtRule)
	if bogus == nil || findNode(bogus, Bogus) == nil {
		t.Fatalf("the offending token must be wrapped")
	}
}

func TestGenericAtRule(t *testing.T) {
	tree, bag := parseSource(t, "@media screen { color: red; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	at := findNode(tree.Root(), AtRule)
	if at == nil || findNode(at, AtRulePrelude) == nil {
		t.Fatalf("generic at-rule shape wrong")
	}
}

func TestQualifiedRule(t *testing.T) {
	tree, bag := parseSource(t, "div > .cls { margin: 0; padding: 1px 2px; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	q := findNode(tree.Root(), QualifiedRule)
	if q == nil || findNode(q, SelectorPrelude) == nil {
		t.Fatalf("qualified rule shape wrong")
	}
	block := findNode(q, DeclarationBlock)
	decls := (DeclarationBlockNode{N: block}).Declarations()
	if len(decls) != 2 {
		t.Fatalf("declarations = %d, want 2", len(decls))
	}
}

func TestDashedPropertyName(t *testing.T) {
	tree, bag := parseSource(t, "a { --custom-prop: 10px; }")
	if bag.HasErrors() {
		t.Fatalf("dashed property names must parse: %+v", bag.Items())
	}
	decl := findNode(tree.Root(), Declaration)
	name, ok := (DeclarationNode{N: decl}).Name()
	if !ok || name.Text() != "--custom-prop" {
		t.Fatalf("property name = %v", name)
	}
}

func TestStrayTokensBecomeBogusRules(t *testing.T) {
	src := "}\n;\na { color: red; }\n"
	tree, bag := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("stray tokens must be reported")
	}
	if tree.Text() != src {
		t.Fatalf("stray tokens dropped")
	}
	if findNode(tree.Root(), BogusRule) == nil {
		t.Fatalf("stray tokens must be wrapped")
	}
	if findNode(tree.Root(), QualifiedRule) == nil {
		t.Fatalf("parser must resume at the next rule")
	}
}

func TestBrokenDeclarationRecovery(t *testing.T) {
	src := "a { 42: red; color: blue; }"
	tree, bag := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("bad declaration must be reported")
	}
	if tree.Text() != src {
		t.Fatalf("recovery dropped input")
	}
	block := findNode(tree.Root(), DeclarationBlock)
	if findNode(block, BogusDeclaration) == nil {
		t.Fatalf("bad declaration must be wrapped")
	}
	decls := (DeclarationBlockNode{N: block}).Declarations()
	if len(decls) != 1 {
		t.Fatalf("good declaration lost")
	}
}

func TestMissingValueReported(t *testing.T) {
	_, bag := parseSource(t, "a { color: ; }")
	if !bag.HasErrors() {
		t.Fatalf("empty declaration value must be reported")
	}
}

func TestLexerReportsUnterminated(t *testing.T) {
	_, bag := parseSource(t, "a { content: 'oops\n}")
	if !bag.HasErrors() {
		t.Fatalf("unterminated string must be reported")
	}

	_, bag = parseSource(t, "/* never closed")
	if !bag.HasErrors() {
		t.Fatalf("unterminated comment must be reported")
	}
}
