package js

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
	id := fs.AddVirtual("test.js", []byte(src))
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
		"const a = 1;",
		"const FOO = \"FOO\";\nconsole.log(FOO);\n",
		"// leading comment\nlet x = 'hi'  /* inline */ ;\n\n",
		"items.forEach(item => {\n\tconsole.log(item);\n});\n",
		"for (const item of items) {\n  handle(item);\n}\n",
		"const a = , b = 2;\n",
		"let @ # broken",
		"((x) => x)(42)\n",
	}
	for _, src := range inputs {
		tree, _ := parseSource(t, src)
		if got := tree.Text(); got != src {
			t.Fatalf("round trip broke:\n in: %q\nout: %q", src, got)
		}
	}
}

func preorderKinds(tree *syntax.Tree) []syntax.Kind {
	var kinds []syntax.Kind
	tree.Root().Preorder(func(el syntax.Element) bool {
		kinds = append(kinds, el.Kind())
		return true
	})
	return kinds
}

func TestReparseKeepsShape(t *testing.T) {
	inputs := []string{
		"const FOO = \"FOO\";\nconsole.log(FOO);\n",
		"items.forEach(item => {\n\tconsole.log(item);\n});\n",
		"const a = , b = 2;\n",
		"let @ # broken",
	}
	for _, src := range inputs {
		tree, _ := parseSource(t, src)
		again, _ := parseSource(t, tree.Text())
		first, second := preorderKinds(tree), preorderKinds(again)
		if len(first) != len(second) {
			t.Fatalf("reparse of %q changed node count: %d vs %d", src, len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("reparse of %q diverged at element %d: %v vs %v",
					src, i, KindName(first[i]), KindName(second[i]))
			}
		}
	}
}

func TestVariableStatementShape(t *testing.T) {
	tree, bag := parseSource(t, "const a = 1;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	stmt := tree.Root().ChildNodes()[0]
	if stmt.Kind() != VariableStatement {
		t.Fatalf("statement kind = %v", KindName(stmt.Kind()))
	}
	vs, _ := AsVariableStatement(stmt)
	decl, ok := vs.Declaration()
	if !ok || !decl.IsConst() {
		t.Fatalf("expected a const declaration")
	}
	list, ok := decl.List()
	if !ok {
		t.Fatalf("missing declarator list")
	}
	ds := list.Declarators()
	if len(ds) != 1 {
		t.Fatalf("declarators = %d, want 1", len(ds))
	}
	name, ok := ds[0].Name()
	if !ok || name.Text() != "a" {
		t.Fatalf("declarator name wrong")
	}
	init, ok := ds[0].Initializer()
	if !ok || init.Kind() != NumberLitExpr {
		t.Fatalf("initializer must be a number literal expression")
	}
}

func TestMultipleDeclarators(t *testing.T) {
	tree, bag := parseSource(t, "let a = 1, b, c = 'x';")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	list := findNode(tree.Root(), DeclaratorList)
	ds := DeclaratorListNode{N: list}.Declarators()
	if len(ds) != 3 {
		t.Fatalf("declarators = %d, want 3", len(ds))
	}
	if _, ok := ds[1].Initializer(); ok {
		t.Fatalf("bare declarator must have no initializer")
	}
}

func TestMemberCallChainShape(t *testing.T) {
	tree, bag := parseSource(t, "a.b(1).c;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	stmt := tree.Root().ChildNodes()[0]
	outer := stmt.ChildNodes()[0]
	if outer.Kind() != MemberExpr {
		t.Fatalf("outermost = %v, want member expression", KindName(outer.Kind()))
	}
	call, ok := MemberObject(outer)
	if !ok || call.Kind() != CallExpr {
		t.Fatalf("member object must be the call")
	}
	ce, _ := AsCallExpression(call)
	callee, ok := ce.Callee()
	if !ok || callee.Kind() != MemberExpr {
		t.Fatalf("callee must be a.b")
	}
	if args := ce.Arguments(); len(args) != 1 || args[0].Kind() != NumberLitExpr {
		t.Fatalf("arguments wrong: %v", args)
	}
}

func TestKeywordsAsMemberNames(t *testing.T) {
	tree, bag := parseSource(t, "x.for;")
	if bag.HasErrors() {
		t.Fatalf("keywords after `.` must lex as identifiers: %+v", bag.Items())
	}
	member := findNode(tree.Root(), MemberExpr)
	name, ok := MemberName(member)
	if !ok || name != "for" {
		t.Fatalf("member name = %q, %v", name, ok)
	}
}

func TestComputedMemberStringIndex(t *testing.T) {
	tree, bag := parseSource(t, "obj[\"key\"];")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	member := findNode(tree.Root(), ComputedMemberExpr)
	name, ok := MemberName(member)
	if !ok || name != "key" {
		t.Fatalf("computed member name = %q, %v", name, ok)
	}
}

func TestArrowLookahead(t *testing.T) {
	tree, bag := parseSource(t, "(a, b) => a;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	arrow := findNode(tree.Root(), ArrowFunction)
	if arrow == nil {
		t.Fatalf("paren list before `=>` must parse as arrow parameters")
	}
	af, _ := AsArrowFunction(arrow)
	params := af.Params()
	if len(params) != 2 || params[0].Text() != "a" || params[1].Text() != "b" {
		t.Fatalf("params wrong")
	}
	if af.HasBlockBody() {
		t.Fatalf("expression body misclassified as a block")
	}

	tree, bag = parseSource(t, "(a);")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if findNode(tree.Root(), ArrowFunction) != nil {
		t.Fatalf("a plain paren expression must not become an arrow")
	}
	if findNode(tree.Root(), ParenExpr) == nil {
		t.Fatalf("missing paren expression")
	}
}

func TestShorthandArrowBindsParam(t *testing.T) {
	tree, bag := parseSource(t, "item => { use(item); };")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	af, _ := AsArrowFunction(findNode(tree.Root(), ArrowFunction))
	params := af.Params()
	if len(params) != 1 || params[0].Text() != "item" {
		t.Fatalf("shorthand param missing")
	}
	if !af.HasBlockBody() {
		t.Fatalf("block body misclassified")
	}
}

func TestMissingSemicolonToleratedAtLineBreak(t *testing.T) {
	_, bag := parseSource(t, "let a = 1\nlet b = 2\n")
	if bag.HasErrors() {
		t.Fatalf("line break must stand in for `;`: %+v", bag.Items())
	}

	_, bag = parseSource(t, "let a = 1 let b = 2\n")
	if !bag.HasErrors() {
		t.Fatalf("missing `;` on the same line must be reported")
	}
}

func TestDeclaratorRecoveryKeepsInput(t *testing.T) {
	src := "const = 1, b = 2;\nafter();\n"
	tree, bag := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("missing declarator must be reported")
	}
	if tree.Text() != src {
		t.Fatalf("recovery dropped input: %q", tree.Text())
	}
	// The garbage is wrapped, the good declarator survives.
	if findNode(tree.Root(), Bogus) == nil {
		t.Fatalf("skipped tokens must live in a bogus node")
	}
	list := findNode(tree.Root(), DeclaratorList)
	ds := DeclaratorListNode{N: list}.Declarators()
	if len(ds) != 1 {
		t.Fatalf("good declarator lost, got %d", len(ds))
	}
	// Parsing resumes at the next statement.
	if findNode(tree.Root(), CallExpr) == nil {
		t.Fatalf("parser failed to resume after recovery")
	}
}

func TestForOfStatement(t *testing.T) {
	tree, bag := parseSource(t, "for (const item of items) handle(item);")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	fo, ok := AsForOfStatement(findNode(tree.Root(), ForOfStatement))
	if !ok {
		t.Fatalf("missing for-of statement")
	}
	b, ok := fo.Binding()
	if !ok || b.Text() != "item" {
		t.Fatalf("loop binding wrong")
	}
}

func TestForOfRecoversFromBadHead(t *testing.T) {
	src := "for (42 of items) {}\nafter();\n"
	tree, bag := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("bad loop head must be reported")
	}
	if tree.Text() != src {
		t.Fatalf("recovery dropped input")
	}
	if findNode(tree.Root(), ForOfStatement) == nil {
		t.Fatalf("loop node must survive recovery")
	}
}

func TestRemoveSoleDeclaratorRemovesStatement(t *testing.T) {
	tree, _ := parseSource(t, "const FOO = \"FOO\";\nuse(1);\n")
	list := findNode(tree.Root(), DeclaratorList)
	ds := DeclaratorListNode{N: list}.Declarators()

	out, err := RemoveDeclarator(ds[0]).Commit(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Text(); got != "\nuse(1);\n" {
		t.Fatalf("text after removal = %q", got)
	}
}

func TestRemoveFirstDeclaratorTakesTrailingComma(t *testing.T) {
	tree, _ := parseSource(t, "let a = 1, b = 2;")
	list := findNode(tree.Root(), DeclaratorList)
	ds := DeclaratorListNode{N: list}.Declarators()

	out, err := RemoveDeclarator(ds[0]).Commit(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Text(); got != "let b = 2;" {
		t.Fatalf("text after removal = %q", got)
	}
}

func TestRemoveLastDeclaratorTakesPrecedingComma(t *testing.T) {
	tree, _ := parseSource(t, "let a = 1, b = 2;")
	list := findNode(tree.Root(), DeclaratorList)
	ds := DeclaratorListNode{N: list}.Declarators()

	out, err := RemoveDeclarator(ds[1]).Commit(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Text(); got != "let a = 1;" {
		t.Fatalf("text after removal = %q", got)
	}
}

func TestLexerReportsBadLiterals(t *testing.T) {
	_, bag := parseSource(t, "let s = 'unterminated\n")
	if !bag.HasErrors() {
		t.Fatalf("unterminated string must be reported")
	}

	_, bag = parseSource(t, "let n = 12abc;")
	if !bag.HasErrors() {
		t.Fatalf("number with identifier tail must be reported")
	}
}
