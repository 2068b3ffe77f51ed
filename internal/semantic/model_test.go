package semantic

import (
	"testing"

	"sift/internal/diag"
	"sift/internal/js"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

func buildModel(t *testing.T, src string) (*syntax.Tree, *Model) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(src))
	bag := diag.NewBag(32)
	tree := js.Parse(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("fixture must parse cleanly: %+v", bag.Items())
	}
	return tree, Build(tree)
}

func bindingNamed(t *testing.T, m *Model, name string) *Binding {
	t.Helper()
	for _, b := range m.Bindings() {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("no binding named %q", name)
	return nil
}

func TestReferencesResolveInSourceOrder(t *testing.T) {
	_, m := buildModel(t, "const FOO = 1;\nuse(FOO);\nlog(FOO);\n")
	b := bindingNamed(t, m, "FOO")
	refs := b.References()
	if len(refs) != 2 {
		t.Fatalf("refs = %d, want 2", len(refs))
	}
	if refs[0].Span().Start >= refs[1].Span().Start {
		t.Fatalf("references must come back in source order")
	}
}

func TestBlockScopeShadowing(t *testing.T) {
	src := "let x = 1;\n{\n  let x = 2;\n  use(x);\n}\nuse(x);\n"
	_, m := buildModel(t, src)

	bindings := m.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("bindings = %d, want 2", len(bindings))
	}
	outer, inner := bindings[0], bindings[1]
	if outer.RefCount() != 1 || inner.RefCount() != 1 {
		t.Fatalf("shadowing broken: outer=%d inner=%d refs", outer.RefCount(), inner.RefCount())
	}
	if outer.References()[0].Span().Start < inner.References()[0].Span().Start {
		t.Fatalf("the inner use must resolve to the inner binding")
	}
}

func TestArrowParamsScopeToBody(t *testing.T) {
	_, m := buildModel(t, "const f = item => use(item);\nuse(item);\n")
	param := bindingNamed(t, m, "item")
	if param.RefCount() != 1 {
		t.Fatalf("param refs = %d, want only the body use", param.RefCount())
	}
}

func TestForOfBindingScopesToLoop(t *testing.T) {
	_, m := buildModel(t, "for (const item of items) {\n  use(item);\n}\n")
	b := bindingNamed(t, m, "item")
	if b.RefCount() != 1 {
		t.Fatalf("loop variable refs = %d, want 1", b.RefCount())
	}
	if _, ok := m.BindingOf(b.Decl); !ok {
		t.Fatalf("BindingOf must find the declaration")
	}
}

func TestBindingForResolvesRef(t *testing.T) {
	tree, m := buildModel(t, "const a = 1;\nuse(a);\n")
	var ref *syntax.Node
	tree.Root().Preorder(func(el syntax.Element) bool {
		if n, ok := el.(*syntax.Node); ok && n.Kind() == js.IdentExpr {
			if name, _ := js.IdentExprName(n); name == "a" {
				ref = n
				return false
			}
		}
		return true
	})
	if ref == nil {
		t.Fatalf("fixture lost its reference")
	}
	b, ok := m.BindingFor(ref)
	if !ok || b.Name != "a" {
		t.Fatalf("BindingFor failed")
	}
}

func TestUnresolvedIdentifiersHaveNoBinding(t *testing.T) {
	tree, m := buildModel(t, "use(undeclared);\n")
	var ref *syntax.Node
	tree.Root().Preorder(func(el syntax.Element) bool {
		if n, ok := el.(*syntax.Node); ok && n.Kind() == js.IdentExpr {
			if name, _ := js.IdentExprName(n); name == "undeclared" {
				ref = n
				return false
			}
		}
		return true
	})
	if _, ok := m.BindingFor(ref); ok {
		t.Fatalf("undeclared names must not resolve")
	}
}
