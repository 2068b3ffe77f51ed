// Package semantic builds a binding model on top of a parsed JS tree: which
// identifier expressions refer to which declarations. The model is computed
// once per tree and queried by lint rules.
package semantic

import (
	"strconv"
	"strings"

	"sift/internal/js"
	"sift/internal/source"
	"sift/internal/syntax"
)

// Binding is one declared name: a variable declarator, a loop variable, or
// an arrow function parameter.
type Binding struct {
	Name   string
	NameID source.StringID
	// Decl is the JS_IDENT_BINDING node of the declaration.
	Decl *syntax.Node
	refs []*syntax.Node
}

// References returns every identifier expression resolved to this binding,
// in source order.
func (b *Binding) References() []*syntax.Node {
	out := make([]*syntax.Node, len(b.refs))
	copy(out, b.refs)
	return out
}

// RefCount returns the number of resolved references.
func (b *Binding) RefCount() int { return len(b.refs) }

type scope struct {
	parent *scope
	names  map[source.StringID]*Binding
}

func (s *scope) declare(b *Binding) {
	s.names[b.NameID] = b
}

func (s *scope) resolve(id source.StringID) *Binding {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.names[id]; ok {
			return b
		}
	}
	return nil
}

// Model holds the resolved bindings of one tree. Names are interned so
// scope lookups compare IDs, not strings.
type Model struct {
	tree     *syntax.Tree
	names    *source.Interner
	bindings []*Binding
	byRef    map[string]*Binding
	byDecl   map[string]*Binding
}

// Build computes the binding model. Scopes follow the block structure:
// the root, statement blocks, arrow functions, and for-of headers each open
// one. Names resolve lexically, innermost scope first; unresolved
// identifiers simply have no binding.
func Build(tree *syntax.Tree) *Model {
	m := &Model{
		tree:   tree,
		names:  source.NewInterner(),
		byRef:  make(map[string]*Binding),
		byDecl: make(map[string]*Binding),
	}
	global := &scope{names: make(map[source.StringID]*Binding)}
	m.walk(tree.Root(), global)
	return m
}

func (m *Model) walk(n *syntax.Node, sc *scope) {
	switch n.Kind() {
	case js.Block, js.ArrowFunction, js.ForOfStatement:
		sc = &scope{parent: sc, names: make(map[source.StringID]*Binding)}
	case js.IdentBinding:
		if t, ok := n.FirstTokenOfKind(js.Ident); ok {
			b := &Binding{Name: t.Text(), NameID: m.names.Intern(t.Text()), Decl: n}
			sc.declare(b)
			m.bindings = append(m.bindings, b)
			m.byDecl[pathKey(n.Path())] = b
		}
		return
	case js.IdentExpr:
		if name, ok := js.IdentExprName(n); ok {
			if b := sc.resolve(m.names.Intern(name)); b != nil {
				b.refs = append(b.refs, n)
				m.byRef[pathKey(n.Path())] = b
			}
		}
		return
	}
	for _, c := range n.ChildNodes() {
		m.walk(c, sc)
	}
}

// Bindings returns every binding in declaration order.
func (m *Model) Bindings() []*Binding {
	out := make([]*Binding, len(m.bindings))
	copy(out, m.bindings)
	return out
}

// BindingFor resolves an identifier expression to its binding.
func (m *Model) BindingFor(ref *syntax.Node) (*Binding, bool) {
	b, ok := m.byRef[pathKey(ref.Path())]
	return b, ok
}

// BindingOf returns the binding declared by a JS_IDENT_BINDING node.
func (m *Model) BindingOf(decl *syntax.Node) (*Binding, bool) {
	b, ok := m.byDecl[pathKey(decl.Path())]
	return b, ok
}

func pathKey(path []int) string {
	var sb strings.Builder
	for i, p := range path {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(p))
	}
	return sb.String()
}
