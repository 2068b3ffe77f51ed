package js

import (
	"sift/internal/syntax"
)

// Typed views over the untyped tree. Each wrapper is a thin cursor that
// navigates by kind; Cast functions return ok=false when the node has a
// different shape, which happens routinely around bogus nodes.

// VariableStatementNode wraps JS_VARIABLE_STATEMENT.
type VariableStatementNode struct{ N *syntax.Node }

// AsVariableStatement casts a node.
func AsVariableStatement(n *syntax.Node) (VariableStatementNode, bool) {
	if n == nil || n.Kind() != VariableStatement {
		return VariableStatementNode{}, false
	}
	return VariableStatementNode{N: n}, true
}

// Declaration returns the inner JS_VARIABLE_DECLARATION.
func (v VariableStatementNode) Declaration() (VariableDeclarationNode, bool) {
	d, ok := v.N.FirstChildOfKind(VariableDeclaration)
	if !ok {
		return VariableDeclarationNode{}, false
	}
	return VariableDeclarationNode{N: d}, true
}

// VariableDeclarationNode wraps JS_VARIABLE_DECLARATION.
type VariableDeclarationNode struct{ N *syntax.Node }

// Keyword returns the declaration keyword token.
func (v VariableDeclarationNode) Keyword() (*syntax.Token, bool) {
	for _, k := range []syntax.Kind{KwConst, KwLet, KwVar} {
		if t, ok := v.N.FirstTokenOfKind(k); ok {
			return t, true
		}
	}
	return nil, false
}

// IsConst reports whether the declaration uses `const`.
func (v VariableDeclarationNode) IsConst() bool {
	_, ok := v.N.FirstTokenOfKind(KwConst)
	return ok
}

// List returns the declarator list node.
func (v VariableDeclarationNode) List() (DeclaratorListNode, bool) {
	l, ok := v.N.FirstChildOfKind(DeclaratorList)
	if !ok {
		return DeclaratorListNode{}, false
	}
	return DeclaratorListNode{N: l}, true
}

// DeclaratorListNode wraps JS_DECLARATOR_LIST.
type DeclaratorListNode struct{ N *syntax.Node }

// Declarators returns the declarator entries, skipping separators and any
// bogus recovery nodes.
func (l DeclaratorListNode) Declarators() []DeclaratorNode {
	var out []DeclaratorNode
	for _, c := range l.N.ChildNodes() {
		if c.Kind() == Declarator {
			out = append(out, DeclaratorNode{N: c})
		}
	}
	return out
}

// DeclaratorNode wraps JS_DECLARATOR.
type DeclaratorNode struct{ N *syntax.Node }

// Name returns the bound identifier token.
func (d DeclaratorNode) Name() (*syntax.Token, bool) {
	b, ok := d.N.FirstChildOfKind(IdentBinding)
	if !ok {
		return nil, false
	}
	return b.FirstTokenOfKind(Ident)
}

// Initializer returns the initializer value expression, when present.
func (d DeclaratorNode) Initializer() (*syntax.Node, bool) {
	ic, ok := d.N.FirstChildOfKind(InitializerClause)
	if !ok {
		return nil, false
	}
	nodes := ic.ChildNodes()
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// CallExpressionNode wraps JS_CALL_EXPR.
type CallExpressionNode struct{ N *syntax.Node }

// AsCallExpression casts a node.
func AsCallExpression(n *syntax.Node) (CallExpressionNode, bool) {
	if n == nil || n.Kind() != CallExpr {
		return CallExpressionNode{}, false
	}
	return CallExpressionNode{N: n}, true
}

// Callee returns the callee expression (everything before the argument
// list).
func (c CallExpressionNode) Callee() (*syntax.Node, bool) {
	for _, ch := range c.N.ChildNodes() {
		if ch.Kind() != CallArguments {
			return ch, true
		}
	}
	return nil, false
}

// Arguments returns the argument expression nodes in order.
func (c CallExpressionNode) Arguments() []*syntax.Node {
	args, ok := c.N.FirstChildOfKind(CallArguments)
	if !ok {
		return nil
	}
	return args.ChildNodes()
}

// UnwrapParens drills through paren expressions to the wrapped expression.
func UnwrapParens(n *syntax.Node) *syntax.Node {
	for n != nil && n.Kind() == ParenExpr {
		nodes := n.ChildNodes()
		if len(nodes) == 0 {
			return n
		}
		n = nodes[0]
	}
	return n
}

// MemberName resolves the accessed name of a member expression: the token
// after `.`, or the literal content of a string index (`x["name"]`). ok is
// false for computed members with non-literal indexes.
func MemberName(n *syntax.Node) (string, bool) {
	switch n.Kind() {
	case MemberExpr:
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if t, isTok := children[i].(*syntax.Token); isTok && t.Kind() == Ident {
				return t.Text(), true
			}
		}
		return "", false
	case ComputedMemberExpr:
		if idx, ok := n.FirstChildOfKind(StringLitExpr); ok {
			if t, ok := idx.FirstTokenOfKind(String); ok {
				return StringInnerText(t.Text()), true
			}
		}
		return "", false
	default:
		return "", false
	}
}

// MemberObject returns the expression a member access is applied to.
func MemberObject(n *syntax.Node) (*syntax.Node, bool) {
	if n.Kind() != MemberExpr && n.Kind() != ComputedMemberExpr {
		return nil, false
	}
	nodes := n.ChildNodes()
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// StringInnerText strips the surrounding quotes of a string literal token.
// Unterminated literals keep whatever content they have.
func StringInnerText(raw string) string {
	if len(raw) == 0 {
		return raw
	}
	quote := raw[0]
	if quote != '\'' && quote != '"' {
		return raw
	}
	inner := raw[1:]
	if len(inner) > 0 && inner[len(inner)-1] == quote {
		inner = inner[:len(inner)-1]
	}
	return inner
}

// ArrowFunctionNode wraps JS_ARROW_FUNCTION.
type ArrowFunctionNode struct{ N *syntax.Node }

// AsArrowFunction casts a node.
func AsArrowFunction(n *syntax.Node) (ArrowFunctionNode, bool) {
	if n == nil || n.Kind() != ArrowFunction {
		return ArrowFunctionNode{}, false
	}
	return ArrowFunctionNode{N: n}, true
}

// Params returns the parameter binding tokens in order, covering both the
// shorthand and the parenthesized form.
func (a ArrowFunctionNode) Params() []*syntax.Token {
	var out []*syntax.Token
	collect := func(n *syntax.Node) {
		for _, p := range n.ChildNodes() {
			if p.Kind() != Param {
				continue
			}
			if b, ok := p.FirstChildOfKind(IdentBinding); ok {
				if t, ok := b.FirstTokenOfKind(Ident); ok {
					out = append(out, t)
				}
			}
		}
	}
	if list, ok := a.N.FirstChildOfKind(ParamList); ok {
		collect(list)
	} else {
		collect(a.N)
	}
	return out
}

// Body returns the arrow body: a block or an expression node.
func (a ArrowFunctionNode) Body() (*syntax.Node, bool) {
	nodes := a.N.ChildNodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		switch nodes[i].Kind() {
		case Param, ParamList:
			continue
		default:
			return nodes[i], true
		}
	}
	return nil, false
}

// HasBlockBody reports whether the body is a statement block.
func (a ArrowFunctionNode) HasBlockBody() bool {
	b, ok := a.Body()
	return ok && b.Kind() == Block
}

// ForOfStatementNode wraps JS_FOR_OF_STATEMENT.
type ForOfStatementNode struct{ N *syntax.Node }

// AsForOfStatement casts a node.
func AsForOfStatement(n *syntax.Node) (ForOfStatementNode, bool) {
	if n == nil || n.Kind() != ForOfStatement {
		return ForOfStatementNode{}, false
	}
	return ForOfStatementNode{N: n}, true
}

// Binding returns the loop variable token.
func (f ForOfStatementNode) Binding() (*syntax.Token, bool) {
	d, ok := f.N.FirstChildOfKind(ForOfDeclaration)
	if !ok {
		return nil, false
	}
	b, ok := d.FirstChildOfKind(IdentBinding)
	if !ok {
		return nil, false
	}
	return b.FirstTokenOfKind(Ident)
}

// IdentExprName returns the identifier text of a JS_IDENT_EXPR.
func IdentExprName(n *syntax.Node) (string, bool) {
	if n == nil || n.Kind() != IdentExpr {
		return "", false
	}
	t, ok := n.FirstTokenOfKind(Ident)
	if !ok {
		return "", false
	}
	return t.Text(), true
}
