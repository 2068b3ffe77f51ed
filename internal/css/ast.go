package css

import (
	"sift/internal/syntax"
)

// ColorProfileNode wraps CSS_COLOR_PROFILE_AT_RULE.
type ColorProfileNode struct{ N *syntax.Node }

// AsColorProfile casts a node.
func AsColorProfile(n *syntax.Node) (ColorProfileNode, bool) {
	if n == nil || n.Kind() != ColorProfileAtRule {
		return ColorProfileNode{}, false
	}
	return ColorProfileNode{N: n}, true
}

// Name returns the profile's custom identifier token.
func (c ColorProfileNode) Name() (*syntax.Token, bool) {
	ci, ok := c.N.FirstChildOfKind(CustomIdent)
	if !ok {
		return nil, false
	}
	return ci.FirstTokenOfKind(Ident)
}

// Block returns the declaration block.
func (c ColorProfileNode) Block() (DeclarationBlockNode, bool) {
	b, ok := c.N.FirstChildOfKind(DeclarationBlock)
	if !ok {
		return DeclarationBlockNode{}, false
	}
	return DeclarationBlockNode{N: b}, true
}

// DeclarationBlockNode wraps CSS_DECLARATION_BLOCK.
type DeclarationBlockNode struct{ N *syntax.Node }

// Declarations returns the well-formed declarations, skipping bogus ones.
func (b DeclarationBlockNode) Declarations() []DeclarationNode {
	var out []DeclarationNode
	for _, c := range b.N.ChildNodes() {
		if c.Kind() == Declaration {
			out = append(out, DeclarationNode{N: c})
		}
	}
	return out
}

// DeclarationNode wraps CSS_DECLARATION.
type DeclarationNode struct{ N *syntax.Node }

// Name returns the property name token.
func (d DeclarationNode) Name() (*syntax.Token, bool) {
	return d.N.FirstTokenOfKind(Ident)
}

// Value returns the value node.
func (d DeclarationNode) Value() (*syntax.Node, bool) {
	return d.N.FirstChildOfKind(DeclarationValue)
}
