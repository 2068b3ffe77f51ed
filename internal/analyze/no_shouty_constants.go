package analyze

import (
	"golang.org/x/text/unicode/norm"

	"sift/internal/diag"
	"sift/internal/js"
	"sift/internal/mutation"
	"sift/internal/syntax"
)

// NoShoutyConstants flags `const FOO = "FOO"`: a constant holding a string
// equal to its own name. The fix inlines the literal at every use and
// removes the declarator, repairing the declarator list.
type NoShoutyConstants struct{}

func (NoShoutyConstants) Name() string { return "noShoutyConstants" }

func (NoShoutyConstants) Language() string { return "js" }

func (NoShoutyConstants) Query() []syntax.Kind { return []syntax.Kind{js.Declarator} }

func (NoShoutyConstants) Run(ctx *RuleContext, n *syntax.Node) []Signal {
	decl := js.DeclaratorNode{N: n}

	vd, ok := n.AncestorOfKind(js.VariableDeclaration)
	if !ok || !(js.VariableDeclarationNode{N: vd}).IsConst() {
		return nil
	}
	nameTok, ok := decl.Name()
	if !ok {
		return nil
	}
	init, ok := decl.Initializer()
	if !ok || init.Kind() != js.StringLitExpr {
		return nil
	}
	litTok, ok := init.FirstTokenOfKind(js.String)
	if !ok {
		return nil
	}

	// comparison is NFC-normalized so composed and decomposed spellings of
	// the same name match
	name := norm.NFC.String(nameTok.Text())
	if norm.NFC.String(js.StringInnerText(litTok.Text())) != name {
		return nil
	}

	d := diag.NewWarning(diag.LintNoShoutyConstants, n.Span(),
		"redundant constant declaration").
		WithFooter("the string is the same value as the constant name; use the literal directly")

	var refs []*syntax.Node
	if b, ok := n.FirstChildOfKind(js.IdentBinding); ok {
		if sb, ok := ctx.Model().BindingOf(b); ok {
			refs = sb.References()
		}
	}

	batch := js.RemoveDeclarator(decl)
	for _, ref := range refs {
		d = d.WithNote(ref.Span(), "used here")
		batch.Merge(inlineLiteral(ref, litTok))
	}

	return []Signal{{
		Rule:       "noShoutyConstants",
		Diagnostic: d,
		Actions: []Action{{
			Title:         "use the string literal directly",
			Applicability: ApplicabilityMaybeIncorrect,
			Batch:         batch,
		}},
	}}
}

// inlineLiteral replaces one identifier reference with the string literal,
// keeping the reference's leading trivia so surrounding spacing survives.
func inlineLiteral(ref *syntax.Node, lit *syntax.Token) *mutation.Batch {
	b := mutation.NewBatch()
	var leading []syntax.Trivia
	if t := ref.FirstToken(); t != nil {
		leading = t.Leading()
	}
	tok := syntax.NewGreenToken(js.String, lit.Text(), leading)
	node := syntax.NewGreenNode(js.StringLitExpr, []syntax.GreenChild{tok})
	b.Replace(ref, node)
	return b
}
