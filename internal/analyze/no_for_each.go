package analyze

import (
	"sift/internal/diag"
	"sift/internal/js"
	"sift/internal/syntax"
)

// NoForEach flags any call whose callee member name is `forEach` and
// suggests a for-of loop, which supports break/continue and reads better
// for side effects. The match is name-based; no attempt is made to prove
// the receiver is an array.
type NoForEach struct{}

func (NoForEach) Name() string { return "noForEach" }

func (NoForEach) Language() string { return "js" }

func (NoForEach) Query() []syntax.Kind { return []syntax.Kind{js.CallExpr} }

func (NoForEach) Run(_ *RuleContext, n *syntax.Node) []Signal {
	call, ok := js.AsCallExpression(n)
	if !ok {
		return nil
	}
	callee, ok := call.Callee()
	if !ok {
		return nil
	}
	callee = js.UnwrapParens(callee)
	name, ok := js.MemberName(callee)
	if !ok || name != "forEach" {
		return nil
	}

	d := diag.NewWarning(diag.LintNoForEach, n.Span(), "prefer for...of instead of forEach").
		WithFooter("for...of supports break and continue and avoids a callback allocation")
	return []Signal{{Rule: "noForEach", Diagnostic: d}}
}
