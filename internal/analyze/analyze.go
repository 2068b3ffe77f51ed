// Package analyze runs lint rules over parsed trees. Rules declare the node
// kinds they match; the analyzer visits the tree once and dispatches each
// node to the interested rules. Findings come back as signals carrying a
// diagnostic and zero or more code actions.
package analyze

import (
	"slices"

	"sift/internal/diag"
	"sift/internal/mutation"
	"sift/internal/semantic"
	"sift/internal/syntax"
)

// Applicability states how safely an action can be applied unattended.
type Applicability uint8

const (
	// ApplicabilityAlways: the action preserves program behavior.
	ApplicabilityAlways Applicability = iota
	// ApplicabilityMaybeIncorrect: the action is a best guess and may need
	// review.
	ApplicabilityMaybeIncorrect
)

func (a Applicability) String() string {
	if a == ApplicabilityAlways {
		return "always"
	}
	return "maybe-incorrect"
}

// Action is one proposed code change, expressed as a mutation batch so
// several actions can be merged and applied in a single rebuild.
type Action struct {
	Title         string
	Applicability Applicability
	Batch         *mutation.Batch
}

// Signal is one rule finding at one location.
type Signal struct {
	Rule       string
	Diagnostic diag.Diagnostic
	Actions    []Action
}

// Rule is the contract lint rules implement.
type Rule interface {
	// Name is the rule's public identifier, e.g. "noForEach".
	Name() string
	// Language names the grammar the rule understands.
	Language() string
	// Query lists the node kinds the rule wants to inspect.
	Query() []syntax.Kind
	// Run inspects one matched node.
	Run(ctx *RuleContext, n *syntax.Node) []Signal
}

// RuleContext gives rules access to the tree and to lazily built services.
// The semantic model is computed at most once per analyzed tree.
type RuleContext struct {
	tree  *syntax.Tree
	model *semantic.Model
}

// Tree returns the tree under analysis.
func (c *RuleContext) Tree() *syntax.Tree { return c.tree }

// Model returns the binding model, building it on first use.
func (c *RuleContext) Model() *semantic.Model {
	if c.model == nil {
		c.model = semantic.Build(c.tree)
	}
	return c.model
}

// Analyzer dispatches a fixed set of rules.
type Analyzer struct {
	rules []Rule
}

// New creates an analyzer over the given rules.
func New(rules ...Rule) *Analyzer {
	return &Analyzer{rules: rules}
}

// Rules returns the analyzer's rule set.
func (a *Analyzer) Rules() []Rule { return a.rules }

// Run analyzes one tree and returns the signals sorted by position.
func (a *Analyzer) Run(tree *syntax.Tree) []Signal {
	byKind := make(map[syntax.Kind][]Rule)
	for _, r := range a.rules {
		if r.Language() != tree.Language().Name {
			continue
		}
		for _, k := range r.Query() {
			byKind[k] = append(byKind[k], r)
		}
	}
	if len(byKind) == 0 {
		return nil
	}

	ctx := &RuleContext{tree: tree}
	var signals []Signal
	tree.Root().Preorder(func(el syntax.Element) bool {
		n, ok := el.(*syntax.Node)
		if !ok {
			return true
		}
		for _, r := range byKind[n.Kind()] {
			signals = append(signals, r.Run(ctx, n)...)
		}
		return true
	})

	slices.SortStableFunc(signals, func(a, b Signal) int {
		sa, sb := a.Diagnostic.Primary, b.Diagnostic.Primary
		if sa.Start != sb.Start {
			return int(sa.Start) - int(sb.Start)
		}
		return int(sa.End) - int(sb.End)
	})
	return signals
}
