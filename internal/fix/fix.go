// Package fix turns analyzer actions into a rewritten tree. Actions are
// mutation batches; compatible ones merge into a single rebuild, and an
// action whose batch conflicts with already accepted ones is skipped rather
// than failing the whole run.
package fix

import (
	"errors"

	"sift/internal/analyze"
	"sift/internal/mutation"
	"sift/internal/syntax"
)

// Mode selects which actions are eligible.
type Mode uint8

const (
	// ModeSafe applies only actions marked always-correct.
	ModeSafe Mode = iota
	// ModeAll also applies actions that may need review.
	ModeAll
)

// Applied records one action that made it into the result.
type Applied struct {
	Rule  string
	Title string
}

// Skipped records one action left out and why.
type Skipped struct {
	Rule   string
	Title  string
	Reason string
}

// Outcome is the result of applying a signal set to one tree.
type Outcome struct {
	// Tree is the rewritten tree; it is the input tree when nothing applied.
	Tree    *syntax.Tree
	Applied []Applied
	Skipped []Skipped
}

// Changed reports whether any action was applied.
func (o Outcome) Changed() bool { return len(o.Applied) > 0 }

// Apply folds the first action of each signal into one batch, in signal
// order. Each candidate is trial-committed together with the accepted set;
// a conflict skips the candidate and keeps everything accepted so far.
func Apply(tree *syntax.Tree, signals []analyze.Signal, mode Mode) (Outcome, error) {
	out := Outcome{Tree: tree}
	accepted := mutation.NewBatch()

	for _, sig := range signals {
		if len(sig.Actions) == 0 {
			continue
		}
		action := sig.Actions[0]
		if mode == ModeSafe && action.Applicability != analyze.ApplicabilityAlways {
			out.Skipped = append(out.Skipped, Skipped{
				Rule:   sig.Rule,
				Title:  action.Title,
				Reason: "not safe to apply automatically",
			})
			continue
		}
		if action.Batch == nil || action.Batch.Empty() {
			continue
		}

		trial := mutation.NewBatch()
		trial.Merge(accepted)
		trial.Merge(action.Batch)
		if _, err := trial.Commit(tree); err != nil {
			if errors.Is(err, mutation.ErrConflict) {
				out.Skipped = append(out.Skipped, Skipped{
					Rule:   sig.Rule,
					Title:  action.Title,
					Reason: "conflicts with an earlier fix",
				})
				continue
			}
			return Outcome{}, err
		}
		accepted = trial
		out.Applied = append(out.Applied, Applied{Rule: sig.Rule, Title: action.Title})
	}

	if accepted.Empty() {
		return out, nil
	}
	rebuilt, err := accepted.Commit(tree)
	if err != nil {
		return Outcome{}, err
	}
	out.Tree = rebuilt
	return out, nil
}
