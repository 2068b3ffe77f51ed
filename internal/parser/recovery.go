package parser

import (
	"slices"

	"sift/internal/diag"
	"sift/internal/source"
	"sift/internal/syntax"
)

// ParsedSyntax is the outcome of trying one grammar construct: Present with
// a completed node, or Absent when the construct did not start at the
// cursor. Absent consumes nothing, so callers are free to try alternatives.
type ParsedSyntax struct {
	present bool
	marker  CompletedMarker
}

// Present wraps a completed construct.
func Present(m CompletedMarker) ParsedSyntax {
	return ParsedSyntax{present: true, marker: m}
}

// Absent is the zero-consumption "not here" result.
func Absent() ParsedSyntax {
	return ParsedSyntax{}
}

func (ps ParsedSyntax) IsPresent() bool { return ps.present }
func (ps ParsedSyntax) IsAbsent() bool  { return !ps.present }

// Unwrap returns the completed marker; valid only when present.
func (ps ParsedSyntax) Unwrap() CompletedMarker { return ps.marker }

// RecoveryStatus reports how a required construct was obtained.
type RecoveryStatus uint8

const (
	// RecoveryClean: the construct parsed normally.
	RecoveryClean RecoveryStatus = iota
	// RecoveryRecovered: the construct was missing; the offending tokens
	// were wrapped into a bogus node.
	RecoveryRecovered
	// RecoveryBailed: the construct was missing and recovery consumed
	// nothing (cursor already at a resumption point or EOF).
	RecoveryBailed
)

// Recovered reports whether the recovery protocol ran at all; the enclosing
// construct then finalizes with its error kind.
func (s RecoveryStatus) Recovered() bool { return s != RecoveryClean }

// Recovery describes how to resynchronize after a missing construct: the
// token kinds that are safe resumption points, the bogus kind that wraps the
// skipped region, and whether a line break also stops recovery. Each call
// site configures its own value.
type Recovery struct {
	bogus       syntax.Kind
	set         []syntax.Kind
	onLineBreak bool
}

// NewRecovery builds a recovery config for one construct.
func NewRecovery(bogus syntax.Kind, set ...syntax.Kind) Recovery {
	return Recovery{bogus: bogus, set: set}
}

// EnableRecoveryOnLineBreak also stops recovery at the first line break.
func (r Recovery) EnableRecoveryOnLineBreak() Recovery {
	r.onLineBreak = true
	return r
}

func (r Recovery) atPoint(p *Parser) bool {
	if p.AtEOF() {
		return true
	}
	cur := p.Current()
	if slices.Contains(r.set, cur.Kind) {
		return true
	}
	return r.onLineBreak && cur.NewlineBefore
}

// Recover wraps tokens into a bogus node until a resumption point. It
// consumes at least one token or bails; it never loops in place and never
// drops input.
func (r Recovery) Recover(p *Parser) RecoveryStatus {
	if r.atPoint(p) {
		return RecoveryBailed
	}
	m := p.Start()
	for !r.atPoint(p) {
		p.BumpAny()
	}
	m.Complete(p, r.bogus)
	return RecoveryRecovered
}

// Expected builds the "expected X" diagnostic for a construct that did not
// appear at span.
type Expected func(span source.Span) diag.Diagnostic

// OrRecover returns the construct when present; otherwise it reports the
// expected-diagnostic and runs the recovery protocol. The status tells the
// caller whether to finalize with the construct's normal kind
// (RecoveryClean) or its error kind.
func (ps ParsedSyntax) OrRecover(p *Parser, r Recovery, expected Expected) (CompletedMarker, RecoveryStatus) {
	if ps.present {
		return ps.marker, RecoveryClean
	}
	p.Report(expected(p.errSpan()))
	return CompletedMarker{}, r.Recover(p)
}
