package parser

import (
	"fmt"
	"slices"

	"sift/internal/diag"
	"sift/internal/source"
	"sift/internal/syntax"
)

// Options configures one parse.
type Options struct {
	MaxErrors uint // 0 = unlimited
	Reporter  diag.Reporter
}

type eventKind uint8

const (
	evOpen eventKind = iota
	evClose
	evToken
	evTombstone
)

type event struct {
	ev      eventKind
	kind    syntax.Kind // node kind, set when the marker completes
	forward uint32      // 1-based index of a preceding marker's open event
	tok     Lexed
}

// Parser is the grammar-independent engine: an append-only event buffer
// plus an open-marker stack. Grammar code opens markers, bumps tokens, and
// completes or abandons markers; Finish replays the events into a green
// tree. One Parser parses one file and is not reused.
type Parser struct {
	src      *TokenQueue
	events   []event
	open     []uint32 // stack of evOpen indices awaiting resolution
	opts     Options
	errs     uint
	lastSpan source.Span
}

// New creates a parser over a token queue.
func New(src *TokenQueue, opts Options) *Parser {
	return &Parser{
		src:    src,
		events: make([]event, 0, 256),
		opts:   opts,
	}
}

// Current returns the token at the cursor.
func (p *Parser) Current() Lexed { return p.src.Current() }

// Nth returns the n-th lookahead token kind (0 = current).
func (p *Parser) Nth(n int) syntax.Kind { return p.src.Nth(n).Kind }

// At reports whether the current token has kind k.
func (p *Parser) At(k syntax.Kind) bool { return p.src.Current().Kind == k }

// AtAny reports whether the current token is one of kinds.
func (p *Parser) AtAny(kinds ...syntax.Kind) bool {
	return slices.Contains(kinds, p.src.Current().Kind)
}

// AtEOF reports whether the stream is exhausted.
func (p *Parser) AtEOF() bool { return p.At(p.src.EOFKind()) }

// Relex re-classifies the current token under ctx.
func (p *Parser) Relex(ctx LexContext) Lexed { return p.src.Relex(ctx) }

// Bump consumes the current token if it matches the expected kind. A
// mismatch is a not-matched result, not an error.
func (p *Parser) Bump(expected syntax.Kind) bool {
	if !p.At(expected) {
		return false
	}
	p.BumpAny()
	return true
}

// BumpAny consumes the current token whatever it is. EOF is never consumed.
func (p *Parser) BumpAny() {
	if p.AtEOF() {
		return
	}
	t := p.src.Bump()
	p.lastSpan = t.Span
	p.events = append(p.events, event{ev: evToken, tok: t})
}

// BumpRemap consumes the current token but records it under a different
// kind (keyword treated as identifier, etc.).
func (p *Parser) BumpRemap(as syntax.Kind) {
	if p.AtEOF() {
		return
	}
	t := p.src.Bump()
	p.lastSpan = t.Span
	t.Kind = as
	p.events = append(p.events, event{ev: evToken, tok: t})
}

// BumpEOF records the EOF sentinel so its leading trivia (the file's
// trailing trivia) survives in the tree. Grammars call it once, inside the
// root marker, after the main loop stops.
func (p *Parser) BumpEOF() {
	t := p.src.Current()
	p.events = append(p.events, event{ev: evToken, tok: t})
}

// Expect bumps the expected kind or reports a diagnostic, leaving the
// cursor in place.
func (p *Parser) Expect(expected syntax.Kind, code diag.Code, msg string) bool {
	if p.Bump(expected) {
		return true
	}
	p.Err(code, msg)
	return false
}

// Marker references an open position in the event buffer. Markers resolve
// in strict LIFO order: completing or abandoning any marker other than the
// most recently opened unresolved one is a contract violation and panics.
type Marker struct {
	pos uint32
}

// CompletedMarker identifies a finished node within the event buffer.
type CompletedMarker struct {
	pos  uint32
	kind syntax.Kind
}

// Kind returns the node kind the marker completed as.
func (c CompletedMarker) Kind() syntax.Kind { return c.kind }

// Start opens a marker at the current output position.
func (p *Parser) Start() Marker {
	pos := uint32(len(p.events))
	p.events = append(p.events, event{ev: evOpen})
	p.open = append(p.open, pos)
	return Marker{pos: pos}
}

func (p *Parser) resolveTop(m Marker, op string) {
	if len(p.open) == 0 {
		panic(fmt.Sprintf("parser: %s of already resolved marker at %d", op, m.pos))
	}
	top := p.open[len(p.open)-1]
	if top != m.pos {
		panic(fmt.Sprintf("parser: %s of marker %d while marker %d is still open", op, m.pos, top))
	}
	p.open = p.open[:len(p.open)-1]
}

// Complete finalizes everything buffered since the marker as one node of
// the given kind.
func (m Marker) Complete(p *Parser, kind syntax.Kind) CompletedMarker {
	p.resolveTop(m, "complete")
	p.events[m.pos].kind = kind
	p.events = append(p.events, event{ev: evClose})
	return CompletedMarker{pos: m.pos, kind: kind}
}

// Abandon discards the marker; children buffered since it reattach to the
// enclosing marker.
func (m Marker) Abandon(p *Parser) {
	p.resolveTop(m, "abandon")
	p.events[m.pos].ev = evTombstone
}

// Precede opens a fresh marker that will wrap the already completed node,
// letting left-recursive constructs (member chains, calls) grow around
// their first operand. The new marker follows normal LIFO rules.
func (c CompletedMarker) Precede(p *Parser) Marker {
	m := p.Start()
	p.events[c.pos].forward = m.pos + 1
	return m
}

// Err reports a diagnostic at the current token.
func (p *Parser) Err(code diag.Code, msg string) {
	p.Report(diag.NewError(code, p.errSpan(), msg))
}

// ErrAt reports a diagnostic at an explicit span.
func (p *Parser) ErrAt(code diag.Code, sp source.Span, msg string) {
	p.Report(diag.NewError(code, sp, msg))
}

// Report forwards a prepared diagnostic, honouring MaxErrors.
func (p *Parser) Report(d diag.Diagnostic) {
	if p.opts.MaxErrors != 0 && p.errs >= p.opts.MaxErrors {
		return
	}
	if d.Severity >= diag.SevError {
		p.errs++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(d)
	}
}

// ErrCount returns the number of error diagnostics reported so far.
func (p *Parser) ErrCount() uint { return p.errs }

func (p *Parser) errSpan() source.Span {
	cur := p.src.Current()
	if cur.Kind == p.src.EOFKind() && !p.lastSpan.Empty() {
		return p.lastSpan
	}
	return cur.Span
}

// Finish appends the EOF sentinel, replays the event buffer into a green
// tree, and wraps it for the given language and file. The grammar must have
// completed exactly one root node covering all input and resolved every
// marker.
func (p *Parser) Finish(lang *syntax.Language, file source.FileID) *syntax.Tree {
	if len(p.open) != 0 {
		panic(fmt.Sprintf("parser: finish with %d unresolved markers", len(p.open)))
	}

	type frame struct {
		kind     syntax.Kind
		children []syntax.GreenChild
	}
	stack := []frame{{}}

	// Opens reached through a forward-parent chain are replayed early
	// (outermost first) and must not open again at their own position.
	seen := make([]bool, len(p.events))

	for i := 0; i < len(p.events); i++ {
		e := p.events[i]
		switch e.ev {
		case evOpen:
			if seen[i] {
				continue
			}
			var kinds []syntax.Kind
			idx := i
			for {
				if p.events[idx].ev == evOpen {
					kinds = append(kinds, p.events[idx].kind)
				}
				fwd := p.events[idx].forward
				if fwd == 0 {
					break
				}
				idx = int(fwd - 1)
				seen[idx] = true
			}
			for j := len(kinds) - 1; j >= 0; j-- {
				stack = append(stack, frame{kind: kinds[j]})
			}
		case evClose:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			node := syntax.NewGreenNode(top.kind, top.children)
			stack[len(stack)-1].children = append(stack[len(stack)-1].children, node)
		case evToken:
			tok := syntax.NewGreenToken(e.tok.Kind, e.tok.Text, e.tok.Leading)
			stack[len(stack)-1].children = append(stack[len(stack)-1].children, tok)
		case evTombstone:
			// abandoned marker: children already flow to the parent
		}
	}

	root := stack[0]
	if len(root.children) != 1 {
		panic(fmt.Sprintf("parser: finish expects one root node, got %d", len(root.children)))
	}
	rootNode, ok := root.children[0].(*syntax.GreenNode)
	if !ok {
		panic("parser: root of the event buffer is not a node")
	}
	return syntax.NewTree(lang, rootNode, file)
}
