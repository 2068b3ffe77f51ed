package parser

import (
	"sift/internal/source"
	"sift/internal/syntax"
)

// LexContext selects how a language lexer classifies ambiguous input at the
// current position. Contexts are enumerated here so the infrastructure can
// pass them through; each grammar documents which ones it honours.
type LexContext uint8

const (
	// LexRegular is the default classification.
	LexRegular LexContext = iota
	// LexMemberName treats keywords as plain identifiers (JS member names
	// after '.').
	LexMemberName
	// LexIdentLike forces identifier-like scanning (CSS identifier
	// positions).
	LexIdentLike
)

// Lexed is one token as produced by a language lexer: kind, significant
// text, the trivia run preceding it, and position information. Lexical
// anomalies surface as error-kind tokens, never as aborts.
type Lexed struct {
	Kind          syntax.Kind
	Text          string
	Leading       []syntax.Trivia
	Span          source.Span // significant text only
	FullStart     uint32      // start including leading trivia
	NewlineBefore bool        // a newline occurs in the leading trivia
}

// LanguageLexer is the per-grammar scanner contract. Next returns the next
// token under ctx; Seek rewinds so the current token can be re-lexed under a
// different context.
type LanguageLexer interface {
	Next(ctx LexContext) Lexed
	Seek(off uint32)
}

// TokenQueue buffers lexed tokens in front of the parser, giving bounded
// lookahead and context-sensitive relexing of the current token.
type TokenQueue struct {
	lx  LanguageLexer
	buf []Lexed
	eof syntax.Kind
}

// NewTokenQueue wraps a language lexer.
func NewTokenQueue(lx LanguageLexer, eof syntax.Kind) *TokenQueue {
	return &TokenQueue{lx: lx, buf: make([]Lexed, 0, 4), eof: eof}
}

func (q *TokenQueue) ensure(n int) {
	for len(q.buf) < n {
		q.buf = append(q.buf, q.lx.Next(LexRegular))
	}
}

// Current returns the token at the cursor without consuming it.
func (q *TokenQueue) Current() Lexed {
	q.ensure(1)
	return q.buf[0]
}

// Nth returns the n-th lookahead token (0 = current).
func (q *TokenQueue) Nth(n int) Lexed {
	q.ensure(n + 1)
	return q.buf[n]
}

// Bump consumes the current token.
func (q *TokenQueue) Bump() Lexed {
	q.ensure(1)
	t := q.buf[0]
	q.buf = q.buf[1:]
	return t
}

// Relex re-classifies the current token under ctx. Lookahead past the
// current token is discarded, since a different context may split input
// differently.
func (q *TokenQueue) Relex(ctx LexContext) Lexed {
	q.ensure(1)
	q.lx.Seek(q.buf[0].FullStart)
	t := q.lx.Next(ctx)
	q.buf = q.buf[:0]
	q.buf = append(q.buf, t)
	return t
}

// EOFKind returns the terminal kind that ends the stream.
func (q *TokenQueue) EOFKind() syntax.Kind { return q.eof }
