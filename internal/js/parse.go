package js

import (
	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

// Parse builds the lossless tree for one JS file. Diagnostics go to
// opts.Reporter; the tree is produced even for badly broken input, with
// bogus nodes holding whatever could not be understood.
func Parse(f *source.File, opts parser.Options) *syntax.Tree {
	lx := NewLexer(f, opts.Reporter)
	q := parser.NewTokenQueue(lx, EOF)
	p := parser.New(q, opts)

	root := p.Start()
	for !p.AtEOF() {
		statement(p)
	}
	p.BumpEOF()
	root.Complete(p, Root)
	return p.Finish(&Lang, f.ID)
}

var statementStarters = []syntax.Kind{
	KwConst, KwLet, KwVar, KwFor, LBrace, Semicolon,
	Ident, String, Number, LParen,
}

func statement(p *parser.Parser) {
	switch {
	case p.AtAny(KwConst, KwLet, KwVar):
		variableStatement(p)
	case p.At(KwFor):
		forOfStatement(p)
	case p.At(LBrace):
		block(p)
	case p.At(Semicolon):
		m := p.Start()
		p.BumpAny()
		m.Complete(p, EmptyStatement)
	default:
		if expr := expression(p); expr.IsPresent() {
			m := expr.Unwrap().Precede(p)
			semicolon(p)
			m.Complete(p, ExpressionStatement)
			return
		}
		p.Err(diag.SynExpectStatement, "expected a statement")
		m := p.Start()
		p.BumpAny()
		for !p.AtEOF() && !p.At(RBrace) && !p.AtAny(statementStarters...) {
			p.BumpAny()
		}
		m.Complete(p, BogusStatement)
	}
}

// semicolon consumes the statement terminator. A missing one is tolerated at
// a line break, before `}`, and at EOF.
func semicolon(p *parser.Parser) {
	if p.Bump(Semicolon) {
		return
	}
	if p.AtEOF() || p.At(RBrace) || p.Current().NewlineBefore {
		return
	}
	p.Err(diag.SynExpectSemicolon, "expected `;`")
}

func block(p *parser.Parser) {
	m := p.Start()
	p.BumpAny()
	for !p.AtEOF() && !p.At(RBrace) {
		statement(p)
	}
	p.Expect(RBrace, diag.SynUnclosedBrace, "expected `}`")
	m.Complete(p, Block)
}

// variableStatement parses `const a = 1, b = 2;` and friends. The declarator
// list is its own node so a fix can remove one declarator without touching
// its siblings.
func variableStatement(p *parser.Parser) {
	m := p.Start()
	dm := p.Start()
	p.BumpAny()

	lm := p.Start()
	for {
		declarator(p).OrRecover(p, declaratorRecovery, expectedDeclarator)
		if !p.Bump(Comma) {
			break
		}
	}
	lm.Complete(p, DeclaratorList)
	dm.Complete(p, VariableDeclaration)

	semicolon(p)
	m.Complete(p, VariableStatement)
}

var declaratorRecovery = parser.NewRecovery(Bogus, Comma, Semicolon, RBrace).
	EnableRecoveryOnLineBreak()

func expectedDeclarator(sp source.Span) diag.Diagnostic {
	return diag.NewError(diag.SynExpectDeclarator, sp, "expected a variable declarator")
}

func declarator(p *parser.Parser) parser.ParsedSyntax {
	if !p.At(Ident) {
		return parser.Absent()
	}
	m := p.Start()
	bm := p.Start()
	p.BumpAny()
	bm.Complete(p, IdentBinding)

	if p.At(Assign) {
		im := p.Start()
		p.BumpAny()
		if expr := expression(p); expr.IsAbsent() {
			p.Err(diag.SynExpectExpression, "expected an initializer expression")
			declaratorRecovery.Recover(p)
		}
		im.Complete(p, InitializerClause)
	}
	return parser.Present(m.Complete(p, Declarator))
}

// forOfStatement parses `for (const item of items) body`.
func forOfStatement(p *parser.Parser) {
	m := p.Start()
	p.BumpAny()
	p.Expect(LParen, diag.SynExpectForOfHead, "expected `(` after `for`")

	if p.AtAny(KwConst, KwLet, KwVar) {
		dm := p.Start()
		p.BumpAny()
		if p.At(Ident) {
			bm := p.Start()
			p.BumpAny()
			bm.Complete(p, IdentBinding)
		} else {
			p.Err(diag.SynExpectIdentifier, "expected a binding name")
		}
		dm.Complete(p, ForOfDeclaration)
	} else {
		p.Err(diag.SynExpectForOfHead, "expected `const`, `let` or `var`")
		parser.NewRecovery(Bogus, KwOf, RParen, LBrace).
			EnableRecoveryOnLineBreak().
			Recover(p)
	}

	p.Expect(KwOf, diag.SynExpectForOfHead, "expected `of`")
	if expr := expression(p); expr.IsAbsent() {
		p.Err(diag.SynExpectExpression, "expected an iterable expression")
		parser.NewRecovery(BogusExpression, RParen, LBrace).
			EnableRecoveryOnLineBreak().
			Recover(p)
	}
	p.Expect(RParen, diag.SynUnclosedParen, "expected `)`")

	if p.AtEOF() {
		p.Err(diag.SynExpectStatement, "expected a loop body")
	} else {
		statement(p)
	}
	m.Complete(p, ForOfStatement)
}
