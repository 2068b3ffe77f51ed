package css

import (
	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

// Parse builds the lossless tree for one CSS file.
func Parse(f *source.File, opts parser.Options) *syntax.Tree {
	lx := NewLexer(f, opts.Reporter)
	q := parser.NewTokenQueue(lx, EOF)
	p := parser.New(q, opts)

	root := p.Start()
	for !p.AtEOF() {
		rule(p)
	}
	p.BumpEOF()
	root.Complete(p, Root)
	return p.Finish(&Lang, f.ID)
}

func rule(p *parser.Parser) {
	switch {
	case p.At(AtKeyword):
		atRule(p)
	case p.At(RBrace) || p.At(Semicolon):
		p.Err(diag.SynExpectRule, "expected a rule")
		m := p.Start()
		p.BumpAny()
		m.Complete(p, BogusRule)
	default:
		qualifiedRule(p)
	}
}

// atRule dispatches on the at-keyword. `@color-profile` has a dedicated
// grammar; everything else takes the generic prelude-then-block shape.
func atRule(p *parser.Parser) {
	if p.Current().Text == "@color-profile" {
		colorProfileAtRule(p)
		return
	}

	m := p.Start()
	p.BumpAny()

	pm := p.Start()
	for !p.AtEOF() && !p.AtAny(LBrace, Semicolon) {
		p.BumpAny()
	}
	pm.Complete(p, AtRulePrelude)

	switch {
	case p.At(LBrace):
		declarationBlock(p)
	case p.At(Semicolon):
		p.BumpAny()
	default:
		p.Err(diag.SynExpectDeclBlock, "expected a block or `;`")
	}
	m.Complete(p, AtRule)
}

var colorProfileNameRecovery = parser.NewRecovery(Bogus, LBrace).
	EnableRecoveryOnLineBreak()

func expectedCustomIdent(sp source.Span) diag.Diagnostic {
	return diag.NewError(diag.SynExpectCustomIdent, sp,
		"expected a custom identifier for the color profile name")
}

// colorProfileAtRule parses `@color-profile <name> { decls }`. When the name
// is missing or invalid the rule finalizes as a bogus at-rule, but the block
// is still parsed so its declarations keep their diagnostics and structure.
func colorProfileAtRule(p *parser.Parser) {
	m := p.Start()
	p.BumpAny()

	_, status := customIdent(p).OrRecover(p, colorProfileNameRecovery, expectedCustomIdent)

	if p.At(LBrace) {
		declarationBlock(p)
	} else {
		p.Err(diag.SynExpectDeclBlock, "expected a declaration block")
	}

	kind := ColorProfileAtRule
	if status.Recovered() {
		kind = BogusAtRule
	}
	m.Complete(p, kind)
}

var cssWideKeywords = map[string]bool{
	"default":      true,
	"inherit":      true,
	"initial":      true,
	"revert":       true,
	"revert-layer": true,
	"unset":        true,
}

// customIdent accepts an identifier that is not a CSS-wide keyword. Dashed
// idents that the regular context lexes as DELIM are retried ident-like.
func customIdent(p *parser.Parser) parser.ParsedSyntax {
	if p.At(Delim) && p.Current().Text == "-" {
		p.Relex(parser.LexIdentLike)
	}
	if !p.At(Ident) || cssWideKeywords[p.Current().Text] {
		return parser.Absent()
	}
	m := p.Start()
	p.BumpAny()
	return parser.Present(m.Complete(p, CustomIdent))
}

func qualifiedRule(p *parser.Parser) {
	m := p.Start()

	pm := p.Start()
	for !p.AtEOF() && !p.At(LBrace) {
		p.BumpAny()
	}
	pm.Complete(p, SelectorPrelude)

	if !p.At(LBrace) {
		p.Err(diag.SynExpectDeclBlock, "expected a declaration block")
		m.Complete(p, BogusRule)
		return
	}
	declarationBlock(p)
	m.Complete(p, QualifiedRule)
}

func declarationBlock(p *parser.Parser) {
	m := p.Start()
	p.BumpAny()
	for !p.AtEOF() && !p.At(RBrace) {
		declaration(p)
	}
	p.Expect(RBrace, diag.SynUnclosedBrace, "expected `}`")
	m.Complete(p, DeclarationBlock)
}

func declaration(p *parser.Parser) {
	if p.At(Delim) && p.Current().Text == "-" {
		p.Relex(parser.LexIdentLike)
	}
	if !p.At(Ident) {
		p.Err(diag.SynExpectDeclValue, "expected a declaration")
		m := p.Start()
		p.BumpAny()
		for !p.AtEOF() && !p.AtAny(Semicolon, RBrace) {
			p.BumpAny()
		}
		p.Bump(Semicolon)
		m.Complete(p, BogusDeclaration)
		return
	}

	m := p.Start()
	p.BumpAny()
	if !p.Expect(Colon, diag.SynExpectDeclValue, "expected `:`") {
		for !p.AtEOF() && !p.AtAny(Semicolon, RBrace) {
			p.BumpAny()
		}
		p.Bump(Semicolon)
		m.Complete(p, BogusDeclaration)
		return
	}

	vm := p.Start()
	n := 0
	for !p.AtEOF() && !p.AtAny(Semicolon, RBrace) {
		p.BumpAny()
		n++
	}
	vm.Complete(p, DeclarationValue)
	if n == 0 {
		p.Err(diag.SynExpectDeclValue, "expected a declaration value")
	}

	p.Bump(Semicolon)
	m.Complete(p, Declaration)
}
