package js

import (
	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/syntax"
)

// expression parses a primary expression and grows the member/call postfix
// chain around it. Absent means nothing was consumed.
func expression(p *parser.Parser) parser.ParsedSyntax {
	primary := primaryExpression(p)
	if primary.IsAbsent() {
		return parser.Absent()
	}

	cm := primary.Unwrap()
	for {
		switch {
		case p.At(Dot):
			m := cm.Precede(p)
			p.BumpAny()
			memberName(p)
			cm = m.Complete(p, MemberExpr)
		case p.At(LBracket):
			m := cm.Precede(p)
			p.BumpAny()
			if e := expression(p); e.IsAbsent() {
				p.Err(diag.SynExpectExpression, "expected an index expression")
			}
			p.Expect(RBracket, diag.SynUnclosedBracket, "expected `]`")
			cm = m.Complete(p, ComputedMemberExpr)
		case p.At(LParen):
			m := cm.Precede(p)
			callArguments(p)
			cm = m.Complete(p, CallExpr)
		default:
			return parser.Present(cm)
		}
	}
}

// memberName consumes the name after `.`. Keywords are valid member names,
// so the current token is re-lexed with keyword recognition off.
func memberName(p *parser.Parser) {
	if IsKeyword(p.Nth(0)) {
		p.Relex(parser.LexMemberName)
	}
	if !p.Bump(Ident) {
		p.Err(diag.SynExpectMemberName, "expected a member name after `.`")
	}
}

func primaryExpression(p *parser.Parser) parser.ParsedSyntax {
	switch {
	case p.At(Ident) && p.Nth(1) == Arrow:
		return parser.Present(arrowFunction(p))
	case p.At(Ident):
		return parser.Present(tokenExpr(p, IdentExpr))
	case p.At(String):
		return parser.Present(tokenExpr(p, StringLitExpr))
	case p.At(Number):
		return parser.Present(tokenExpr(p, NumberLitExpr))
	case p.At(LParen):
		if atParenArrow(p) {
			return parser.Present(arrowFunction(p))
		}
		m := p.Start()
		p.BumpAny()
		if e := expression(p); e.IsAbsent() {
			p.Err(diag.SynExpectExpression, "expected an expression after `(`")
		}
		p.Expect(RParen, diag.SynUnclosedParen, "expected `)`")
		return parser.Present(m.Complete(p, ParenExpr))
	default:
		return parser.Absent()
	}
}

func tokenExpr(p *parser.Parser, kind syntax.Kind) parser.CompletedMarker {
	m := p.Start()
	p.BumpAny()
	return m.Complete(p, kind)
}

// atParenArrow decides whether `(` starts an arrow parameter list. The
// parameter grammar is identifiers only, so a bounded token scan is enough.
func atParenArrow(p *parser.Parser) bool {
	if p.Nth(1) == RParen {
		return p.Nth(2) == Arrow
	}
	n := 1
	for {
		if p.Nth(n) != Ident {
			return false
		}
		n++
		switch p.Nth(n) {
		case Comma:
			n++
		case RParen:
			return p.Nth(n+1) == Arrow
		default:
			return false
		}
	}
}

// arrowFunction parses `x => body` and `(a, b) => body`. The shorthand form
// still gets a Param node so both shapes bind parameters the same way.
func arrowFunction(p *parser.Parser) parser.CompletedMarker {
	m := p.Start()
	if p.At(Ident) {
		pm := p.Start()
		bm := p.Start()
		p.BumpAny()
		bm.Complete(p, IdentBinding)
		pm.Complete(p, Param)
	} else {
		paramList(p)
	}
	p.Expect(Arrow, diag.SynExpectArrowBody, "expected `=>`")

	switch {
	case p.At(LBrace):
		block(p)
	default:
		if e := expression(p); e.IsAbsent() {
			p.Err(diag.SynExpectArrowBody, "expected an arrow function body")
		}
	}
	return m.Complete(p, ArrowFunction)
}

func paramList(p *parser.Parser) {
	m := p.Start()
	p.BumpAny()
	for !p.AtEOF() && !p.At(RParen) {
		if p.At(Ident) {
			pm := p.Start()
			bm := p.Start()
			p.BumpAny()
			bm.Complete(p, IdentBinding)
			pm.Complete(p, Param)
		} else {
			p.Err(diag.SynExpectIdentifier, "expected a parameter name")
			break
		}
		if !p.Bump(Comma) {
			break
		}
	}
	p.Expect(RParen, diag.SynUnclosedParen, "expected `)`")
	m.Complete(p, ParamList)
}

var argumentRecovery = parser.NewRecovery(BogusExpression, Comma, RParen).
	EnableRecoveryOnLineBreak()

func callArguments(p *parser.Parser) {
	m := p.Start()
	p.BumpAny()
	for !p.AtEOF() && !p.At(RParen) {
		if e := expression(p); e.IsAbsent() {
			p.Err(diag.SynExpectExpression, "expected a call argument")
			if argumentRecovery.Recover(p) == parser.RecoveryBailed && !p.At(Comma) {
				break
			}
		}
		if !p.Bump(Comma) {
			break
		}
	}
	p.Expect(RParen, diag.SynUnclosedParen, "expected `)`")
	m.Complete(p, CallArguments)
}
