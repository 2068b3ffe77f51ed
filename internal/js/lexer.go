package js

import (
	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

var keywords = map[string]syntax.Kind{
	"const": KwConst,
	"let":   KwLet,
	"var":   KwVar,
	"for":   KwFor,
	"of":    KwOf,
}

// Lexer scans JS tokens. Lexical anomalies become ERROR_TOKEN tokens with a
// diagnostic; the scan itself never stops before EOF.
type Lexer struct {
	cur parser.Cursor
	rep diag.Reporter
}

// NewLexer creates a lexer over a loaded file.
func NewLexer(f *source.File, rep diag.Reporter) *Lexer {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Lexer{cur: parser.NewCursor(f), rep: rep}
}

// Seek rewinds the lexer so the token at off can be scanned again. Rescanning
// a region must not repeat its diagnostics, so relexing is only valid for
// positions that lexed cleanly the first time.
func (l *Lexer) Seek(off uint32) {
	l.cur.Reset(parser.Mark(off))
}

// Next scans the leading trivia run and the following token.
func (l *Lexer) Next(ctx parser.LexContext) parser.Lexed {
	fullStart := l.cur.Off
	leading, newline := l.trivia()

	start := l.cur.Mark()
	if l.cur.EOF() {
		return parser.Lexed{
			Kind:          EOF,
			Leading:       leading,
			Span:          l.cur.SpanFrom(start),
			FullStart:     fullStart,
			NewlineBefore: newline,
		}
	}

	kind := l.scan(ctx)
	return parser.Lexed{
		Kind:          kind,
		Text:          l.cur.TextFrom(start),
		Leading:       leading,
		Span:          l.cur.SpanFrom(start),
		FullStart:     fullStart,
		NewlineBefore: newline,
	}
}

func (l *Lexer) trivia() ([]syntax.Trivia, bool) {
	var out []syntax.Trivia
	newline := false
	for !l.cur.EOF() {
		m := l.cur.Mark()
		switch b := l.cur.Peek(); {
		case b == ' ' || b == '\t':
			for l.cur.Eat(' ') || l.cur.Eat('\t') {
			}
			out = append(out, syntax.Trivia{Kind: syntax.TriviaWhitespace, Text: l.cur.TextFrom(m)})
		case b == '\n':
			for l.cur.Eat('\n') {
			}
			newline = true
			out = append(out, syntax.Trivia{Kind: syntax.TriviaNewline, Text: l.cur.TextFrom(m)})
		case b == '/':
			b0, b1, ok := l.cur.Peek2()
			if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
				return out, newline
			}
			l.cur.Bump()
			l.cur.Bump()
			if b1 == '/' {
				for !l.cur.EOF() && l.cur.Peek() != '\n' {
					l.cur.Bump()
				}
				out = append(out, syntax.Trivia{Kind: syntax.TriviaLineComment, Text: l.cur.TextFrom(m)})
			} else {
				l.blockComment(m)
				out = append(out, syntax.Trivia{Kind: syntax.TriviaBlockComment, Text: l.cur.TextFrom(m)})
			}
		default:
			return out, newline
		}
	}
	return out, newline
}

func (l *Lexer) blockComment(open parser.Mark) {
	for !l.cur.EOF() {
		if b0, b1, ok := l.cur.Peek2(); ok && b0 == '*' && b1 == '/' {
			l.cur.Bump()
			l.cur.Bump()
			return
		}
		l.cur.Bump()
	}
	l.rep.Report(diag.NewError(diag.LexUnterminatedBlockComment, l.cur.SpanFrom(open),
		"unterminated block comment"))
}

func (l *Lexer) scan(ctx parser.LexContext) syntax.Kind {
	start := l.cur.Mark()
	b := l.cur.Bump()
	switch {
	case isIdentStart(b):
		for isIdentContinue(l.cur.Peek()) {
			l.cur.Bump()
		}
		if ctx == parser.LexMemberName {
			return Ident
		}
		if k, ok := keywords[l.cur.TextFrom(start)]; ok {
			return k
		}
		return Ident
	case b == '\'' || b == '"':
		return l.string(start, b)
	case b >= '0' && b <= '9':
		return l.number(start)
	}

	switch b {
	case '(':
		return LParen
	case ')':
		return RParen
	case '{':
		return LBrace
	case '}':
		return RBrace
	case '[':
		return LBracket
	case ']':
		return RBracket
	case ';':
		return Semicolon
	case ',':
		return Comma
	case '.':
		return Dot
	case '=':
		if l.cur.Eat('>') {
			return Arrow
		}
		return Assign
	}

	l.rep.Report(diag.NewError(diag.LexUnknownChar, l.cur.SpanFrom(start),
		"unexpected character `"+l.cur.TextFrom(start)+"`"))
	return ErrorTok
}

func (l *Lexer) string(open parser.Mark, quote byte) syntax.Kind {
	for !l.cur.EOF() {
		b := l.cur.Peek()
		if b == '\n' {
			break
		}
		l.cur.Bump()
		if b == quote {
			return String
		}
		if b == '\\' && !l.cur.EOF() && l.cur.Peek() != '\n' {
			l.cur.Bump()
		}
	}
	l.rep.Report(diag.NewError(diag.LexUnterminatedString, l.cur.SpanFrom(open),
		"unterminated string literal"))
	return String
}

func (l *Lexer) number(start parser.Mark) syntax.Kind {
	for isDigit(l.cur.Peek()) {
		l.cur.Bump()
	}
	if b0, b1, ok := l.cur.Peek2(); ok && b0 == '.' && isDigit(b1) {
		l.cur.Bump()
		for isDigit(l.cur.Peek()) {
			l.cur.Bump()
		}
	}
	if isIdentStart(l.cur.Peek()) {
		for isIdentContinue(l.cur.Peek()) {
			l.cur.Bump()
		}
		l.rep.Report(diag.NewError(diag.LexBadNumber, l.cur.SpanFrom(start),
			"invalid number literal `"+l.cur.TextFrom(start)+"`"))
		return ErrorTok
	}
	return Number
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
