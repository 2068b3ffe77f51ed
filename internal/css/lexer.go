package css

import (
	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/source"
	"sift/internal/syntax"
)

// Lexer scans CSS tokens. CSS lexing is total: any input tokenizes, with
// unrecognized codepoints emitted as DELIM tokens. Only unterminated
// strings and comments produce diagnostics.
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

// Seek rewinds the lexer so the token at off can be scanned again.
func (l *Lexer) Seek(off uint32) {
	l.cur.Reset(parser.Mark(off))
}

// Next scans the leading trivia run and the following token. Under
// LexIdentLike a leading `-` that the regular rules would emit as DELIM is
// scanned as an identifier instead.
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
			if !ok || b0 != '/' || b1 != '*' {
				return out, newline
			}
			l.cur.Bump()
			l.cur.Bump()
			l.blockComment(m)
			out = append(out, syntax.Trivia{Kind: syntax.TriviaBlockComment, Text: l.cur.TextFrom(m)})
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
		"unterminated comment"))
}

func (l *Lexer) scan(ctx parser.LexContext) syntax.Kind {
	start := l.cur.Mark()
	b := l.cur.Bump()
	switch {
	case isIdentStart(b):
		l.identTail()
		return Ident
	case b == '-':
		next := l.cur.Peek()
		switch {
		case isIdentStart(next) || next == '-':
			l.identTail()
			return Ident
		case isDigit(next):
			l.numberTail()
			return Number
		case ctx == parser.LexIdentLike:
			l.identTail()
			return Ident
		}
		return Delim
	case b == '@':
		if isIdentStart(l.cur.Peek()) || l.cur.Peek() == '-' {
			l.cur.Bump()
			l.identTail()
			return AtKeyword
		}
		return Delim
	case b == '#':
		if isIdentContinue(l.cur.Peek()) {
			l.identTail()
			return Hash
		}
		return Delim
	case b == '\'' || b == '"':
		return l.string(start, b)
	case isDigit(b):
		l.numberTail()
		return Number
	}

	switch b {
	case ':':
		return Colon
	case ';':
		return Semicolon
	case ',':
		return Comma
	case '{':
		return LBrace
	case '}':
		return RBrace
	case '(':
		return LParen
	case ')':
		return RParen
	case '[':
		return LBracket
	case ']':
		return RBracket
	}
	return Delim
}

func (l *Lexer) identTail() {
	for isIdentContinue(l.cur.Peek()) {
		l.cur.Bump()
	}
}

func (l *Lexer) numberTail() {
	for isDigit(l.cur.Peek()) {
		l.cur.Bump()
	}
	if b0, b1, ok := l.cur.Peek2(); ok && b0 == '.' && isDigit(b1) {
		l.cur.Bump()
		for isDigit(l.cur.Peek()) {
			l.cur.Bump()
		}
	}
	// dimension units ride along in the number token
	if isIdentStart(l.cur.Peek()) || l.cur.Peek() == '%' {
		if !l.cur.Eat('%') {
			l.identTail()
		}
	}
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
		"unterminated string"))
	return String
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '-'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
