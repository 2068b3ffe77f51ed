package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectExpression  Code = 2003
	SynExpectSemicolon   Code = 2004
	SynExpectDeclarator  Code = 2005
	SynUnclosedBrace     Code = 2006
	SynUnclosedParen     Code = 2007
	SynUnclosedBracket   Code = 2008
	SynExpectMemberName  Code = 2009
	SynExpectArrowBody   Code = 2010
	SynExpectForOfHead   Code = 2011
	SynExpectStatement   Code = 2012
	SynExpectCustomIdent Code = 2100
	SynExpectDeclBlock   Code = 2101
	SynExpectDeclValue   Code = 2102
	SynExpectAtRuleName  Code = 2103
	SynExpectRule        Code = 2104

	// Lint rules
	LintInfo              Code = 4000
	LintNoForEach         Code = 4001
	LintNoShoutyConstants Code = 4002

	// I/O and orchestration
	IOLoadFileError Code = 5000
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	LexInfo:                     "Lexer information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",

	SynInfo:              "Parser information",
	SynUnexpectedToken:   "Unexpected token",
	SynExpectIdentifier:  "Expected an identifier",
	SynExpectExpression:  "Expected an expression",
	SynExpectSemicolon:   "Expected a semicolon",
	SynExpectDeclarator:  "Expected a variable declarator",
	SynUnclosedBrace:     "Unclosed brace",
	SynUnclosedParen:     "Unclosed parenthesis",
	SynUnclosedBracket:   "Unclosed bracket",
	SynExpectMemberName:  "Expected a member name",
	SynExpectArrowBody:   "Expected an arrow function body",
	SynExpectForOfHead:   "Malformed for...of head",
	SynExpectStatement:   "Expected a statement",
	SynExpectCustomIdent: "Expected a custom identifier",
	SynExpectDeclBlock:   "Expected a declaration block",
	SynExpectDeclValue:   "Expected a declaration value",
	SynExpectAtRuleName:  "Expected an at-rule name",
	SynExpectRule:        "Expected a rule",

	LintInfo:              "Lint information",
	LintNoForEach:         "Prefer for...of over forEach",
	LintNoShoutyConstants: "Redundant constant declaration",

	IOLoadFileError: "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
