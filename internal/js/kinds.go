package js

import (
	"sift/internal/syntax"
)

// Token and node kinds of the JS-like grammar.
const (
	EOF syntax.Kind = iota
	ErrorTok

	Ident
	String
	Number

	KwConst
	KwLet
	KwVar
	KwFor
	KwOf

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Assign
	Arrow

	// Nodes
	Root
	VariableStatement
	VariableDeclaration
	DeclaratorList
	Declarator
	InitializerClause
	IdentBinding
	ExpressionStatement
	EmptyStatement
	Block
	ForOfStatement
	ForOfDeclaration
	IdentExpr
	StringLitExpr
	NumberLitExpr
	ParenExpr
	MemberExpr
	ComputedMemberExpr
	CallExpr
	CallArguments
	ArrowFunction
	ParamList
	Param

	// Error-wrapping nodes: unparseable spans, every token preserved.
	Bogus
	BogusStatement
	BogusExpression

	kindCount
)

var kindNames = [kindCount]string{
	EOF:      "EOF",
	ErrorTok: "ERROR_TOKEN",

	Ident:  "IDENT",
	String: "STRING",
	Number: "NUMBER",

	KwConst: "CONST_KW",
	KwLet:   "LET_KW",
	KwVar:   "VAR_KW",
	KwFor:   "FOR_KW",
	KwOf:    "OF_KW",

	LParen:    "L_PAREN",
	RParen:    "R_PAREN",
	LBrace:    "L_BRACE",
	RBrace:    "R_BRACE",
	LBracket:  "L_BRACKET",
	RBracket:  "R_BRACKET",
	Semicolon: "SEMICOLON",
	Comma:     "COMMA",
	Dot:       "DOT",
	Assign:    "ASSIGN",
	Arrow:     "ARROW",

	Root:                "JS_ROOT",
	VariableStatement:   "JS_VARIABLE_STATEMENT",
	VariableDeclaration: "JS_VARIABLE_DECLARATION",
	DeclaratorList:      "JS_DECLARATOR_LIST",
	Declarator:          "JS_DECLARATOR",
	InitializerClause:   "JS_INITIALIZER_CLAUSE",
	IdentBinding:        "JS_IDENT_BINDING",
	ExpressionStatement: "JS_EXPRESSION_STATEMENT",
	EmptyStatement:      "JS_EMPTY_STATEMENT",
	Block:               "JS_BLOCK",
	ForOfStatement:      "JS_FOR_OF_STATEMENT",
	ForOfDeclaration:    "JS_FOR_OF_DECLARATION",
	IdentExpr:           "JS_IDENT_EXPR",
	StringLitExpr:       "JS_STRING_LIT_EXPR",
	NumberLitExpr:       "JS_NUMBER_LIT_EXPR",
	ParenExpr:           "JS_PAREN_EXPR",
	MemberExpr:          "JS_MEMBER_EXPR",
	ComputedMemberExpr:  "JS_COMPUTED_MEMBER_EXPR",
	CallExpr:            "JS_CALL_EXPR",
	CallArguments:       "JS_CALL_ARGUMENTS",
	ArrowFunction:       "JS_ARROW_FUNCTION",
	ParamList:           "JS_PARAM_LIST",
	Param:               "JS_PARAM",

	Bogus:           "JS_BOGUS",
	BogusStatement:  "JS_BOGUS_STATEMENT",
	BogusExpression: "JS_BOGUS_EXPRESSION",
}

// KindName renders a kind for dumps and tests.
func KindName(k syntax.Kind) string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsKeyword reports whether k is one of the grammar's keywords.
func IsKeyword(k syntax.Kind) bool {
	switch k {
	case KwConst, KwLet, KwVar, KwFor, KwOf:
		return true
	default:
		return false
	}
}

// IsBogus reports whether k wraps an unparseable span.
func IsBogus(k syntax.Kind) bool {
	switch k {
	case Bogus, BogusStatement, BogusExpression:
		return true
	default:
		return false
	}
}

// Lang describes the grammar to the language-independent layers.
var Lang = syntax.Language{
	Name:     "js",
	KindName: KindName,
	RootKind: Root,
	EOFKind:  EOF,
	IsBogus:  IsBogus,
}
