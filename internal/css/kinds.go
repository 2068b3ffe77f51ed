package css

import (
	"sift/internal/syntax"
)

// Token and node kinds of the CSS grammar.
const (
	EOF syntax.Kind = iota
	ErrorTok

	Ident
	AtKeyword
	String
	Number
	Hash
	Delim

	Colon
	Semicolon
	Comma
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket

	// Nodes
	Root
	AtRule
	AtRulePrelude
	ColorProfileAtRule
	CustomIdent
	QualifiedRule
	SelectorPrelude
	DeclarationBlock
	Declaration
	DeclarationValue

	Bogus
	BogusAtRule
	BogusRule
	BogusDeclaration

	kindCount
)

var kindNames = [kindCount]string{
	EOF:      "EOF",
	ErrorTok: "ERROR_TOKEN",

	Ident:     "IDENT",
	AtKeyword: "AT_KEYWORD",
	String:    "STRING",
	Number:    "NUMBER",
	Hash:      "HASH",
	Delim:     "DELIM",

	Colon:     "COLON",
	Semicolon: "SEMICOLON",
	Comma:     "COMMA",
	LBrace:    "L_BRACE",
	RBrace:    "R_BRACE",
	LParen:    "L_PAREN",
	RParen:    "R_PAREN",
	LBracket:  "L_BRACKET",
	RBracket:  "R_BRACKET",

	Root:               "CSS_ROOT",
	AtRule:             "CSS_AT_RULE",
	AtRulePrelude:      "CSS_AT_RULE_PRELUDE",
	ColorProfileAtRule: "CSS_COLOR_PROFILE_AT_RULE",
	CustomIdent:        "CSS_CUSTOM_IDENT",
	QualifiedRule:      "CSS_QUALIFIED_RULE",
	SelectorPrelude:    "CSS_SELECTOR_PRELUDE",
	DeclarationBlock:   "CSS_DECLARATION_BLOCK",
	Declaration:        "CSS_DECLARATION",
	DeclarationValue:   "CSS_DECLARATION_VALUE",

	Bogus:            "CSS_BOGUS",
	BogusAtRule:      "CSS_BOGUS_AT_RULE",
	BogusRule:        "CSS_BOGUS_RULE",
	BogusDeclaration: "CSS_BOGUS_DECLARATION",
}

// KindName renders a kind for dumps and tests.
func KindName(k syntax.Kind) string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsBogus reports whether k wraps an unparseable span.
func IsBogus(k syntax.Kind) bool {
	switch k {
	case Bogus, BogusAtRule, BogusRule, BogusDeclaration:
		return true
	default:
		return false
	}
}

// Lang describes the grammar to the language-independent layers.
var Lang = syntax.Language{
	Name:     "css",
	KindName: KindName,
	RootKind: Root,
	EOFKind:  EOF,
	IsBogus:  IsBogus,
}
