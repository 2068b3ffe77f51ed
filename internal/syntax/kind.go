package syntax

// Kind is the category of a token or node. Kind values are grammar-scoped:
// each language defines its own enumeration starting at zero, and a Tree
// carries the Language that gives them names.
type Kind uint16

// Language describes one grammar to the language-independent layers.
type Language struct {
	// Name is a short lowercase tag ("js", "css").
	Name string
	// KindName renders a Kind for dumps and tests.
	KindName func(Kind) string
	// RootKind is the node kind of a finished tree's root.
	RootKind Kind
	// EOFKind is the terminal kind that carries the file's trailing trivia.
	EOFKind Kind
	// IsBogus reports whether kind is one of the grammar's error-wrapping
	// node kinds.
	IsBogus func(Kind) bool
}

// TriviaKind classifies a single trivia piece.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "whitespace"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line-comment"
	case TriviaBlockComment:
		return "block-comment"
	}
	return "unknown"
}

// Trivia is whitespace or a comment attached to the token that follows it.
type Trivia struct {
	Kind TriviaKind
	Text string
}
