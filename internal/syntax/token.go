package syntax

import (
	"sift/internal/source"
)

// Token is a red cursor over a GreenToken.
type Token struct {
	tree   *Tree
	greenT *GreenToken
	parent *Node
	index  int
	offset uint32
}

func (t *Token) green() GreenChild { return t.greenT }

// Green returns the underlying green token.
func (t *Token) Green() *GreenToken { return t.greenT }

func (t *Token) Kind() Kind { return t.greenT.GreenKind() }

func (t *Token) ParentNode() *Node { return t.parent }

func (t *Token) ChildIndex() int { return t.index }

// Text returns the significant text, trivia excluded.
func (t *Token) Text() string { return t.greenT.Text() }

// Leading returns the trivia preceding the token.
func (t *Token) Leading() []Trivia { return t.greenT.Leading() }

func (t *Token) FullSpan() source.Span {
	return source.Span{File: t.tree.file, Start: t.offset, End: t.offset + t.greenT.Width()}
}

// Span covers the significant text only.
func (t *Token) Span() source.Span {
	start := t.offset + t.greenT.LeadingWidth()
	return source.Span{File: t.tree.file, Start: start, End: start + uint32(len(t.greenT.Text()))}
}

func (t *Token) Path() []int {
	if t.parent == nil {
		return []int{t.index}
	}
	return append(t.parent.Path(), t.index)
}
