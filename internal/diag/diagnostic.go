package diag

import (
	"sift/internal/source"
)

// Note is a secondary annotated range attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the pure-data finding emitted by lexer, parser, and lint
// phases. Rendering lives in internal/diagfmt; fixes travel separately as
// analyze actions.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Footer   string // optional free-form closing note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFooter(msg string) Diagnostic {
	d.Footer = msg
	return d
}
