// Package diag defines the diagnostic model shared by all pipeline phases.
//
//   - Diagnostic is the central record: severity, compact numeric Code with a
//     stable string form, message, primary span, optional secondary Notes, and
//     an optional Footer closing note.
//   - Bag collects diagnostics per file with a hard limit and deterministic
//     sorting; Reporter decouples producers (lexer, parsers, lint rules) from
//     storage.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt. Automated corrections are not part of Diagnostic at all:
// they travel as analyze actions carrying tree mutations, applied by
// internal/fix. Keeping this package dependency-free lets every phase import
// it without layering cycles.
package diag
