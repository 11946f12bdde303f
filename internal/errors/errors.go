// Package errors defines the compiler's diagnostic type and the three
// user-visible wire formats spec.md describes: syntax, semantic, and
// symbol-lookup errors.
package errors

import (
	"fmt"
	"strings"
)

// Kind classifies a CompileError by which phase raised it.
type Kind string

const (
	KindLexical  Kind = "Lexical"
	KindSyntax   Kind = "Syntax"
	KindSemantic Kind = "Semantic"
	KindInternal Kind = "Internal"
)

// Pos is a 1-based source location.
type Pos struct {
	Line   int
	Column int
}

// CompileError carries everything needed to render one of the wire
// strings in spec.md §6.3, plus optional source context for drivers
// that want to show a caret under the offending column.
type CompileError struct {
	Kind    Kind
	Message string
	Pos     Pos
	File    string
	Source  string
}

func (e *CompileError) Error() string {
	switch e.Kind {
	case KindSyntax:
		return fmt.Sprintf("Syntax error at line %d character %d", e.Pos.Line, e.Pos.Column)
	case KindSemantic:
		return fmt.Sprintf("Semantic error (line: %d) %s", e.Pos.Line, e.Message)
	case KindInternal:
		return "internal error: " + e.Message
	default:
		return e.Message
	}
}

// NewSyntax builds a syntax error positioned at line/column.
func NewSyntax(line, column int) *CompileError {
	return &CompileError{Kind: KindSyntax, Pos: Pos{Line: line, Column: column}}
}

// NewSemantic builds a semantic error carrying the rule's cause string.
func NewSemantic(line int, message string) *CompileError {
	return &CompileError{Kind: KindSemantic, Pos: Pos{Line: line}, Message: message}
}

// NewNotFound builds the symbol-table lookup error spec.md §6.3 names
// verbatim: `The identifier "<name>" was not found`.
func NewNotFound(name string, line int) *CompileError {
	return &CompileError{
		Kind:    KindSemantic,
		Pos:     Pos{Line: line},
		Message: fmt.Sprintf("The identifier \"%s\" was not found", name),
	}
}

// WithSource attaches the offending source line for driver-side
// caret rendering. It never changes Error()'s output.
func (e *CompileError) WithSource(line string) *CompileError {
	e.Source = line
	return e
}

// WithFile attaches a file name for driver-side rendering.
func (e *CompileError) WithFile(file string) *CompileError {
	e.File = file
	return e
}

// Render produces an optional, decorative multi-line frame around
// Error()'s wire string: a header, the source line, and a caret under
// the reported column. Never consulted by the compiler itself — only
// by cmd/parlc's diagnostic printer.
func (e *CompileError) Render() string {
	var sb strings.Builder
	header := e.Error()
	if e.File != "" {
		header = fmt.Sprintf("%s: %s", e.File, header)
	}
	sb.WriteString(header)
	if e.Source != "" && e.Pos.Column > 0 {
		sb.WriteString("\n  ")
		sb.WriteString(e.Source)
		sb.WriteString("\n  ")
		sb.WriteString(strings.Repeat(" ", e.Pos.Column-1))
		sb.WriteString("^")
	}
	return sb.String()
}

// Internal panics with a KindInternal error. It marks a programmer
// invariant violation (an unreachable switch arm, an exhausted type-tag
// stack pop) rather than a user-facing mistake. Like any other
// *CompileError panic it is recovered at the raising phase's entry
// point (parser.Parse, sema.Analyze, codegen.Generate) and returned
// there as an error.
func Internal(format string, args ...interface{}) {
	panic(&CompileError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)})
}
