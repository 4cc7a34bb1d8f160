// Package diag implements the pattern-source diagnostic model: a located
// error tied to a specific source line and byte range, rendered with a
// caret/tilde highlight under the offending text.
package diag

import (
	"fmt"
	"io"
	"strings"
)

// Severity classifies how a diagnostic should affect processing.
type Severity int

const (
	// Lexical marks a tokenizer-level error: an unrecognized character or
	// an unterminated regexp/comment.
	Lexical Severity = iota
	// Syntactic marks a parser-level error: an unexpected token.
	Syntactic
	// Semantic marks an error found after parsing: undefined references,
	// redefinitions, inconsistent arguments.
	Semantic
	// Capacity marks a configured limit being exceeded (attribute count,
	// clause length, recursion budget).
	Capacity
	// Internal marks a condition the implementation could not have reached
	// through any valid source, surfaced rather than panicking.
	Internal
)

func (s Severity) String() string {
	switch s {
	case Lexical:
		return "lexical error"
	case Syntactic:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case Capacity:
		return "capacity error"
	case Internal:
		return "internal error"
	default:
		return "error"
	}
}

// Location identifies a byte range within one line of one source file.
type Location struct {
	File   string
	Line   int
	Text   string // the full source line, for rendering
	Offset int    // byte offset of the error within Text
	Length int    // byte length of the highlighted span; values below 1 highlight a single byte
}

// Error is one located diagnostic.
type Error struct {
	Severity Severity
	Location Location
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%s: %s", e.Location.File, e.Location.Line, e.Severity, e.Message)
}

// Print renders e in the form:
//
//	<file>:<line>:error: <message>
//	<source line>
//	<spaces><carets>
func (e *Error) Print(w io.Writer) {
	fmt.Fprintf(w, "%s:%d:error: %s\n", e.Location.File, e.Location.Line, e.Message)
	fmt.Fprintln(w, e.Location.Text)
	fmt.Fprintln(w, highlightLine(e.Location))
}

func highlightLine(loc Location) string {
	length := loc.Length
	if length < 1 {
		length = 1
	}
	end := loc.Offset + length
	if end > len(loc.Text) {
		end = len(loc.Text)
	}
	if loc.Offset > len(loc.Text) {
		return strings.Repeat(" ", len(loc.Text))
	}
	var sb strings.Builder
	for i := 0; i < loc.Offset; i++ {
		if loc.Text[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('^')
	for i := loc.Offset + 1; i < end; i++ {
		sb.WriteByte('~')
	}
	return sb.String()
}

// Processor accumulates diagnostics across one processing run (tokenizing,
// parsing, and semantic checking of one or more pattern files).
type Processor struct {
	errors []*Error
}

// NewProcessor returns an empty Processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Add records one diagnostic.
func (p *Processor) Add(err *Error) {
	p.errors = append(p.errors, err)
}

// Errors returns every diagnostic recorded so far, in recording order.
func (p *Processor) Errors() []*Error {
	return p.errors
}

// HasErrors reports whether any diagnostic has been recorded.
func (p *Processor) HasErrors() bool {
	return len(p.errors) > 0
}

// PrintAll renders every diagnostic to w, in recording order.
func (p *Processor) PrintAll(w io.Writer) {
	for _, e := range p.errors {
		e.Print(w)
	}
}
