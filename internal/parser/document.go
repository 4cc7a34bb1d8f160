package parser

import (
	"strings"

	"github.com/al-pacino/lspl/internal/diag"
	"github.com/al-pacino/lspl/internal/lexer"
	"github.com/al-pacino/lspl/internal/pattern"
)

// ParseSource reads every pattern definition out of one source document:
// blank and comment-only lines are skipped, a definition begins at any
// line that starts at column zero, and every following line indented with
// a leading space or tab is folded into that same definition until a
// non-indented line, a blank continuation line, or end of input.
func ParseSource(filename, src string, diags *diag.Processor) []rawDefinition {
	lines := strings.Split(src, "\n")
	lineText := func(n int) string {
		if n < 1 || n > len(lines) {
			return ""
		}
		return trimCR(lines[n-1])
	}

	lx := lexer.New(diags, filename)
	var defs []rawDefinition

	i := 0
	for i < len(lines) {
		text := trimCR(lines[i])
		lineNumber := i + 1
		i++

		if strings.TrimSpace(text) == "" {
			continue
		}
		if startsWithSpace(text) {
			// An indented line with no preceding definition header to
			// continue.
			diags.Add(&diag.Error{
				Severity: diag.Syntactic,
				Location: diag.Location{File: filename, Line: lineNumber, Text: text, Offset: 0, Length: leadingSpace(text)},
				Message:  "a pattern definition is required to be written from the first character of the line",
			})
			continue
		}

		tokens := lx.TokenizeLine(lineNumber, text)
		lastLine := lineNumber

		for i < len(lines) {
			contText := trimCR(lines[i])
			if !startsWithSpace(contText) {
				break
			}
			contLineNumber := i + 1
			contTokens := lx.TokenizeLine(contLineNumber, contText)
			if len(contTokens) == 0 {
				i++
				break
			}
			tokens = append(tokens, contTokens...)
			lastLine = contLineNumber
			i++
		}

		if len(tokens) == 0 {
			continue
		}

		def, ok := ParseDefinition(filename, tokens, lineText, lastLine, diags)
		if !ok {
			continue
		}
		def.File = filename
		def.Line = lineNumber
		def.Text = text
		defs = append(defs, def)
	}

	return defs
}

func startsWithSpace(s string) bool {
	return len(s) > 0 && (s[0] == ' ' || s[0] == '\t')
}

func leadingSpace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i + 1
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

// Parse reads filename's full source and resolves every definition it
// contains into a registered pattern.Patterns set, reporting every
// lexical, syntactic and semantic error it encounters along the way.
func Parse(filename, src string, signs Signs) (*pattern.Patterns, *diag.Processor) {
	diags := diag.NewProcessor()
	defs := ParseSource(filename, src, diags)
	registry := Resolve(defs, signs, diags)
	return registry, diags
}
