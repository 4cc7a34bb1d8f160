// Package parser turns tokenized pattern source lines into pattern.Pattern
// definitions: a recursive-descent reader builds an unresolved tree of
// names and conditions, then a resolver binds every name to either a word
// class element or a reference to another pattern, producing the
// internal/pattern IR the compiler consumes.
package parser

import (
	"github.com/al-pacino/lspl/internal/diag"
	"github.com/al-pacino/lspl/internal/lexer"
)

// stream is a cursor over one definition's token list, which may span
// several physical source lines (continuation lines indented under the
// definition's first line). Diagnostics are anchored to whichever
// physical line the offending token actually came from.
type stream struct {
	file     string
	tokens   []lexer.Token
	pos      int
	lineText func(line int) string
	lastLine int
	diags    *diag.Processor
}

func newStream(file string, tokens []lexer.Token, lineText func(int) string, lastLine int, diags *diag.Processor) *stream {
	return &stream{file: file, tokens: tokens, lineText: lineText, lastLine: lastLine, diags: diags}
}

// at reports whether a token remains at the cursor.
func (s *stream) at() bool {
	return s.pos < len(s.tokens)
}

// peek returns the current token and true, or a zero token and false at
// end of input.
func (s *stream) peek() (lexer.Token, bool) {
	if !s.at() {
		return lexer.Token{}, false
	}
	return s.tokens[s.pos], true
}

// is reports whether the current token has type tt.
func (s *stream) is(tt lexer.TokenType) bool {
	tok, ok := s.peek()
	return ok && tok.Type == tt
}

// advance consumes and returns the current token.
func (s *stream) advance() lexer.Token {
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

// expect consumes the current token if it has type tt, else reports err
// and returns false.
func (s *stream) expect(tt lexer.TokenType, message string) (lexer.Token, bool) {
	tok, ok := s.peek()
	if !ok || tok.Type != tt {
		s.errorHere(message)
		return lexer.Token{}, false
	}
	s.pos++
	return tok, true
}

// errorHere reports a syntax error at the current token, or at the end of
// the definition's last line if no token remains.
func (s *stream) errorHere(message string) {
	if tok, ok := s.peek(); ok {
		s.reportAt(tok.Line, tok.Offset, tok.Length, diag.Syntactic, message)
		return
	}
	text := s.lineText(s.lastLine)
	s.reportAt(s.lastLine, len(text), 0, diag.Syntactic, message)
}

func (s *stream) semanticError(tok lexer.Token, message string) {
	s.reportAt(tok.Line, tok.Offset, tok.Length, diag.Semantic, message)
}

func (s *stream) reportAt(line, offset, length int, severity diag.Severity, message string) {
	s.diags.Add(&diag.Error{
		Severity: severity,
		Location: diag.Location{File: s.file, Line: line, Text: s.lineText(line), Offset: offset, Length: length},
		Message:  message,
	})
}
