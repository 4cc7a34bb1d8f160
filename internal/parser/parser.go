package parser

import (
	"github.com/al-pacino/lspl/internal/diag"
	"github.com/al-pacino/lspl/internal/lexer"
)

// ParseDefinition reads one complete pattern definition from a possibly
// multi-line token list (continuation lines already flattened by the
// caller), reporting any error through diags. lineText resolves a
// physical line number back to its source text for diagnostics, and
// lastLine is the definition's final physical line. It returns false if
// the tokens could not be parsed as a definition; callers should treat
// the whole definition as abandoned in that case.
func ParseDefinition(file string, tokens []lexer.Token, lineText func(int) string, lastLine int, diags *diag.Processor) (rawDefinition, bool) {
	s := newStream(file, tokens, lineText, lastLine, diags)
	def, ok := parseDefinition(s)
	if !ok {
		return rawDefinition{}, false
	}
	if s.at() {
		s.errorHere("end of pattern definition expected")
		return rawDefinition{}, false
	}
	return def, true
}

func parseDefinition(s *stream) (rawDefinition, bool) {
	nameTok, ok := s.expect(lexer.Identifier, "pattern name expected")
	if !ok {
		return rawDefinition{}, false
	}
	def := rawDefinition{NameTok: nameTok, Name: nameTok.Text}

	if s.is(lexer.OpeningParenthesis) {
		s.advance()
		for {
			name, ok := parseExtendedName(s)
			if !ok {
				return rawDefinition{}, false
			}
			def.Arguments = append(def.Arguments, name)
			if !s.is(lexer.Comma) {
				break
			}
			s.advance()
		}
		if _, ok := s.expect(lexer.ClosingParenthesis, "closing parenthesis `)` expected"); !ok {
			return rawDefinition{}, false
		}
	}

	if _, ok := s.expect(lexer.EqualSign, "equal sign `=` expected"); !ok {
		return rawDefinition{}, false
	}

	alternatives, ok := parseAlternatives(s)
	if !ok {
		return rawDefinition{}, false
	}
	def.Alternatives = alternatives
	return def, true
}

// parseExtendedName reads Identifier [ . Identifier ], splitting a
// trailing run of digits off the first identifier into an index.
func parseExtendedName(s *stream) (extendedName, bool) {
	tok, ok := s.expect(lexer.Identifier, "word class or pattern name expected")
	if !ok {
		return extendedName{}, false
	}
	name, index := splitTrailingIndex(tok.Text)
	en := extendedName{Name: name, Index: index, Tok: tok}
	if index < 0 {
		s.semanticError(tok, "name index must be positive (1, 2, 3, etc.)")
		en.Index = 0
	}

	if s.is(lexer.Dot) {
		s.advance()
		subTok, ok := s.expect(lexer.Identifier, "attribute name expected")
		if !ok {
			return extendedName{}, false
		}
		en.SubName = subTok.Text
	}
	return en, true
}

// splitTrailingIndex separates a trailing run of ASCII digits from name,
// returning (name, 0) if there is no such suffix and (name, -1) if the
// suffix is present but is the literal "0" (an invalid index).
func splitTrailingIndex(full string) (string, int) {
	i := len(full)
	for i > 0 && full[i-1] >= '0' && full[i-1] <= '9' {
		i--
	}
	if i == len(full) {
		return full, 0
	}
	digits := full[i:]
	value := 0
	for _, d := range digits {
		value = value*10 + int(d-'0')
	}
	if value == 0 {
		return full[:i], -1
	}
	return full[:i], value
}

func parseAlternatives(s *stream) (rawNode, bool) {
	var children []rawNode
	for {
		transposition, ok := parseTransposition(s)
		if !ok {
			return nil, false
		}

		if s.is(lexer.DoubleLessThan) {
			conditions, ok := parseAlternativeConditions(s)
			if !ok {
				return nil, false
			}
			children = append(children, rawAlternative{Child: transposition, Conditions: conditions})
		} else {
			children = append(children, transposition)
		}

		if !s.is(lexer.VerticalBar) {
			break
		}
		s.advance()
	}
	if len(children) == 1 {
		return children[0], true
	}
	return rawAlternatives{Children: children}, true
}

func parseTransposition(s *stream) (rawNode, bool) {
	var children []rawNode
	for {
		elements, ok := parseElements(s)
		if !ok {
			return nil, false
		}
		children = append(children, elements)
		if !s.is(lexer.Tilde) {
			break
		}
		s.advance()
	}
	if len(children) == 1 {
		return children[0], true
	}
	return rawTransposition{Children: children}, true
}

func parseElements(s *stream) (rawNode, bool) {
	var children []rawNode
	for {
		element, ok, present := parseElement(s)
		if !ok {
			return nil, false
		}
		if !present {
			break
		}
		children = append(children, element)
	}
	if len(children) == 0 {
		s.errorHere("at least one pattern element expected")
		return nil, false
	}
	if len(children) == 1 {
		return children[0], true
	}
	return rawElements{Children: children}, true
}

// parseElement reads one element. present is false (with ok true) when
// the current token cannot start an element, which is how callers detect
// the end of an elements run.
func parseElement(s *stream) (rawNode, bool, bool) {
	tok, has := s.peek()
	if !has {
		return nil, true, false
	}

	switch tok.Type {
	case lexer.Regexp:
		s.advance()
		return rawRegexp{Expr: tok.Text}, true, true

	case lexer.Identifier:
		s.advance()
		name, validIndex := splitTrailingIndexToken(tok)
		if !validIndex {
			s.semanticError(tok, "name index must be positive (1, 2, 3, etc.)")
		}
		word := rawWord{Name: name}
		conditions, ok := parseWordConditions(s)
		if !ok {
			return nil, false, false
		}
		word.Conditions = conditions
		return word, true, true

	case lexer.OpeningBrace:
		s.advance()
		inner, ok := parseAlternatives(s)
		if !ok {
			return nil, false, false
		}
		if _, ok := s.expect(lexer.ClosingBrace, "closing brace `}` expected"); !ok {
			return nil, false, false
		}
		rep := rawRepeating{Child: inner}
		if s.is(lexer.LessThan) {
			s.advance()
			minTok, ok := s.expect(lexer.Number, "number (0, 1, 2, etc.) expected")
			if !ok {
				return nil, false, false
			}
			rep.HasMin = true
			rep.Min = int(minTok.Number)
			if s.is(lexer.Comma) {
				s.advance()
				maxTok, ok := s.expect(lexer.Number, "number (0, 1, 2, etc.) expected")
				if !ok {
					return nil, false, false
				}
				rep.HasMax = true
				rep.Max = int(maxTok.Number)
			}
			if _, ok := s.expect(lexer.GreaterThan, "greater than sign `>` expected"); !ok {
				return nil, false, false
			}
			if rep.HasMax && (rep.Min > rep.Max || rep.Max == 0) {
				s.semanticError(minTok, "incorrect min max values for repeating")
			}
		}
		return rep, true, true

	case lexer.OpeningBracket:
		s.advance()
		inner, ok := parseAlternatives(s)
		if !ok {
			return nil, false, false
		}
		if _, ok := s.expect(lexer.ClosingBracket, "closing bracket `]` expected"); !ok {
			return nil, false, false
		}
		return rawRepeating{Child: inner, Optional: true}, true, true

	case lexer.OpeningParenthesis:
		s.advance()
		inner, ok := parseAlternatives(s)
		if !ok {
			return nil, false, false
		}
		if _, ok := s.expect(lexer.ClosingParenthesis, "closing parenthesis `)` expected"); !ok {
			return nil, false, false
		}
		return inner, true, true

	default:
		return nil, true, false
	}
}

func splitTrailingIndexToken(tok lexer.Token) (extendedName, bool) {
	name, index := splitTrailingIndex(tok.Text)
	if index < 0 {
		return extendedName{Name: name, Tok: tok}, false
	}
	return extendedName{Name: name, Index: index, Tok: tok}, true
}

func parseWordConditions(s *stream) ([]rawWordCondition, bool) {
	if !s.is(lexer.LessThan) {
		return nil, true
	}
	s.advance()
	var conditions []rawWordCondition
	for {
		cond, ok := parseWordCondition(s)
		if !ok {
			return nil, false
		}
		conditions = append(conditions, cond)
		if !s.is(lexer.Comma) {
			break
		}
		s.advance()
	}
	if _, ok := s.expect(lexer.GreaterThan, "greater than sign `>` expected"); !ok {
		return nil, false
	}
	return conditions, true
}

func parseWordCondition(s *stream) (rawWordCondition, bool) {
	var cond rawWordCondition

	if nameTok, has := s.peek(); has && nameTok.Type == lexer.Identifier {
		if next, ok := s.peekAt(1); ok && (next.Type == lexer.EqualSign || next.Type == lexer.ExclamationEqual) {
			s.advance()
			op := s.advance()
			cond.HasAttribute = true
			cond.Attribute = nameTok.Text
			cond.AttributeTok = nameTok
			cond.Exclude = op.Type == lexer.ExclamationEqual
		}
	}

	for {
		valueTok, ok := s.expect(lexer.Identifier, "word class attribute value expected")
		if !ok {
			return rawWordCondition{}, false
		}
		cond.Values = append(cond.Values, valueTok)
		if !s.is(lexer.VerticalBar) {
			break
		}
		s.advance()
	}
	return cond, true
}

func parseAlternativeConditions(s *stream) ([]rawAltCondition, bool) {
	if !s.is(lexer.DoubleLessThan) {
		return nil, true
	}
	s.advance()
	var conditions []rawAltCondition
	for {
		cond, ok := parseAlternativeCondition(s)
		if !ok {
			return nil, false
		}
		conditions = append(conditions, cond)
		if !s.is(lexer.Comma) {
			break
		}
		s.advance()
	}
	if _, ok := s.expect(lexer.DoubleGreaterThan, "double greater than sign `>>` expected"); !ok {
		return nil, false
	}
	return conditions, true
}

// parseAlternativeCondition disambiguates a dictionary condition
// (Identifier immediately followed by `(`) from a matching condition by
// one token of lookahead.
func parseAlternativeCondition(s *stream) (rawAltCondition, bool) {
	if tok, has := s.peek(); has && tok.Type == lexer.Identifier {
		if next, ok := s.peekAt(1); ok && next.Type == lexer.OpeningParenthesis {
			return parseDictionaryCondition(s)
		}
	}
	return parseMatchingCondition(s)
}

func parseMatchingCondition(s *stream) (rawAltCondition, bool) {
	var cond rawAltCondition
	var sawEqual, sawDoubleEqual bool

	for {
		name, ok := parseExtendedName(s)
		if !ok {
			return rawAltCondition{}, false
		}
		cond.Names = append(cond.Names, name)

		if s.is(lexer.EqualSign) {
			sawEqual = true
		} else if s.is(lexer.DoubleEqualSign) {
			sawDoubleEqual = true
		} else {
			break
		}
		s.advance()
	}

	if !sawEqual && !sawDoubleEqual {
		s.errorHere("equal sign `=` or double equal `==` sign expected")
		return rawAltCondition{}, false
	}
	cond.Strong = sawDoubleEqual
	cond.Inconsistent = sawEqual && sawDoubleEqual
	return cond, true
}

// parseDictionaryCondition reads Identifier `(` Identifier+ { `,`
// Identifier+ } `)`.
func parseDictionaryCondition(s *stream) (rawAltCondition, bool) {
	nameTok, ok := s.expect(lexer.Identifier, "dictionary name expected")
	if !ok {
		return rawAltCondition{}, false
	}
	if _, ok := s.expect(lexer.OpeningParenthesis, "opening parenthesis `(` expected"); !ok {
		return rawAltCondition{}, false
	}
	cond := rawAltCondition{IsDictionary: true, Dictionary: extendedName{Name: nameTok.Text, Tok: nameTok}}
	for {
		var group []extendedName
		for s.is(lexer.Identifier) {
			name, ok := parseExtendedName(s)
			if !ok {
				return rawAltCondition{}, false
			}
			group = append(group, name)
		}
		if len(group) == 0 {
			s.errorHere("at least one pattern element expected")
			return rawAltCondition{}, false
		}
		cond.Groups = append(cond.Groups, group)
		if !s.is(lexer.Comma) {
			break
		}
		s.advance()
	}
	if _, ok := s.expect(lexer.ClosingParenthesis, "closing parenthesis `)` expected"); !ok {
		return rawAltCondition{}, false
	}
	return cond, true
}

// peekAt returns the token offset tokens ahead of the cursor, or false
// past the end of the line.
func (s *stream) peekAt(offset int) (lexer.Token, bool) {
	pos := s.pos + offset
	if pos >= len(s.tokens) {
		return lexer.Token{}, false
	}
	return s.tokens[pos], true
}
