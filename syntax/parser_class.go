package syntax

import "github.com/coregx/yarrgo/charclass"

// parseCharacterClass parses a `[...]` bracket expression. Under
// UnicodeSetsMode it also accepts the `&&`/`--` set operators and
// `\q{...}` string disjunctions.
func (p *parser) parseCharacterClass() (*charclass.CharacterClass, error) {
	p.advance() // '['
	negate := false
	if p.peek() == '^' {
		p.advance()
		negate = true
	}

	cc, err := p.parseClassOperand()
	if err != nil {
		return nil, err
	}

	for p.mode == UnicodeSetsMode {
		switch {
		case p.peek() == '&' && p.peekAt(1) == '&':
			p.advance()
			p.advance()
			rhs, err := p.parseClassOperand()
			if err != nil {
				return nil, err
			}
			cc = charclass.AddClassIntersection(cc, rhs)
		case p.peek() == '-' && p.peekAt(1) == '-':
			p.advance()
			p.advance()
			rhs, err := p.parseClassOperand()
			if err != nil {
				return nil, err
			}
			cc = charclass.AddClassSubtraction(cc, rhs)
		default:
			goto done
		}
	}
done:

	if p.eof() || p.peek() != ']' {
		return nil, p.err(CharacterClassUnmatched)
	}
	p.advance()

	if negate {
		if cc.MayContainStrings {
			return nil, p.err(NegatedClassSetMayContainStrings)
		}
		nb := charclass.NewBuilder().Merge(cc).Negate()
		cc = nb.Finalize()
	}
	return cc, nil
}

// parseClassOperand parses one operand of a class (a run of members up to
// the next set operator, `]`, or a nested `[...]` class under /v).
func (p *parser) parseClassOperand() (*charclass.CharacterClass, error) {
	if p.mode == UnicodeSetsMode && p.peek() == '[' {
		return p.parseCharacterClass()
	}

	b := charclass.NewBuilder()
	ignoreCase := p.flags.Has(IgnoreCase)
	unicodeMode := p.unicodeMode()

	for !p.eof() && p.peek() != ']' {
		if p.mode == UnicodeSetsMode && isClassSetOperatorStart(p) {
			break
		}
		lo, loClass, err := p.parseClassAtom()
		if err != nil {
			return nil, err
		}
		if loClass != nil {
			b.Merge(loClass)
			continue
		}

		if p.peek() == '-' && p.peekAt(1) != ']' && !p.eof() {
			save := p.pos
			p.advance()
			if p.peek() == -1 {
				return nil, p.err(CharacterClassUnmatched)
			}
			hi, hiClass, err := p.parseClassAtom()
			if err != nil {
				return nil, err
			}
			if hiClass != nil {
				// "a-\d" is invalid: a class escape cannot be a range end.
				if p.unicodeMode() {
					return nil, p.err(CharacterClassRangeInvalid)
				}
				// Legacy: treat '-' and the class escape as literal members.
				p.pos = save
				b.AddCaseFoldedCodePoint(lo, ignoreCase, unicodeMode)
				b.AddCaseFoldedCodePoint('-', ignoreCase, unicodeMode)
				continue
			}
			if hi < lo {
				return nil, p.err(CharacterClassRangeOutOfOrder)
			}
			b.AddCaseFoldedRange(lo, hi, ignoreCase, unicodeMode)
			continue
		}

		b.AddCaseFoldedCodePoint(lo, ignoreCase, unicodeMode)
	}

	return b.Finalize(), nil
}

func isClassSetOperatorStart(p *parser) bool {
	return (p.peek() == '&' && p.peekAt(1) == '&') || (p.peek() == '-' && p.peekAt(1) == '-')
}

// parseClassAtom parses a single class member: either a literal code
// point (lo, nil) or an escape that expands to a whole class (nil, class)
// such as \d, \p{...}, or \q{...}.
func (p *parser) parseClassAtom() (rune, *charclass.CharacterClass, error) {
	c := p.peek()
	if c == '\\' {
		return p.parseClassEscape()
	}
	if c == -1 {
		return 0, nil, p.err(CharacterClassUnmatched)
	}
	p.advance()
	return c, nil, nil
}

func (p *parser) parseClassEscape() (rune, *charclass.CharacterClass, error) {
	p.advance() // '\\'
	if p.eof() {
		return 0, nil, p.err(EscapeUnterminated)
	}
	c := p.peek()
	switch c {
	case 'd', 'D', 'w', 'W', 's', 'S':
		p.advance()
		return 0, classEscape(c, p.flags), nil
	case 'b':
		p.advance()
		return '\b', nil, nil
	case 'p', 'P':
		if p.unicodeMode() {
			p.advance()
			if p.peek() != '{' {
				return 0, nil, p.err(InvalidUnicodePropertyExpression)
			}
			p.advance()
			start := p.pos
			for !p.eof() && p.peek() != '}' {
				p.advance()
			}
			if p.eof() {
				return 0, nil, p.err(InvalidUnicodePropertyExpression)
			}
			body := string(p.src[start:p.pos])
			p.advance()
			name, value := splitPropertyExpr(body)
			cc, err := charclass.ResolveUnicodeProperty(name, value)
			if err != nil {
				return 0, nil, p.err(InvalidUnicodePropertyExpression)
			}
			if c == 'P' {
				if cc.MayContainStrings {
					return 0, nil, p.err(NegatedClassSetMayContainStrings)
				}
				cc = charclass.NewBuilder().Merge(cc).Negate().Finalize()
			}
			return 0, cc, nil
		}
	case 'q':
		if p.mode == UnicodeSetsMode {
			cc, err := p.parseStringDisjunction()
			return 0, cc, err
		}
	}

	term, _, err := p.parseCharacterEscape()
	if err != nil {
		return 0, nil, err
	}
	return term.Character, nil, nil
}

// parseStringDisjunction parses `\q{abc|de|...}` (UnicodeSets only).
func (p *parser) parseStringDisjunction() (*charclass.CharacterClass, error) {
	p.advance() // 'q'
	if p.peek() != '{' {
		return nil, p.err(ClassStringDisjunctionUnmatched)
	}
	p.advance()

	b := charclass.NewBuilder()
	var current []rune
	for {
		if p.eof() {
			return nil, p.err(ClassStringDisjunctionUnmatched)
		}
		switch p.peek() {
		case '}':
			p.advance()
			b.AddString(current)
			return b.Finalize(), nil
		case '|':
			p.advance()
			b.AddString(current)
			current = nil
		case '\\':
			term, _, err := p.parseCharacterEscape2InString()
			if err != nil {
				return nil, err
			}
			current = append(current, term)
		default:
			current = append(current, p.advance())
		}
	}
}

// parseCharacterEscape2InString parses a `\`-escape inside a \q{...}
// alternative by delegating to the ordinary escape parser (it already
// skips the leading backslash check by requiring the caller to have seen
// '\\').
func (p *parser) parseCharacterEscape2InString() (rune, bool, error) {
	p.advance() // '\\'
	term, ok, err := p.parseCharacterEscape()
	if err != nil {
		return 0, false, err
	}
	return term.Character, ok, nil
}
