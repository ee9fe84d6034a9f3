package syntax

import "unicode"

// parseGroup parses everything starting at '(': plain capture,
// non-capture, named capture, lookaround, and flag-modifier groups (the
// full ECMAScript parenthesis taxonomy).
func (p *parser) parseGroup() (PatternTerm, bool, error) {
	p.advance() // '('

	if p.peek() != '?' {
		return p.parseCapturingGroup()
	}

	// Peek past '?' to classify.
	switch p.peekAt(1) {
	case ':':
		p.advance()
		p.advance()
		return p.parseNonCapturingBody(ParenNonCapturing, "", -1)
	case '=':
		p.advance()
		p.advance()
		return p.parseLookaround(false, Forward)
	case '!':
		p.advance()
		p.advance()
		return p.parseLookaround(true, Forward)
	case '<':
		switch p.peekAt(2) {
		case '=':
			p.advance()
			p.advance()
			p.advance()
			return p.parseLookaround(false, Backward)
		case '!':
			p.advance()
			p.advance()
			p.advance()
			return p.parseLookaround(true, Backward)
		default:
			p.advance() // '?'
			p.advance() // '<'
			return p.parseNamedCapturingGroup()
		}
	default:
		if isFlagLetterOrColon(p.peekAt(1)) {
			return p.parseFlagModifierGroup()
		}
		return PatternTerm{}, false, p.err(ParenthesesTypeInvalid)
	}
}

func isFlagLetterOrColon(c rune) bool {
	switch c {
	case 'i', 'm', 's', '-', ':':
		return true
	}
	return false
}

func (p *parser) parseCapturingGroup() (PatternTerm, bool, error) {
	id := p.nextSubpatternID + 1
	p.nextSubpatternID = id
	body, err := p.parseParenBody(id)
	if err != nil {
		return PatternTerm{}, false, err
	}
	return PatternTerm{
		Kind:         TermParentheses,
		ParenType:    ParenCapturing,
		CaptureIndex: id,
		Disjunction:  body,
	}, true, nil
}

func (p *parser) parseNamedCapturingGroup() (PatternTerm, bool, error) {
	start := p.pos
	for !p.eof() && p.peek() != '>' {
		p.advance()
	}
	if p.eof() {
		return PatternTerm{}, false, p.err(InvalidGroupName)
	}
	name := string(p.src[start:p.pos])
	if !isValidIdentifierName(name) {
		return PatternTerm{}, false, p.err(InvalidGroupName)
	}
	p.advance() // '>'

	id := p.nextSubpatternID + 1
	p.nextSubpatternID = id

	if existing, dup := p.groupNames[name]; dup {
		if p.mode == Legacy {
			return PatternTerm{}, false, p.err(DuplicateGroupName)
		}
		// Unicode/UnicodeSets: reuse permitted only across alternatives of
		// the same disjunction; validated fully once parsing finishes
		// (resolveDuplicateGroups), since at this point we don't yet know
		// whether `existing`'s entries share this group's disjunction.
		p.groupNames[name] = append(existing, id)
	} else {
		p.groupNames[name] = []int{id}
	}

	body, err := p.parseParenBody(id)
	if err != nil {
		return PatternTerm{}, false, err
	}
	return PatternTerm{
		Kind:         TermParentheses,
		ParenType:    ParenCapturing,
		CaptureIndex: id,
		GroupName:    name,
		Disjunction:  body,
	}, true, nil
}

func isValidIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' && r != '$' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return false
		}
	}
	return true
}

func (p *parser) parseFlagModifierGroup() (PatternTerm, bool, error) {
	p.advance() // '?'
	var add, remove Flag
	removing := false
	for {
		c := p.peek()
		switch c {
		case 'i':
			p.advance()
			if removing {
				remove |= IgnoreCase
			} else {
				add |= IgnoreCase
			}
		case 'm':
			p.advance()
			if removing {
				remove |= Multiline
			} else {
				add |= Multiline
			}
		case 's':
			p.advance()
			if removing {
				remove |= DotAll
			} else {
				add |= DotAll
			}
		case '-':
			if removing {
				return PatternTerm{}, false, p.err(ParenthesesTypeInvalid)
			}
			p.advance()
			removing = true
		case ':':
			p.advance()
			savedFlags := p.flags
			p.flags = (p.flags | add) &^ remove
			term, ok, err := p.parseNonCapturingBody(ParenNonCapturing, "", -1)
			p.flags = savedFlags
			return term, ok, err
		default:
			return PatternTerm{}, false, p.err(ParenthesesTypeInvalid)
		}
	}
}

func (p *parser) parseNonCapturingBody(pt ParenthesesType, name string, captureIndex int) (PatternTerm, bool, error) {
	body, err := p.parseParenBody(0)
	if err != nil {
		return PatternTerm{}, false, err
	}
	return PatternTerm{
		Kind:         TermParentheses,
		ParenType:    pt,
		CaptureIndex: captureIndex,
		GroupName:    name,
		Disjunction:  body,
	}, true, nil
}

func (p *parser) parseLookaround(invert bool, dir MatchDirection) (PatternTerm, bool, error) {
	body, err := p.parseParenBody(0)
	if err != nil {
		return PatternTerm{}, false, err
	}
	quantifiable := p.mode == Legacy
	return PatternTerm{
		Kind:           TermParentheticalAssertion,
		Invert:         invert,
		MatchDirection: dir,
		Disjunction:    body,
	}, quantifiable, nil
}

// parseParenBody parses the disjunction body and consumes the closing ')'.
func (p *parser) parseParenBody(firstSubpatternID int) (*PatternDisjunction, error) {
	body, err := p.parseDisjunction(firstSubpatternID)
	if err != nil {
		return nil, err
	}
	if p.peek() != ')' {
		return nil, p.err(MissingParentheses)
	}
	p.advance()
	return body, nil
}
