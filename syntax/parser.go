package syntax

import (
	"strconv"

	"github.com/coregx/yarrgo/charclass"
)

// defaultMaxPatternLength bounds PatternTooLarge: a source longer than
// this many bytes is rejected before parsing starts.
const defaultMaxPatternLength = 1 << 20

// maxParenNesting bounds TooManyDisjunctions (the recursion-depth
// discipline: fail cleanly on exhaustion rather than overflow the Go
// stack).
const maxParenNesting = 2000

// quantifierMax is 2^31-1, the ECMAScript ceiling on {n,m} bounds.
const quantifierMax = 1<<31 - 1

// Parse parses source under flags into a validated YarrPattern, or
// returns a *ParseError. A failed parse never hands back a partially
// built YarrPattern.
func Parse(source string, flags Flag) (*YarrPattern, error) {
	if len(source) > defaultMaxPatternLength {
		return nil, &ParseError{Code: PatternTooLarge}
	}

	p := &parser{
		src:       []rune(source),
		mode:      ModeOf(flags),
		flags:     flags,
		groupNames: map[string][]int{},
	}

	disjunction, err := p.parseDisjunction(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		// A ')' with no matching '(' stopped parseDisjunction early.
		return nil, &ParseError{Code: ParenthesesUnmatched, Offset: p.pos}
	}

	pattern := &YarrPattern{
		Root:           disjunction,
		Flags:          flags,
		NumSubpatterns: p.nextSubpatternID,
		GroupNames:     p.groupNames,
	}
	if err := p.resolveDuplicateGroups(pattern); err != nil {
		return nil, err
	}
	if err := p.resolveBackReferences(pattern); err != nil {
		return nil, err
	}
	return pattern, nil
}

type parser struct {
	src   []rune
	pos   int
	mode  Mode
	flags Flag

	nextSubpatternID int // pre-incremented; first capture group is id 1
	parenDepth       int

	groupNames map[string][]int // name -> subpattern ids in encounter order

	// forward references recorded for post-parse validation: \k<name>
	// referring to a name not yet seen, and numeric \N backreferences
	// exceeding the total subpattern count discovered so far.
	namedBackRefs []namedBackRefSite
	numericBackRefs []numericBackRefSite
}

type namedBackRefSite struct {
	name string
	pos  int
}

type numericBackRefSite struct {
	n   int
	pos int
}

func (p *parser) unicodeMode() bool {
	return p.mode == UnicodeMode || p.mode == UnicodeSetsMode
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return -1
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) rune {
	if p.pos+off >= len(p.src) {
		return -1
	}
	return p.src[p.pos+off]
}

func (p *parser) advance() rune {
	c := p.src[p.pos]
	p.pos++
	return c
}

func (p *parser) err(code ErrorCode) error {
	return &ParseError{Code: code, Offset: p.pos}
}

// parseDisjunction parses `alt (| alt)*` stopping at ')' or end of input.
func (p *parser) parseDisjunction(firstSubpatternID int) (*PatternDisjunction, error) {
	p.parenDepth++
	if p.parenDepth > maxParenNesting {
		p.parenDepth--
		return nil, p.err(TooManyDisjunctions)
	}
	defer func() { p.parenDepth-- }()

	d := &PatternDisjunction{FirstSubpatternID: firstSubpatternID}
	for {
		alt, err := p.parseAlternative()
		if err != nil {
			return nil, err
		}
		d.Alternatives = append(d.Alternatives, alt)
		if p.peek() == '|' {
			p.advance()
			continue
		}
		break
	}
	d.LastSubpatternID = p.nextSubpatternID
	return d, nil
}

func (p *parser) parseAlternative() (PatternAlternative, error) {
	var alt PatternAlternative
	for !p.eof() && p.peek() != '|' && p.peek() != ')' {
		term, err := p.parseTerm()
		if err != nil {
			return alt, err
		}
		alt.Terms = append(alt.Terms, term)
	}
	return alt, nil
}

func (p *parser) parseTerm() (PatternTerm, error) {
	atom, quantifiable, err := p.parseAtom()
	if err != nil {
		return PatternTerm{}, err
	}
	if q, has, err := p.tryParseQuantifier(); err != nil {
		return PatternTerm{}, err
	} else if has {
		if !quantifiable {
			return PatternTerm{}, p.err(QuantifierWithoutAtom)
		}
		atom.Quantifier = q
	} else {
		atom.Quantifier = Quantifier{Min: 1, Max: 1, Type: FixedCount}
	}
	return atom, nil
}

// parseAtom parses a single atom (everything parseTerm can attach a
// quantifier to) and reports whether a quantifier is even legal on it
// (anchors and lookaround are not, under Unicode/UnicodeSets modes; the
// QuantifierWithoutAtom rule, relaxed for Legacy per Annex B).
func (p *parser) parseAtom() (PatternTerm, bool, error) {
	c := p.peek()
	switch c {
	case '^':
		p.advance()
		return PatternTerm{Kind: TermAnchor, Anchor: AssertionBOL}, p.mode == Legacy, nil
	case '$':
		p.advance()
		return PatternTerm{Kind: TermAnchor, Anchor: AssertionEOL}, p.mode == Legacy, nil
	case '.':
		p.advance()
		cc := dotClass(p.flags.Has(DotAll))
		return PatternTerm{Kind: TermCharacterClass, Class: cc}, true, nil
	case '(':
		return p.parseGroup()
	case '[':
		cc, err := p.parseCharacterClass()
		if err != nil {
			return PatternTerm{}, false, err
		}
		return PatternTerm{Kind: TermCharacterClass, Class: cc}, true, nil
	case '*', '+', '?':
		return PatternTerm{}, false, p.err(QuantifierWithoutAtom)
	case '{':
		if p.looksLikeQuantifierBrace() {
			return PatternTerm{}, false, p.err(QuantifierWithoutAtom)
		}
		if p.unicodeMode() {
			return PatternTerm{}, false, p.err(QuantifierIncomplete)
		}
		p.advance()
		return PatternTerm{Kind: TermCharacter, Character: '{'}, true, nil
	case ')':
		return PatternTerm{}, false, p.err(ParenthesesUnmatched)
	case ']', '}':
		if p.unicodeMode() {
			return PatternTerm{}, false, p.err(BracketUnmatched)
		}
		p.advance()
		return PatternTerm{Kind: TermCharacter, Character: c}, true, nil
	case '\\':
		return p.parseEscapeAtom()
	case -1:
		return PatternTerm{}, false, p.err(QuantifierWithoutAtom)
	default:
		p.advance()
		return PatternTerm{Kind: TermCharacter, Character: c}, true, nil
	}
}

func dotClass(dotAll bool) *charclass.CharacterClass {
	b := charclass.NewBuilder()
	if dotAll {
		b.AddRange(0, charclass.MaxCodePoint)
		return b.Finalize()
	}
	// Anything but line terminators: LF, CR, LS, PS.
	b.AddRange(0, charclass.MaxCodePoint)
	nb := charclass.NewBuilder().AddCodePoint('\n').AddCodePoint('\r').AddCodePoint(0x2028).AddCodePoint(0x2029).Finalize()
	return charclass.AddClassSubtraction(b.Finalize(), nb)
}

func (p *parser) looksLikeQuantifierBrace() bool {
	save := p.pos
	defer func() { p.pos = save }()
	p.advance() // '{'
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}
	if p.pos == start {
		return false
	}
	if p.peek() == '}' {
		return true
	}
	if p.peek() == ',' {
		p.advance()
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.advance()
		}
		return p.peek() == '}'
	}
	return false
}

// tryParseQuantifier parses *, +, ?, {n}, {n,}, {n,m} and their lazy (?)
// suffix.
func (p *parser) tryParseQuantifier() (Quantifier, bool, error) {
	switch p.peek() {
	case '*':
		p.advance()
		return p.finishQuantifier(0, Unbounded)
	case '+':
		p.advance()
		return p.finishQuantifier(1, Unbounded)
	case '?':
		p.advance()
		return p.finishQuantifier(0, 1)
	case '{':
		if !p.looksLikeQuantifierBrace() {
			return Quantifier{}, false, nil
		}
		p.advance() // '{'
		min, err := p.parseQuantifierInt()
		if err != nil {
			return Quantifier{}, false, err
		}
		max := min
		if p.peek() == ',' {
			p.advance()
			if p.peek() == '}' {
				max = Unbounded
			} else {
				max, err = p.parseQuantifierInt()
				if err != nil {
					return Quantifier{}, false, err
				}
			}
		}
		if p.peek() != '}' {
			return Quantifier{}, false, p.err(QuantifierIncomplete)
		}
		p.advance()
		if max != Unbounded && min > max {
			return Quantifier{}, false, p.err(QuantifierOutOfOrder)
		}
		return p.finishQuantifier(min, max)
	default:
		return Quantifier{}, false, nil
	}
}

func (p *parser) parseQuantifierInt() (int, error) {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}
	if p.pos == start {
		return 0, p.err(QuantifierIncomplete)
	}
	n, err := strconv.Atoi(string(p.src[start:p.pos]))
	if err != nil || n > quantifierMax {
		return 0, p.err(QuantifierTooLarge)
	}
	return n, nil
}

func (p *parser) finishQuantifier(min, max int) (Quantifier, bool, error) {
	qt := Greedy
	if p.peek() == '?' {
		p.advance()
		qt = NonGreedy
	}
	if min == max {
		qt = FixedCount
	}
	return Quantifier{Min: min, Max: max, Type: qt}, true, nil
}
