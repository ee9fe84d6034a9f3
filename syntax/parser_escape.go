package syntax

import (
	"strconv"

	"github.com/coregx/yarrgo/charclass"
)

// parseEscapeAtom parses everything starting at '\': class escapes (\d \w
// \s and their negations), \p{...}/\P{...} property escapes, anchors (\b
// \B), back/forward references (\N, \k<name>), and character escapes
// (\xHH, \uHHHH, \u{H+}, \cX, \0, identity/octal escapes).
func (p *parser) parseEscapeAtom() (PatternTerm, bool, error) {
	p.advance() // '\\'
	if p.eof() {
		return PatternTerm{}, false, p.err(EscapeUnterminated)
	}
	c := p.peek()
	switch c {
	case 'd', 'D', 'w', 'W', 's', 'S':
		p.advance()
		return PatternTerm{Kind: TermCharacterClass, Class: classEscape(c, p.flags)}, true, nil
	case 'b':
		p.advance()
		return PatternTerm{Kind: TermAnchor, Anchor: AssertionWordBoundary}, p.mode == Legacy, nil
	case 'B':
		p.advance()
		return PatternTerm{Kind: TermAnchor, Anchor: AssertionWordBoundary, Invert: true}, p.mode == Legacy, nil
	case 'p', 'P':
		if !p.unicodeMode() {
			break // identity-escape fallthrough below (Legacy treats \p as literal p)
		}
		return p.parseUnicodePropertyEscape(c == 'P')
	case 'k':
		if p.peekAt(1) == '<' {
			return p.parseNamedBackReference()
		}
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return p.parseNumericBackReference()
	case '0':
		p.advance()
		if p.unicodeMode() && !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			return PatternTerm{}, false, p.err(InvalidOctalEscape)
		}
		return PatternTerm{Kind: TermCharacter, Character: 0}, true, nil
	}
	return p.parseCharacterEscape()
}

func classEscape(c rune, flags Flag) *charclass.CharacterClass {
	b := charclass.NewBuilder()
	switch c {
	case 'd', 'D':
		b.AddRange('0', '9')
	case 'w', 'W':
		b.AddRange('a', 'z').AddRange('A', 'Z').AddRange('0', '9').AddCodePoint('_')
	case 's', 'S':
		addWhitespace(b)
	}
	if c == 'D' || c == 'W' || c == 'S' {
		b.Negate()
	}
	return b.Finalize()
}

func addWhitespace(b *charclass.Builder) *charclass.Builder {
	for _, c := range []rune{' ', '\t', '\n', '\v', '\f', '\r', 0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF} {
		b.AddCodePoint(c)
	}
	b.AddRange(0x2000, 0x200A)
	return b
}

func (p *parser) parseUnicodePropertyEscape(negate bool) (PatternTerm, bool, error) {
	p.advance() // 'p' or 'P'
	if p.peek() != '{' {
		return PatternTerm{}, false, p.err(InvalidUnicodePropertyExpression)
	}
	p.advance()
	start := p.pos
	for !p.eof() && p.peek() != '}' {
		p.advance()
	}
	if p.eof() {
		return PatternTerm{}, false, p.err(InvalidUnicodePropertyExpression)
	}
	body := string(p.src[start:p.pos])
	p.advance() // '}'

	name, value := splitPropertyExpr(body)
	cc, err := charclass.ResolveUnicodeProperty(name, value)
	if err != nil {
		return PatternTerm{}, false, p.err(InvalidUnicodePropertyExpression)
	}
	if negate {
		if cc.MayContainStrings {
			return PatternTerm{}, false, p.err(NegatedClassSetMayContainStrings)
		}
		nb := charclass.NewBuilder().Merge(cc).Negate()
		cc = nb.Finalize()
	}
	return PatternTerm{Kind: TermCharacterClass, Class: cc}, true, nil
}

func splitPropertyExpr(body string) (name, value string) {
	for i := 0; i < len(body); i++ {
		if body[i] == '=' {
			return body[:i], body[i+1:]
		}
	}
	return body, ""
}

func (p *parser) parseNamedBackReference() (PatternTerm, bool, error) {
	p.advance() // 'k'
	p.advance() // '<'
	start := p.pos
	for !p.eof() && p.peek() != '>' {
		p.advance()
	}
	if p.eof() {
		return PatternTerm{}, false, p.err(InvalidNamedBackReference)
	}
	name := string(p.src[start:p.pos])
	p.advance() // '>'

	p.namedBackRefs = append(p.namedBackRefs, namedBackRefSite{name: name, pos: p.pos})
	// Placeholder id resolved in resolveBackReferences once every named
	// group has been recorded (handles forward references to names
	// defined later in the pattern).
	return PatternTerm{Kind: TermBackReference, GroupName: name}, true, nil
}

func (p *parser) parseNumericBackReference() (PatternTerm, bool, error) {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}
	n, err := strconv.Atoi(string(p.src[start:p.pos]))
	if err != nil {
		return PatternTerm{}, false, p.err(InvalidBackreference)
	}
	p.numericBackRefs = append(p.numericBackRefs, numericBackRefSite{n: n, pos: p.pos})
	kind := TermBackReference
	if n > p.nextSubpatternID {
		kind = TermForwardReference
	}
	return PatternTerm{Kind: kind, SubpatternID: n}, true, nil
}

// parseCharacterEscape parses \xHH, \uHHHH, \u{H+}, \cX, octal escapes,
// and identity escapes (the main Legacy/Unicode divergence point).
func (p *parser) parseCharacterEscape() (PatternTerm, bool, error) {
	c := p.peek()
	switch c {
	case 'n':
		p.advance()
		return PatternTerm{Kind: TermCharacter, Character: '\n'}, true, nil
	case 'r':
		p.advance()
		return PatternTerm{Kind: TermCharacter, Character: '\r'}, true, nil
	case 't':
		p.advance()
		return PatternTerm{Kind: TermCharacter, Character: '\t'}, true, nil
	case 'v':
		p.advance()
		return PatternTerm{Kind: TermCharacter, Character: '\v'}, true, nil
	case 'f':
		p.advance()
		return PatternTerm{Kind: TermCharacter, Character: '\f'}, true, nil
	case 'x':
		return p.parseHexEscape(2)
	case 'u':
		return p.parseUnicodeEscape()
	case 'c':
		return p.parseControlLetterEscape()
	}

	if c >= '1' && c <= '7' {
		return p.parseOctalEscape()
	}

	// Identity escape: in Legacy mode any non-special character may be
	// escaped; Unicode/UnicodeSets restrict this to SyntaxCharacter and '/'.
	if p.unicodeMode() && !isSyntaxCharacterOrSlash(c) {
		return PatternTerm{}, false, p.err(InvalidIdentityEscape)
	}
	p.advance()
	return PatternTerm{Kind: TermCharacter, Character: c}, true, nil
}

func isSyntaxCharacterOrSlash(c rune) bool {
	switch c {
	case '^', '$', '\\', '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|', '/':
		return true
	}
	return false
}

func (p *parser) parseHexEscape(digits int) (PatternTerm, bool, error) {
	p.advance() // 'x'
	v, ok := p.readHexDigits(digits)
	if !ok {
		if p.unicodeMode() {
			return PatternTerm{}, false, p.err(InvalidUnicodeEscape)
		}
		return PatternTerm{Kind: TermCharacter, Character: 'x'}, true, nil
	}
	return PatternTerm{Kind: TermCharacter, Character: rune(v)}, true, nil
}

func (p *parser) parseUnicodeEscape() (PatternTerm, bool, error) {
	p.advance() // 'u'
	if p.peek() == '{' {
		p.advance()
		start := p.pos
		for !p.eof() && isHexDigit(p.peek()) {
			p.advance()
		}
		if p.pos == start || p.peek() != '}' {
			return PatternTerm{}, false, p.err(InvalidUnicodeCodePointEscape)
		}
		v, err := strconv.ParseInt(string(p.src[start:p.pos]), 16, 64)
		if err != nil || v > charclass.MaxCodePoint {
			return PatternTerm{}, false, p.err(InvalidUnicodeCodePointEscape)
		}
		p.advance() // '}'
		return PatternTerm{Kind: TermCharacter, Character: rune(v)}, true, nil
	}

	v, ok := p.readHexDigits(4)
	if !ok {
		if p.unicodeMode() {
			return PatternTerm{}, false, p.err(InvalidUnicodeEscape)
		}
		return PatternTerm{Kind: TermCharacter, Character: 'u'}, true, nil
	}
	// Combine a surrogate pair written as two \u escapes under u/v mode,
	// matching how a UTF-16 host string would present the code point.
	if p.unicodeMode() && v >= 0xD800 && v <= 0xDBFF && p.peek() == '\\' && p.peekAt(1) == 'u' {
		save := p.pos
		p.advance()
		p.advance()
		low, ok := p.readHexDigits(4)
		if ok && low >= 0xDC00 && low <= 0xDFFF {
			cp := 0x10000 + (v-0xD800)*0x400 + (low - 0xDC00)
			return PatternTerm{Kind: TermCharacter, Character: rune(cp)}, true, nil
		}
		p.pos = save
	}
	return PatternTerm{Kind: TermCharacter, Character: rune(v)}, true, nil
}

func (p *parser) parseControlLetterEscape() (PatternTerm, bool, error) {
	p.advance() // 'c'
	c := p.peek()
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		p.advance()
		v := rune(c % 32)
		return PatternTerm{Kind: TermCharacter, Character: v}, true, nil
	}
	if p.unicodeMode() {
		return PatternTerm{}, false, p.err(InvalidControlLetterEscape)
	}
	return PatternTerm{Kind: TermCharacter, Character: '\\'}, true, nil
}

func (p *parser) parseOctalEscape() (PatternTerm, bool, error) {
	if p.unicodeMode() {
		return PatternTerm{}, false, p.err(InvalidOctalEscape)
	}
	start := p.pos
	for i := 0; i < 3 && !p.eof() && p.peek() >= '0' && p.peek() <= '7'; i++ {
		p.advance()
	}
	v, _ := strconv.ParseInt(string(p.src[start:p.pos]), 8, 32)
	return PatternTerm{Kind: TermCharacter, Character: rune(v)}, true, nil
}

func (p *parser) readHexDigits(n int) (int64, bool) {
	if p.pos+n > len(p.src) {
		return 0, false
	}
	for i := 0; i < n; i++ {
		if !isHexDigit(p.src[p.pos+i]) {
			return 0, false
		}
	}
	v, err := strconv.ParseInt(string(p.src[p.pos:p.pos+n]), 16, 64)
	if err != nil {
		return 0, false
	}
	p.pos += n
	return v, true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
