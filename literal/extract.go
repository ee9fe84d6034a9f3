package literal

import "github.com/coregx/yarrgo/syntax"

// maxAlternatives bounds how many top-level alternatives ExtractPrefixes
// will walk. Past this, the automaton a prefilter would build from the
// literals costs more than the scan it saves.
const maxAlternatives = 256

// ExtractPrefixes walks an analyzed pattern and returns one required
// prefix per top-level alternative, or an empty Seq when no guarantee can
// be made. The guarantee the caller relies on: every match of the pattern
// begins, at its first matched position, with one of the returned
// literals. Scanning the input for the literals therefore never skips a
// real match.
//
// Extraction is deliberately conservative:
//
//   - IgnoreCase patterns yield nothing (the literal would need case
//     expansion, and the folded forms are the character class's job).
//   - An alternative whose leading term is quantified, a class, a
//     backreference, or a lookaround contributes only the characters
//     before that term; if that is no characters, the whole extraction
//     fails, since a match could start with anything.
//   - Characters outside ASCII end the literal. The facade only applies
//     prefilters to all-ASCII input, where a non-ASCII literal byte could
//     never line up with rune positions.
//
// Zero-width leading anchors (^, \b) are skipped: they constrain the
// position, not the first characters, so the literal that follows them is
// still required at the match start. Skipping one demotes the alternative
// to Complete == false.
func ExtractPrefixes(p *syntax.YarrPattern) *Seq {
	seq := NewSeq()
	if p.Flags.Has(syntax.IgnoreCase) {
		return seq
	}
	alts := p.Root.Alternatives
	if len(alts) == 0 || len(alts) > maxAlternatives {
		return seq
	}
	for i := range alts {
		prefix, complete := alternativePrefix(&alts[i])
		if len(prefix) == 0 {
			return NewSeq()
		}
		seq.Push(Literal{Bytes: prefix, Complete: complete})
	}
	seq.Minimize()
	return seq
}

// alternativePrefix collects the run of fixed single characters the
// alternative must match first. complete is true only when the run is the
// whole alternative: no anchors, nothing skipped, nothing left over.
func alternativePrefix(alt *syntax.PatternAlternative) (prefix []byte, complete bool) {
	complete = true
	for i := range alt.Terms {
		t := &alt.Terms[i]
		switch t.Kind {
		case syntax.TermAnchor:
			if t.Anchor == syntax.AssertionEOL {
				// $ mid-alternative: whatever follows is not part of
				// the same left-to-right run. Stop here.
				return prefix, false
			}
			complete = false
		case syntax.TermCharacter:
			if !fixedOnce(t.Quantifier) || t.Character > 0x7f {
				return prefix, false
			}
			prefix = append(prefix, byte(t.Character))
		case syntax.TermParentheses:
			if !fixedOnce(t.Quantifier) || len(t.Disjunction.Alternatives) != 1 {
				return prefix, false
			}
			inner, innerComplete := alternativePrefix(&t.Disjunction.Alternatives[0])
			prefix = append(prefix, inner...)
			if !innerComplete {
				return prefix, false
			}
		default:
			return prefix, false
		}
	}
	return prefix, complete
}

func fixedOnce(q syntax.Quantifier) bool {
	return q.Min == 1 && q.Max == 1
}

// LeadingClassTable returns a byte-membership table for the single
// character class every match must begin with, when the pattern has
// exactly one top-level alternative whose first (possibly anchor-preceded)
// term is a character class quantified to match at least once. ok is false when no such class exists or
// when the class admits so many ASCII bytes that scanning for them would
// stop at nearly every position.
//
// Only bytes 0x00-0x7f are populated; the facade never applies the table
// to non-ASCII input.
func LeadingClassTable(p *syntax.YarrPattern) (table *[256]bool, ok bool) {
	if p.Flags.Has(syntax.IgnoreCase) || len(p.Root.Alternatives) != 1 {
		return nil, false
	}
	terms := p.Root.Alternatives[0].Terms
	i := 0
	for i < len(terms) && terms[i].Kind == syntax.TermAnchor && terms[i].Anchor != syntax.AssertionEOL {
		i++
	}
	if i == len(terms) {
		return nil, false
	}
	t := &terms[i]
	if t.Kind != syntax.TermCharacterClass || t.Quantifier.Min < 1 {
		return nil, false
	}
	// A /v string disjunction can match a sequence whose first code point
	// is not in the single-character set; the table would skip it.
	if t.Class.MayContainStrings {
		return nil, false
	}
	var tbl [256]bool
	members := 0
	for b := rune(0); b <= 0x7f; b++ {
		if t.Class.Contains(b) {
			tbl[b] = true
			members++
		}
	}
	// A class matching most of ASCII (\D, [^x], dot) hits on nearly every
	// byte; the scan would degenerate into the plain position loop it is
	// supposed to replace.
	if members == 0 || members > 32 {
		return nil, false
	}
	return &tbl, true
}
