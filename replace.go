package yarrgo

import "strings"

// MatchAll returns every match of input in left-to-right order, the way
// %RegExp.prototype[@@matchAll]% iterates. It does not consult or mutate
// r.LastIndex; internally it matches against a throwaway global clone so
// repeated calls on the same RegExp are independent.
//
// Example:
//
//	re := yarrgo.MustCompile(`\d+`, "")
//	for _, m := range re.MatchAll("1 22 333") {
//	    fmt.Println(m.Group(0))
//	}
func (r *RegExp) MatchAll(input string) []*MatchResult {
	scanner := &RegExp{c: r.c}
	var out []*MatchResult
	for {
		m := scanner.execGlobal(input)
		if m == nil {
			break
		}
		out = append(out, m)
	}
	return out
}

// execGlobal behaves like Exec as if Global were always set, independent
// of r.c.flags — the helper MatchAll (and through it a global Replace)
// uses to iterate without
// depending on the source pattern actually carrying the g flag.
func (r *RegExp) execGlobal(input string) *MatchResult {
	runes := []rune(input)
	for pos := r.LastIndex; pos <= len(runes); pos++ {
		if !r.Sticky() {
			pos = nextCandidate(r.c, runes, pos)
			if pos > len(runes) {
				break
			}
		}
		res, err := execAt(r.c, runes, pos)
		if err == nil && res != nil {
			end := res.Offsets[1]
			if end == res.Offsets[0] {
				end++
			}
			r.LastIndex = end
			return newMatchResult(r, input, runes, res)
		}
		if r.Sticky() {
			break
		}
	}
	r.LastIndex = 0
	return nil
}

// Replace implements %RegExp.prototype[@@replace]%'s substitution
// algorithm for a literal replacement string: $$, $&, $`, $', $1-$99, and
// $<name> are interpolated; every other $x is copied literally. Only the
// first match is replaced unless the source pattern carries the g flag.
//
// Example:
//
//	re := yarrgo.MustCompile(`(\w+)@(\w+)`, "")
//	re.Replace("user@example", "$2:$1") // "example:user"
func (r *RegExp) Replace(input, replacement string) string {
	return r.ReplaceFunc(input, func(m *MatchResult) string {
		return expandReplacement(m, replacement)
	})
}

// ReplaceFunc is like Replace but computes each match's substitution with
// fn, the way @@replace does when given a callable replacer.
func (r *RegExp) ReplaceFunc(input string, fn func(*MatchResult) string) string {
	matches := r.matchesForReplace(input)
	if len(matches) == 0 {
		return input
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end, _ := m.GroupIndices(0)
		b.WriteString(string(m.runes[last:start]))
		b.WriteString(fn(m))
		last = end
	}
	b.WriteString(string(matches[0].runes[last:]))
	return b.String()
}

func (r *RegExp) matchesForReplace(input string) []*MatchResult {
	if r.Global() {
		return r.MatchAll(input)
	}
	if m := (&RegExp{c: r.c}).Exec(input); m != nil {
		return []*MatchResult{m}
	}
	return nil
}

func expandReplacement(m *MatchResult, replacement string) string {
	var b strings.Builder
	runes := []rune(replacement)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '$' || i == len(runes)-1 {
			b.WriteRune(c)
			continue
		}
		next := runes[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			text, _ := m.Group(0)
			b.WriteString(text)
			i++
		case next == '`':
			start, _, _ := m.GroupIndices(0)
			b.WriteString(string(m.runes[:start]))
			i++
		case next == '\'':
			_, end, _ := m.GroupIndices(0)
			b.WriteString(string(m.runes[end:]))
			i++
		case next == '<':
			end := i + 2
			for end < len(runes) && runes[end] != '>' {
				end++
			}
			if end < len(runes) {
				name := string(runes[i+2 : end])
				text, _ := m.NamedGroup(name)
				b.WriteString(text)
				i = end
				continue
			}
			b.WriteRune(c)
		case next >= '0' && next <= '9':
			n, width := scanGroupDigits(runes, i+1, m.NumGroups())
			if n >= 1 && n <= m.NumGroups() {
				text, _ := m.Group(n)
				b.WriteString(text)
				i += width
			} else {
				b.WriteRune(c)
			}
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// scanGroupDigits reads a one- or two-digit group reference starting at
// runes[pos], preferring the two-digit form when it names a valid group
// (matching @@replace's own greedy-then-backoff digit scan).
func scanGroupDigits(runes []rune, pos, numGroups int) (n, width int) {
	if pos+1 < len(runes) && runes[pos+1] >= '0' && runes[pos+1] <= '9' {
		two := int(runes[pos]-'0')*10 + int(runes[pos+1]-'0')
		if two >= 1 && two <= numGroups {
			return two, 2
		}
	}
	return int(runes[pos] - '0'), 1
}

// Split implements %RegExp.prototype[@@split]%: the input is divided at
// each match, with any capturing groups from the separator spliced into
// the result. A limit < 0 means unlimited, matching the convention
// strings.SplitN already uses for "no limit" in the standard library.
func (r *RegExp) Split(input string, limit int) []string {
	if limit == 0 {
		return nil
	}
	runes := []rune(input)
	if len(runes) == 0 {
		if (&RegExp{c: r.c}).Exec(input) != nil {
			return nil
		}
		return []string{""}
	}

	var out []string
	last := 0
	pos := 0
	for pos < len(runes) {
		pos = nextCandidate(r.c, runes, pos)
		if pos >= len(runes) {
			break
		}
		res, err := execAt(r.c, runes, pos)
		if err != nil || res == nil {
			pos++
			continue
		}
		start, end := res.Offsets[0], res.Offsets[1]
		if end == last {
			pos = start + 1
			continue
		}
		out = append(out, string(runes[last:start]))
		if limit > 0 && len(out) >= limit {
			return out
		}
		for g := 1; g <= r.NumGroups(); g++ {
			gs, ge := res.Offsets[2*g], res.Offsets[2*g+1]
			if gs < 0 {
				out = append(out, "")
				continue
			}
			out = append(out, string(runes[gs:ge]))
		}
		if limit > 0 && len(out) >= limit {
			return out
		}
		last = end
		pos = end
		if end == start {
			pos++
		}
	}
	out = append(out, string(runes[last:]))
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
