package syntax

// groupSite records where a named capture occurs for the cross-check
// Unicode/UnicodeSets mode requires: reused names are only legal across
// different alternatives of the very same disjunction.
type groupSite struct {
	disj         *PatternDisjunction
	altIndex     int
	subpatternID int
}

// resolveDuplicateGroups validates duplicate named-capture rules and
// builds YarrPattern.DuplicateNamedGroupForSubpatternID.
func (p *parser) resolveDuplicateGroups(pattern *YarrPattern) error {
	sites := map[string][]groupSite{}
	walkDisjunction(pattern.Root, func(d *PatternDisjunction, altIndex int, t *PatternTerm) {
		if t.Kind == TermParentheses && t.GroupName != "" {
			sites[t.GroupName] = append(sites[t.GroupName], groupSite{d, altIndex, t.CaptureIndex})
		}
	})

	pattern.DuplicateNamedGroupForSubpatternID = map[int]int{}
	nextGroupID := 1
	for name, list := range sites {
		if len(list) < 2 {
			continue
		}
		if pattern.Flags.Has(Unicode) || pattern.Flags.Has(UnicodeSets) {
			for i := 1; i < len(list); i++ {
				if list[i].disj != list[0].disj || list[i].altIndex == list[0].altIndex {
					return &ParseError{Code: DuplicateGroupName}
				}
			}
		} else {
			return &ParseError{Code: DuplicateGroupName}
		}
		groupID := nextGroupID
		nextGroupID++
		for _, s := range list {
			pattern.DuplicateNamedGroupForSubpatternID[s.subpatternID] = groupID
		}
		_ = name
	}
	pattern.NumDuplicateNamedGroups = nextGroupID - 1
	return nil
}

// resolveBackReferences fills in named-backreference subpattern ids and
// validates numeric backreferences against the final subpattern count
// (the InvalidBackreference / InvalidNamedBackReference rules).
func (p *parser) resolveBackReferences(pattern *YarrPattern) error {
	var walkErr error
	walkDisjunction(pattern.Root, func(d *PatternDisjunction, altIndex int, t *PatternTerm) {
		if walkErr != nil || t.Kind != TermBackReference && t.Kind != TermForwardReference {
			return
		}
		if t.GroupName != "" {
			ids, ok := pattern.GroupNames[t.GroupName]
			if !ok {
				walkErr = &ParseError{Code: InvalidNamedBackReference}
				return
			}
			t.SubpatternID = ids[0]
			return
		}
		if t.SubpatternID < 1 || t.SubpatternID > pattern.NumSubpatterns {
			if pattern.Flags.Has(Unicode) || pattern.Flags.Has(UnicodeSets) {
				walkErr = &ParseError{Code: InvalidBackreference}
				return
			}
			// Legacy: an out-of-range numeric backreference is tolerated;
			// simplified here (relative to Annex B's exact octal-escape
			// fallback) to a no-op reference that simply never matches
			// anything beyond the unset sentinel, rather than decoding it
			// as an octal literal. See DESIGN.md.
			t.SubpatternID = 0
		}
	})
	return walkErr
}

// walkDisjunction visits every term in every alternative of d, recursing
// into nested parentheses/lookaround disjunctions, calling visit with the
// immediately-enclosing disjunction and alternative index.
func walkDisjunction(d *PatternDisjunction, visit func(d *PatternDisjunction, altIndex int, t *PatternTerm)) {
	for ai := range d.Alternatives {
		alt := &d.Alternatives[ai]
		for ti := range alt.Terms {
			t := &alt.Terms[ti]
			visit(d, ai, t)
			if t.Disjunction != nil {
				walkDisjunction(t.Disjunction, visit)
			}
		}
	}
}
