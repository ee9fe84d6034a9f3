package syntax

import "github.com/coregx/yarrgo/charclass"

// QuantifierType distinguishes how a term's repetition is executed.
type QuantifierType int

const (
	// FixedCount: min == max, no backtrack record is needed.
	FixedCount QuantifierType = iota
	Greedy
	NonGreedy
)

// Quantifier is the (min, max, type) repetition triple attached to every
// PatternTerm. Max == -1 means unbounded (the source ∞).
type Quantifier struct {
	Min, Max int
	Type     QuantifierType
}

// Unbounded is the sentinel Quantifier.Max value for {n,}/+/*.
const Unbounded = -1

// TermKind tags the PatternTerm sum type.
type TermKind int

const (
	TermCharacter TermKind = iota
	TermCharacterClass
	TermBackReference
	TermParentheses
	TermParentheticalAssertion
	TermForwardReference
	TermAnchor
	TermDotStarEnclosure
)

// ParenthesesType distinguishes the parenthesized-group forms the
// grammar names.
type ParenthesesType int

const (
	ParenCapturing ParenthesesType = iota
	ParenNonCapturing
	ParenOnce  // quantifier max == 1, set by the analyzer, not the parser
	ParenTerminal
)

// AssertionKind distinguishes the four zero-width anchors.
type AssertionKind int

const (
	AssertionBOL AssertionKind = iota
	AssertionEOL
	AssertionWordBoundary // \b, invert=true for \B
)

// MatchDirection distinguishes forward matching from the rightward-to-
// leftward direction a lookbehind's subprogram runs in.
type MatchDirection int

const (
	Forward MatchDirection = iota
	Backward
)

// PatternTerm is the sum-type node of the pattern tree. Kind
// selects which fields are meaningful; unused fields are zero.
type PatternTerm struct {
	Kind       TermKind
	Quantifier Quantifier

	// TermCharacter
	Character rune

	// TermCharacterClass
	Class *charclass.CharacterClass

	// TermBackReference / TermForwardReference
	SubpatternID int

	// TermParentheses
	ParenType     ParenthesesType
	CaptureIndex  int // -1 if non-capturing
	GroupName     string
	Disjunction   *PatternDisjunction

	// TermParentheticalAssertion
	Invert         bool
	MatchDirection MatchDirection

	// TermAnchor
	Anchor AssertionKind

	// Analyzer-assigned; zero until analyze.Analyze runs.
	FrameSlot int
	// InputPosition is the cumulative minimum input offset at which this
	// term begins, relative to the start of its alternative.
	InputPosition int
}

// PatternAlternative is an ordered list of terms within a disjunction
// MinimumSize and OnceThrough are filled in by the analyzer.
type PatternAlternative struct {
	Terms       []PatternTerm
	MinimumSize int
	OnceThrough bool
}

// PatternDisjunction is an ordered alternation of alternatives.
// FirstSubpatternID/LastSubpatternID record the capture-index span this
// disjunction (and everything nested under it) owns.
type PatternDisjunction struct {
	Alternatives      []PatternAlternative
	FirstSubpatternID int
	LastSubpatternID  int
}

// YarrPattern is the parser's output: the root disjunction plus the
// flag set, subpattern count, and duplicate-named-group table.
type YarrPattern struct {
	Root              *PatternDisjunction
	Flags             Flag
	NumSubpatterns    int
	GroupNames        map[string][]int // name -> subpattern ids sharing it
	DuplicateNamedGroupForSubpatternID map[int]int // subpatternId -> groupId (1-based)
	NumDuplicateNamedGroups int

	// Filled by the analyzer.
	ContainsBOL bool
	ContainsEOL bool
}
