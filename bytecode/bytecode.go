// Package bytecode lowers an analyzed syntax.YarrPattern into a flat
// ByteTerm stream. The vm package executes the
// resulting BytecodePattern.
package bytecode

import (
	"github.com/coregx/yarrgo/charclass"
	"github.com/coregx/yarrgo/syntax"
)

// Op tags the ByteTerm sum type. Where the source enumerates several tags
// that differ only by quantifier shape (PatternCharacterOnce/Fixed/Greedy/
// NonGreedy, the Cased variants, the three ParenthesesSubpattern flavors),
// this implementation keeps one Op per structural shape and carries the
// distinguishing detail in ByteTerm.Quantifier / ByteTerm.ParenKind — Go's
// tagged-struct dispatch doesn't need the combinatorial enum explosion a
// C-style switch-on-integer interpreter does.
type Op int

const (
	OpBodyAlternativeBegin Op = iota
	OpBodyAlternativeDisjunction
	OpBodyAlternativeEnd
	OpAlternativeBegin
	OpAlternativeDisjunction
	OpAlternativeEnd
	OpSubpatternBegin
	OpSubpatternEnd
	OpAssertionBOL
	OpAssertionEOL
	OpAssertionWordBoundary
	OpPatternCharacter
	OpPatternCasedCharacter
	OpCharacterClass
	OpBackReference
	OpParenthesesSubpatternBegin
	OpParenthesesSubpatternEnd
	OpParentheticalAssertionBegin
	OpParentheticalAssertionEnd
	OpCheckInput
	OpUncheckInput
	OpHaveCheckedInput
	OpDotStarEnclosure
)

// ParenKind distinguishes the three ParenthesesSubpattern execution
// strategies the interpreter relies on.
type ParenKind int

const (
	ParenNormal ParenKind = iota
	ParenOnce             // quantifier max == 1
	ParenTerminal         // last atom of its alternative, greedy, max == ∞
)

// ByteTerm is the flat bytecode instruction.
type ByteTerm struct {
	Op Op

	// Shared across most ops.
	InputPositionDelta int
	FrameLocation       int
	MatchDirection      syntax.MatchDirection
	Invert              bool
	CaptureIndex        int // -1 when not capturing

	// Alternation ops: indices into the owning ByteDisjunction.Terms.
	Next int
	End  int

	// Assertion
	AssertionKind syntax.AssertionKind

	// PatternCharacter / PatternCasedCharacter
	Character   rune
	CharacterHi rune // fold partner, PatternCasedCharacter only
	Quantifier  syntax.Quantifier

	// CharacterClass
	Class *charclass.CharacterClass

	// BackReference / SubpatternBegin/End / ParenthesesSubpattern*
	SubpatternID int
	ParenKind    ParenKind

	// ParenthesesSubpattern* / ParentheticalAssertion*: nested program.
	Nested *ByteDisjunction

	// CheckInput / UncheckInput / HaveCheckedInput
	CheckedCount int

	// DotStarEnclosure
	MultilineDotStar bool
}

// ByteDisjunction is a contiguous vector of ByteTerm plus the subpattern
// count and frame size the vm needs to allocate a backtrack frame for it.
type ByteDisjunction struct {
	Terms          []ByteTerm
	NumSubpatterns int
	FrameSize      int

	// AltRanges[i] is the [start, end) slice of Terms holding alternative
	// i's body, excluding its own Begin/Disjunction header and the
	// trailing End marker shared by the whole disjunction. The vm walks
	// alternatives in order, trying AltRanges[0] first, so it never has
	// to rescan Terms for head markers during backtracking.
	AltRanges [][2]int
}

// BytecodePattern is the compiler's top-level output. It owns every
// nested ByteDisjunction reachable from Body (directly via ByteTerm.Nested
// fields — there are no cycles by construction) and every
// CharacterClass referenced by a CharacterClass ByteTerm.
type BytecodePattern struct {
	Body  *ByteDisjunction
	Flags syntax.Flag

	DuplicateNamedGroupForSubpatternID map[int]int
	OffsetVectorBaseForNamedCaptures   int
	OffsetsSize                        int

	ContainsBOL bool
	ContainsEOL bool

	// DotStarEnclosure mirrors analyze.DotStarEnclosure: every alternative
	// begins and ends with an unanchored `.*`. This could be modeled as an
	// inline DotStarEnclosure ByteTerm; this implementation hoists it to a
	// pattern-level flag instead, since the fact it records is global to
	// the whole pattern rather than a position in one alternative's term
	// stream — a facade-level search loop can check it once per Exec call
	// rather than the vm re-checking a marker term on every alternative
	// entry. OpDotStarEnclosure is kept in the Op enum for the construct
	// it names; nothing currently emits it as a ByteTerm.
	DotStarEnclosure bool

	// NewlineClass / WordClass / UnicodeIgnoreCaseWordClass are canonical
	// shared classes referenced by \n-sensitive anchors and \b/\B so the
	// vm doesn't rebuild them per match.
	NewlineClass             *charclass.CharacterClass
	WordClass                *charclass.CharacterClass
	UnicodeIgnoreCaseWordClass *charclass.CharacterClass
}
