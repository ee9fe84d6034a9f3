package yarrgo

import "sync"

// Legacy RegExp static properties (Annex B.2.4): the last successful
// match's input/groups, refreshed by every successful Exec call when
// Config.TrackLegacyStatics is set. These are process-wide, exactly like
// the host object's RegExp.$1 etc. — callers that need isolation should
// turn tracking off.
var (
	staticsMu     sync.Mutex
	lastInput     string
	lastMatchText string
	leftContext   string
	rightContext  string
	lastParens    [9]string
)

func updateLegacyStatics(m *MatchResult) {
	start, end, _ := m.GroupIndices(0)

	staticsMu.Lock()
	defer staticsMu.Unlock()

	lastInput = m.Input
	lastMatchText = string(m.runes[start:end])
	leftContext = string(m.runes[:start])
	rightContext = string(m.runes[end:])

	for i := 0; i < 9; i++ {
		lastParens[i], _ = m.Group(i + 1)
	}
}

// LastInput returns the string most recently passed to Exec
// (RegExp.input).
func LastInput() string {
	staticsMu.Lock()
	defer staticsMu.Unlock()
	return lastInput
}

// LastMatch returns the most recent Exec's whole-match text
// (RegExp.lastMatch).
func LastMatch() string {
	staticsMu.Lock()
	defer staticsMu.Unlock()
	return lastMatchText
}

// LastParen returns $1 through $9 (1-indexed); out-of-range n returns "".
func LastParen(n int) string {
	if n < 1 || n > 9 {
		return ""
	}
	staticsMu.Lock()
	defer staticsMu.Unlock()
	return lastParens[n-1]
}

// LeftContext returns the text before the most recent match
// (RegExp.leftContext).
func LeftContext() string {
	staticsMu.Lock()
	defer staticsMu.Unlock()
	return leftContext
}

// RightContext returns the text after the most recent match
// (RegExp.rightContext).
func RightContext() string {
	staticsMu.Lock()
	defer staticsMu.Unlock()
	return rightContext
}
