// Package yarrgo implements an ECMAScript-compatible regular expression
// engine: character classes and set operations (package charclass), a
// recursive-descent pattern parser for Legacy/Unicode/UnicodeSets syntax
// (package syntax), a minimum-length/frame-slot analyzer (package
// analyze), a bytecode compiler (package bytecode), a backtracking
// bytecode interpreter (package vm), and this package's RegExp facade
// tying them together with a compiled-pattern cache, a literal prefilter
// (packages literal, prefilter, simd), and the legacy static properties
// (lastMatch, $1-$9, ...).
//
// Basic usage:
//
//	re, err := yarrgo.Compile(`(\w+)@(\w+)\.(\w+)`, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if m := re.Exec("user@example.com"); m != nil {
//	    fmt.Println(m.Group(1)) // user true
//	}
//
// Global/sticky matching advances through lastIndex the way the
// ECMAScript %RegExp.prototype.exec% algorithm does:
//
//	re := yarrgo.MustCompile(`\d+`, "g")
//	for {
//	    m := re.Exec("1 22 333")
//	    if m == nil {
//	        break
//	    }
//	    fmt.Println(m.Group(0))
//	}
package yarrgo

import (
	"sync"

	"github.com/coregx/yarrgo/analyze"
	"github.com/coregx/yarrgo/bytecode"
	"github.com/coregx/yarrgo/literal"
	"github.com/coregx/yarrgo/prefilter"
	"github.com/coregx/yarrgo/syntax"
	"github.com/coregx/yarrgo/vm"
)

// Config controls compile-time behavior: cache sizing and the legacy
// static-property bookkeeping RegExp.prototype.exec/@@replace rely on.
//
// Example:
//
//	config := yarrgo.DefaultConfig()
//	config.MaxCacheEntries = 1000
//	re, err := yarrgo.CompileWithConfig(`\d+`, "g", config)
type Config struct {
	// MaxCacheEntries bounds the process-wide compiled-pattern cache.
	// Once exceeded, the oldest entry is evicted (FIFO).
	// Default: 256
	MaxCacheEntries int

	// TrackLegacyStatics enables maintaining the package-level legacy
	// RegExp static properties ($1-$9, LastMatch, LeftContext,
	// RightContext) on every successful Exec, mirroring Annex B's RegExp
	// statics.
	// Default: true
	TrackLegacyStatics bool
}

// DefaultConfig returns sensible defaults: a modest compile cache and
// legacy statics tracking enabled (cheap, and code ported from engines
// that assume $1 etc. exist commonly relies on it).
func DefaultConfig() Config {
	return Config{
		MaxCacheEntries:    256,
		TrackLegacyStatics: true,
	}
}

// Validate reports whether c's fields are in range.
func (c Config) Validate() error {
	if c.MaxCacheEntries < 1 || c.MaxCacheEntries > 1_000_000 {
		return &ConfigError{Field: "MaxCacheEntries", Message: "must be between 1 and 1,000,000"}
	}
	return nil
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "yarrgo: invalid config: " + e.Field + ": " + e.Message
}

// compiled is the immutable artifact Compile produces; RegExp wraps one
// along with the mutable lastIndex ECMAScript attaches to RegExp
// instances (so the same compiled artifact can back many independent
// RegExp values, each with its own lastIndex).
type compiled struct {
	source   string
	flagsStr string
	flags    syntax.Flag
	pattern  *syntax.YarrPattern
	bp       *bytecode.BytecodePattern

	// nameBySubpatternID inverts pattern.GroupNames (subpattern id -> name).
	nameBySubpatternID map[int]string

	// pf drives nextCandidate: when non-nil, a non-sticky scan over
	// all-ASCII input can skip straight to the next position that could
	// possibly hold the match instead of invoking the vm at every
	// position in turn.
	pf prefilter.Prefilter
}

var (
	cacheMu    sync.Mutex
	cache      = map[string]*compiled{}
	cacheOrder []string
	cacheCfg   = DefaultConfig()
)

func cacheKey(source, flagsStr string) string {
	return flagsStr + "\x00" + source
}

func cacheLookup(source, flagsStr string) (*compiled, bool) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	c, ok := cache[cacheKey(source, flagsStr)]
	return c, ok
}

func cacheStore(c *compiled) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	key := cacheKey(c.source, c.flagsStr)
	if _, exists := cache[key]; exists {
		return
	}
	cache[key] = c
	cacheOrder = append(cacheOrder, key)
	if len(cacheOrder) > cacheCfg.MaxCacheEntries {
		evict := cacheOrder[0]
		cacheOrder = cacheOrder[1:]
		delete(cache, evict)
	}
}

// RegExp is a compiled ECMAScript regular expression.
//
// A RegExp is safe for concurrent read-only use (Test, and Exec under a
// global/sticky-free flag set); Exec on a global or sticky RegExp mutates
// LastIndex and so is not itself safe to call concurrently on the same
// value, matching how a shared mutable RegExp.lastIndex behaves in
// ECMAScript.
type RegExp struct {
	c *compiled

	// LastIndex mirrors RegExp.prototype.lastIndex: the offset Exec
	// resumes scanning from when Global or Sticky is set. Callers may
	// read or reset it directly.
	LastIndex int
}

// Compile parses source under the given flag letters (any of
// "dgimsuvy") and compiles it into a RegExp, consulting (and populating)
// the process-wide compiled-pattern cache.
func Compile(source, flagsStr string) (*RegExp, error) {
	return CompileWithConfig(source, flagsStr, cacheCfg)
}

// MustCompile is like Compile but panics on error.
func MustCompile(source, flagsStr string) *RegExp {
	re, err := Compile(source, flagsStr)
	if err != nil {
		panic("yarrgo: Compile(" + source + "): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles with an explicit Config. The config replaces
// the process-wide setting, so it also governs later Compile calls, cache
// eviction, and Exec's legacy-statics tracking.
func CompileWithConfig(source, flagsStr string, config Config) (*RegExp, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cacheMu.Lock()
	cacheCfg = config
	cacheMu.Unlock()

	if c, ok := cacheLookup(source, flagsStr); ok {
		return &RegExp{c: c}, nil
	}

	flags, ok := syntax.ParseFlags(flagsStr)
	if !ok {
		return nil, &syntax.ParseError{Code: syntax.InvalidRegularExpressionFlags}
	}
	pattern, err := syntax.Parse(source, flags)
	if err != nil {
		return nil, err
	}
	analyze.Analyze(pattern)
	bp, err := bytecode.Compile(pattern)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(pattern.GroupNames))
	for name, ids := range pattern.GroupNames {
		for _, id := range ids {
			names[id] = name
		}
	}

	pf := prefilter.FromSeq(literal.ExtractPrefixes(pattern))
	if pf == nil {
		if table, ok := literal.LeadingClassTable(pattern); ok {
			pf = prefilter.FromClassTable(table)
		}
	}

	c := &compiled{
		source: source, flagsStr: flagsStr, flags: flags, pattern: pattern, bp: bp,
		nameBySubpatternID: names,
		pf:                 pf,
	}
	cacheStore(c)
	return &RegExp{c: c}, nil
}

// Source returns the pattern text used to compile the RegExp.
func (r *RegExp) Source() string { return r.c.source }

// Flags returns the flag letters used to compile the RegExp, in
// canonical order.
func (r *RegExp) Flags() string { return r.c.flags.String() }

// Global reports whether the g flag is set.
func (r *RegExp) Global() bool { return r.c.flags.Has(syntax.Global) }

// Sticky reports whether the y flag is set.
func (r *RegExp) Sticky() bool { return r.c.flags.Has(syntax.Sticky) }

// IgnoreCase reports whether the i flag is set.
func (r *RegExp) IgnoreCase() bool { return r.c.flags.Has(syntax.IgnoreCase) }

// Multiline reports whether the m flag is set.
func (r *RegExp) Multiline() bool { return r.c.flags.Has(syntax.Multiline) }

// DotAll reports whether the s flag is set.
func (r *RegExp) DotAll() bool { return r.c.flags.Has(syntax.DotAll) }

// Unicode reports whether the u flag is set.
func (r *RegExp) Unicode() bool { return r.c.flags.Has(syntax.Unicode) }

// UnicodeSets reports whether the v flag is set.
func (r *RegExp) UnicodeSets() bool { return r.c.flags.Has(syntax.UnicodeSets) }

// HasIndices reports whether the d flag is set; when it is, a
// MatchResult additionally exposes Indices and IndicesGroups.
func (r *RegExp) HasIndices() bool { return r.c.flags.Has(syntax.HasIndices) }

// NumGroups returns the number of capturing groups (group 0, the whole
// match, is not counted).
func (r *RegExp) NumGroups() int { return r.c.pattern.NumSubpatterns }

// GroupNames returns the named capturing groups, each mapped to every
// subpattern id sharing that name (more than one only under the
// Unicode/UnicodeSets duplicate-name allowance).
func (r *RegExp) GroupNames() map[string][]int { return r.c.pattern.GroupNames }

// Test reports whether input contains a match, per
// %RegExp.prototype.test%. Like Exec, it advances LastIndex when Global
// or Sticky is set.
func (r *RegExp) Test(input string) bool {
	return r.Exec(input) != nil
}

// Exec runs %RegExp.prototype.exec%: search input (from LastIndex when
// Global or Sticky, else from 0), returning the match or nil. A
// successful Global/Sticky match advances LastIndex past it; a failed
// Global/Sticky search resets LastIndex to 0. A zero-width match always
// advances the next search position by one so Global loops terminate.
func (r *RegExp) Exec(input string) *MatchResult {
	runes := []rune(input)
	sticky := r.Sticky()
	global := r.Global()

	start := 0
	if global || sticky {
		start = r.LastIndex
	}

	for pos := start; pos <= len(runes); pos++ {
		if !sticky {
			pos = nextCandidate(r.c, runes, pos)
			if pos > len(runes) {
				break
			}
		}
		res, err := execAt(r.c, runes, pos)
		if err == nil && res != nil {
			if global || sticky {
				end := res.Offsets[1]
				if end == res.Offsets[0] {
					end++
				}
				r.LastIndex = end
			}
			m := newMatchResult(r, input, runes, res)
			if cacheCfg.TrackLegacyStatics {
				updateLegacyStatics(m)
			}
			return m
		}
		if sticky {
			break
		}
	}

	if global || sticky {
		r.LastIndex = 0
	}
	return nil
}

func execAt(c *compiled, runes []rune, pos int) (*vm.Result, error) {
	return vm.Exec(c.bp, runes, pos)
}

// nextCandidate returns the next position at or after pos that could
// possibly start a match, using c's prefilter when one is available.
// Scanning ASCII-only runes[pos:] for the pattern's required leading
// bytes lets a non-matching stretch of input be skipped entirely instead
// of invoking the vm once per position; a position past len(runes) means
// no further match is possible anywhere in the remaining input.
// Non-ASCII input or a pattern without a usable prefilter leaves pos
// untouched — the vm's own scan is always correct, this is only ever a
// skip-ahead.
func nextCandidate(c *compiled, runes []rune, pos int) int {
	if c.pf == nil || pos >= len(runes) {
		return pos
	}
	hay := asciiBytes(runes[pos:])
	if hay == nil {
		return pos
	}
	idx := c.pf.Find(hay, 0)
	if idx < 0 {
		return len(runes) + 1
	}
	return pos + idx
}

// asciiBytes returns runes as a byte slice when every rune is ASCII, or
// nil otherwise.
func asciiBytes(runes []rune) []byte {
	b := make([]byte, len(runes))
	for i, r := range runes {
		if r > 0x7f {
			return nil
		}
		b[i] = byte(r)
	}
	return b
}
