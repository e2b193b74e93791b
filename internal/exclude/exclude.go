// Package exclude implements C11: matching a declared API's qualified
// name against the exclusion list (spec.md §6's exclusion list).
// Grounded on core/filewalker.go's doublestar.PathMatch use for ignore
// patterns during traversal, repurposed here from filesystem paths to
// dotted qualified names.
package exclude

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher holds one compiled exclusion list. Patterns are either a glob
// (matched with doublestar against the whole dotted name; doublestar only
// treats "/" as a separator, so "*" also matches across "." boundaries)
// or, prefixed with "re:", a regular expression escape hatch for names a
// glob can't express.
type Matcher struct {
	globs   []string
	regexes []*regexp.Regexp
}

// New compiles patterns into a Matcher. A malformed "re:" pattern is
// skipped rather than failing the whole run — an unusable single
// exclusion entry should not block diffing an entire header.
func New(patterns []string) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		if rest, ok := strings.CutPrefix(p, "re:"); ok {
			re, err := regexp.Compile(rest)
			if err != nil {
				continue
			}
			m.regexes = append(m.regexes, re)
			continue
		}
		m.globs = append(m.globs, p)
	}
	return m
}

// Match reports whether qualifiedName itself is excluded by any pattern.
// It does not look at enclosing scopes; MatchAny does, and MatchAny is the
// predicate the orchestrator hands to the tree diff engine.
func (m *Matcher) Match(qualifiedName string) bool {
	for _, g := range m.globs {
		if ok, err := doublestar.Match(g, qualifiedName); err == nil && ok {
			return true
		}
	}
	for _, re := range m.regexes {
		if re.MatchString(qualifiedName) {
			return true
		}
	}
	return false
}

// MatchAny reports whether qualifiedName or any of its enclosing scopes
// (every non-empty prefix ending at a Separator boundary) is excluded,
// implementing exclusion propagation to descendants.
func (m *Matcher) MatchAny(qualifiedName string) bool {
	name := qualifiedName
	for {
		if m.Match(name) {
			return true
		}
		idx := strings.LastIndex(name, ".")
		if idx < 0 {
			return false
		}
		name = name[:idx]
	}
}
