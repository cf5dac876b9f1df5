// Package filtering turns option filter words and user queries into the
// normalized strings used for matching in the available and selected panes.
package filtering

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MatchMode selects how a normalized query is tested against filter text.
type MatchMode int

const (
	// MatchSubstring reports a match when the whole query occurs anywhere in
	// the filter text.
	MatchSubstring MatchMode = iota
	// MatchWords reports a match when every query word occurs inside at
	// least one filter-text word.
	MatchWords
)

func (m MatchMode) String() string {
	switch m {
	case MatchWords:
		return "words"
	default:
		return "substring"
	}
}

// ParseMatchMode maps a configuration value onto a MatchMode. The empty
// string selects MatchSubstring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, nil
	case "words":
		return MatchWords, nil
	default:
		return MatchSubstring, fmt.Errorf("unknown match mode %q", s)
	}
}

// FilterText cleans up a set of filter words: each word is trimmed and
// lower-cased, empty words are dropped and the survivors are joined with a
// single space. An empty result means the option has no custom filter text.
func FilterText(words []string) string {
	var b strings.Builder
	for _, w := range words {
		clean := strings.ToLower(strings.TrimSpace(w))
		if clean == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(clean)
	}
	return b.String()
}

// Source returns the string an option is matched against: its cleaned filter
// words, or when no word survives its label normalized like a query, so the
// exact label typed as a query always matches.
func Source(label string, words []string) string {
	if text := FilterText(words); text != "" {
		return text
	}
	return NormalizeQuery(label)
}

// NormalizeQuery lower-cases and trims a query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Match reports whether query selects an option with the given source text.
// The query is normalized first; an empty query matches everything.
func Match(source, query string, mode MatchMode) bool {
	q := NormalizeQuery(query)
	if q == "" {
		return true
	}
	src := strings.ToLower(source)
	if mode != MatchWords {
		return strings.Contains(src, q)
	}
	srcWords := strings.Fields(src)
	for _, qw := range strings.Fields(q) {
		found := false
		for _, sw := range srcWords {
			if strings.Contains(sw, qw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Closest returns the label nearest to query by edit distance. Ties keep the
// earliest label. ok is false when query is empty or there are no labels.
func Closest(query string, labels []string) (label string, ok bool) {
	q := NormalizeQuery(query)
	if q == "" || len(labels) == 0 {
		return "", false
	}
	best := -1
	for _, l := range labels {
		d := levenshtein.ComputeDistance(q, strings.ToLower(strings.TrimSpace(l)))
		if best < 0 || d < best {
			best = d
			label = l
		}
	}
	return label, true
}
