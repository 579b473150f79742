// Package matcher finds which of a fixed list of terms occur in a text
// terms and text are folded by the normalize package, so matching is case and width insensitive
package matcher

import (
	"gracewell/internal/core/normalize"
)

// Matcher is immutable after New and safe for concurrent use
type Matcher struct {
	terms []string
	ac    *automaton
}

// New compiles terms; blank terms never match and duplicates keep their first position
func New(terms []string) *Matcher {
	m := &Matcher{terms: append([]string(nil), terms...), ac: newAutomaton()}
	seen := make(map[string]struct{}, len(terms))
	for i, t := range terms {
		f := normalize.Fold(t)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		m.ac.add([]byte(f), i)
	}
	m.ac.build()
	return m
}

// Terms returns the terms as configured
func (m *Matcher) Terms() []string { return append([]string(nil), m.terms...) }

// Find returns the distinct terms present in text, in term list order
func (m *Matcher) Find(text string) []string {
	hit := make([]bool, len(m.terms))
	m.ac.scan([]byte(normalize.Fold(text)), func(id int) bool {
		hit[id] = true
		return true
	})
	var out []string
	for i, ok := range hit {
		if ok {
			out = append(out, m.terms[i])
		}
	}
	return out
}

// Count returns how many distinct terms occur in text
func (m *Matcher) Count(text string) int { return len(m.Find(text)) }
