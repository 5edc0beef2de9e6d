package domain

import "sort"

// TokenSet is a set of push tokens. A token is present at most once no
// matter how many sources contributed it.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from the given tokens, ignoring empty strings.
func NewTokenSet(tokens ...string) TokenSet {
	s := make(TokenSet, len(tokens))
	s.Add(tokens...)
	return s
}

// Add inserts tokens into the set.
func (s TokenSet) Add(tokens ...string) {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		s[t] = struct{}{}
	}
}

// Union returns a new set holding the members of every given set.
func Union(sets ...TokenSet) TokenSet {
	out := make(TokenSet)
	for _, s := range sets {
		for t := range s {
			out[t] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
