package search

import "strings"

// suffixes are removed in this order; each removal sees the result of the previous one.
var suffixes = []string{"Query", "Mutation", "Fragment", "Subscription"}

// Normalize strips a trailing operation/type suffix from term so that
// generated type names such as UserQuery map back to the declared name User.
// A term that would be emptied (e.g. "Query") is returned unchanged.
func Normalize(term string) string {
	base := term
	for _, suffix := range suffixes {
		base = strings.TrimSuffix(base, suffix)
	}
	if base == "" {
		return term
	}
	return base
}
