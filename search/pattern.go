package search

import (
	"regexp"
	"strings"
)

// Keywords that introduce a named GraphQL construct
var Keywords = []string{"query", "mutation", "subscription", "fragment", "enum"}

// OperationPattern matches a declaration such as `fragment User on ...`.
// The identifier is escaped, so metacharacters in it are matched literally.
func OperationPattern(base string) string {
	return `\b(` + strings.Join(Keywords, "|") + `)\s+` + regexp.QuoteMeta(base) + `\b`
}

// WordPattern matches base as a whole word anywhere
func WordPattern(base string) string {
	return `\b` + regexp.QuoteMeta(base) + `\b`
}
