package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// hitPrefix is the `path:line:column:` head of an rg line. The path may not contain a colon.
var hitPrefix = regexp.MustCompile(`^([^:]+):(\d+):(\d+):`)

// ParseLine parses a single line of ripgrep output
// Format: file:line:column:text
func ParseLine(line string) (*SearchResult, error) {
	m := hitPrefix.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("invalid rg line format: %q", line)
	}

	lineNum, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("invalid line number: %s", m[2])
	}

	columnNum, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, fmt.Errorf("invalid column number: %s", m[3])
	}

	return &SearchResult{
		File:   m[1],
		Line:   lineNum,
		Column: columnNum,
		Text:   line[len(m[0]):],
	}, nil
}

// ParseLines parses every line, skipping the ones that do not parse
func ParseLines(lines []string) []*SearchResult {
	results := make([]*SearchResult, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result, err := ParseLine(line)
		if err != nil {
			continue
		}
		results = append(results, result)
	}

	return results
}
