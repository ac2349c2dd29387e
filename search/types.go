package search

// SearchResult represents a single line of ripgrep output
type SearchResult struct {
	File   string // as emitted by rg, usually relative to the workspace root
	Line   int    // 1-based
	Column int    // 1-based
	Text   string // matched line
}

// Hit is the destination derived from a search result
type Hit struct {
	File   string `json:"file" yaml:"file"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// Hit drops the matched text
func (r *SearchResult) Hit() Hit {
	return Hit{File: r.File, Line: r.Line, Column: r.Column}
}
