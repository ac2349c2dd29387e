package preview

// Preview represents a code preview with context lines
type Preview struct {
	File      string   `json:"file" yaml:"file"`
	StartLine int      `json:"start_line" yaml:"start_line"`
	Lines     []string `json:"lines" yaml:"lines"`
	HitLine   int      `json:"hit_line" yaml:"hit_line"` // 1-based index into Lines of the matched line
}
