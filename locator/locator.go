// Package locator finds the declaration of a GraphQL construct with a
// two-stage text search: keyword-qualified first, then bare word boundary.
package locator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/takaishi/graphql-jump/search"
)

// ErrNoMatches is returned when neither stage produced a line
var ErrNoMatches = errors.New("no matches")

// ParseError reports that the first result line was not `path:line:col:...`
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse search output %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Searcher runs one search and returns raw `path:line:col:content` lines.
// An empty slice means no matches.
type Searcher interface {
	Search(ctx context.Context, dir, pattern string) ([]string, error)
}

// Stage identifies which search produced the result
type Stage int

const (
	StageNone Stage = iota
	StageOperation
	StageWord
)

func (s Stage) String() string {
	switch s {
	case StageOperation:
		return "operation"
	case StageWord:
		return "word"
	default:
		return "none"
	}
}

// MarshalText renders the stage name in JSON and YAML output
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a stage name written by MarshalText
func (s *Stage) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*s = StageNone
	case "operation":
		*s = StageOperation
	case "word":
		*s = StageWord
	default:
		return fmt.Errorf("unknown stage %q", text)
	}
	return nil
}

// Result is the outcome of a successful lookup.
// Lines holds every line of the winning stage in search-tool order; Hit is parsed from Lines[0].
type Result struct {
	Base    string     `json:"base" yaml:"base"`
	Stage   Stage      `json:"stage" yaml:"stage"`
	Pattern string     `json:"pattern" yaml:"pattern"`
	Hit     search.Hit `json:"hit" yaml:"hit"`
	Lines   []string   `json:"lines" yaml:"lines"`
}

// Option configures a Locator
type Option func(*Locator)

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// WithSearchHook registers fn to be called before every search
func WithSearchHook(fn func(pattern, dir string)) Option {
	return func(l *Locator) {
		l.onSearch = fn
	}
}

// Locator runs the two-stage lookup
type Locator struct {
	searcher Searcher
	logger   *slog.Logger
	onSearch func(pattern, dir string)
}

// New creates a Locator backed by searcher
func New(searcher Searcher, opts ...Option) *Locator {
	l := &Locator{
		searcher: searcher,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate searches dir for the declaration of base.
//
// Errors: ErrNoMatches when both stages are empty, *ParseError when the first
// line is malformed, or the searcher's error (stage 2 is not attempted after a
// stage 1 failure).
func (l *Locator) Locate(ctx context.Context, dir, base string) (*Result, error) {
	stages := []struct {
		stage   Stage
		pattern string
	}{
		{StageOperation, search.OperationPattern(base)},
		{StageWord, search.WordPattern(base)},
	}

	for _, st := range stages {
		if l.onSearch != nil {
			l.onSearch(st.pattern, dir)
		}

		lines, err := l.searcher.Search(ctx, dir, st.pattern)
		if err != nil {
			return nil, fmt.Errorf("%s search: %w", st.stage, err)
		}
		if len(lines) == 0 {
			l.logger.Debug("stage empty", "stage", st.stage.String(), "base", base)
			continue
		}

		l.logger.Debug("first hit", "stage", st.stage.String(), "line", lines[0], "total", len(lines))
		result, err := search.ParseLine(lines[0])
		if err != nil {
			return nil, &ParseError{Line: lines[0], Err: err}
		}

		return &Result{
			Base:    base,
			Stage:   st.stage,
			Pattern: st.pattern,
			Hit:     result.Hit(),
			Lines:   lines,
		}, nil
	}

	return nil, ErrNoMatches
}
