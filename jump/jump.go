// Package jump implements the two host commands that jump from a term, or
// the word under the caret, to the GraphQL declaration it names.
//
// Every failure is reported once through the Notifier and then returned, so
// callers only translate the error into an exit status or protocol error.
package jump

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/takaishi/graphql-jump/locator"
	"github.com/takaishi/graphql-jump/search"
)

// Locator finds the declaration of a base identifier under dir
type Locator interface {
	Locate(ctx context.Context, dir, base string) (*locator.Result, error)
}

// Navigator opens an absolute path at a 1-based line and column
type Navigator interface {
	Navigate(ctx context.Context, path string, line, column int) error
}

// Notifier is the user-facing message channel
type Notifier interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// WordFunc returns the word at a 1-based position of the file at path
type WordFunc func(path string, line, column int) (string, bool, error)

// Deps are the collaborators of a Jumper
type Deps struct {
	Host      Host
	Locator   Locator
	Navigator Navigator
	Notifier  Notifier
	Words     WordFunc
	Logger    *slog.Logger
}

// Jumper runs the commands
type Jumper struct {
	deps Deps
}

// New creates a Jumper
func New(deps Deps) *Jumper {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Jumper{deps: deps}
}

// WithHost returns a copy of j reading context from h
func (j *Jumper) WithHost(h Host) *Jumper {
	deps := j.deps
	deps.Host = h
	return &Jumper{deps: deps}
}

// Outcome describes where a lookup landed
type Outcome struct {
	Term   string          `json:"term" yaml:"term"`
	Root   string          `json:"root" yaml:"root"`
	Path   string          `json:"path" yaml:"path"` // absolute path of Result.Hit.File
	Result *locator.Result `json:"result" yaml:"result"`
}

// GoGraphql jumps to the declaration named by term. An empty term falls
// back to the word under the caret.
func (j *Jumper) GoGraphql(ctx context.Context, term string) (*Outcome, error) {
	if term == "" {
		word, err := j.wordAtCursor()
		if err != nil {
			return nil, err
		}
		term = word
	}

	out, err := j.Find(ctx, term)
	if err != nil {
		return nil, err
	}

	if err := j.Jump(ctx, out, out.Result.Hit); err != nil {
		return out, err
	}
	return out, nil
}

// GoGraphqlCurrentWord jumps to the declaration named by the word under the caret
func (j *Jumper) GoGraphqlCurrentWord(ctx context.Context) (*Outcome, error) {
	return j.GoGraphql(ctx, "")
}

// Find resolves term to a declaration without navigating
func (j *Jumper) Find(ctx context.Context, term string) (*Outcome, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, j.fail(ErrEmptySearchTerm, "No search term provided")
	}

	root, ok := j.deps.Host.WorkspaceRoot()
	if !ok {
		return nil, j.fail(ErrNoWorkspace, "No workspace folder found")
	}

	base := search.Normalize(term)
	j.deps.Logger.Debug("searching for GraphQL definition", "base", base, "term", term, "root", root)

	result, err := j.deps.Locator.Locate(ctx, root, base)
	if err != nil {
		var parseErr *locator.ParseError
		switch {
		case errors.Is(err, locator.ErrNoMatches):
			j.deps.Notifier.Warn(fmt.Sprintf("No matches: %s (.graphql only, excluding *persisted*)", base))
			return nil, err
		case errors.As(err, &parseErr):
			return nil, j.fail(err, "Failed to parse ripgrep output")
		default:
			return nil, j.fail(err, fmt.Sprintf("Search failed: %v", err))
		}
	}

	return &Outcome{
		Term:   term,
		Root:   root,
		Path:   resolve(root, result.Hit.File),
		Result: result,
	}, nil
}

// Jump opens hit, which belongs to out
func (j *Jumper) Jump(ctx context.Context, out *Outcome, hit search.Hit) error {
	path := resolve(out.Root, hit.File)
	j.deps.Logger.Debug("opening file", "path", path, "line", hit.Line, "column", hit.Column)

	if err := j.deps.Navigator.Navigate(ctx, path, hit.Line, max(hit.Column, 1)); err != nil {
		navErr := &NavigationError{Path: path, Err: err}
		return j.fail(navErr, fmt.Sprintf("Failed to open file: %v", err))
	}

	j.deps.Notifier.Info(fmt.Sprintf("Jumped to %s:%d:%d", filepath.Base(hit.File), hit.Line, hit.Column))
	return nil
}

// wordAtCursor extracts the term from the active selection
func (j *Jumper) wordAtCursor() (string, error) {
	sel, ok := j.deps.Host.ActiveSelection()
	if !ok || sel.File == "" {
		return "", j.fail(ErrNoActiveContext, "No active editor")
	}

	path := sel.File
	if root, ok := j.deps.Host.WorkspaceRoot(); ok {
		path = resolve(root, sel.File)
	}

	word, found, err := j.deps.Words(path, sel.Line, sel.Column)
	if err != nil {
		return "", j.fail(fmt.Errorf("%w: %v", ErrNoActiveContext, err), fmt.Sprintf("No active editor: %v", err))
	}
	if !found {
		return "", j.fail(ErrNoWordAtCursor, "No word at cursor position")
	}

	j.deps.Logger.Debug("word at cursor", "word", word, "file", path, "line", sel.Line, "column", sel.Column)
	return word, nil
}

// fail notifies msg and returns err
func (j *Jumper) fail(err error, msg string) error {
	j.deps.Logger.Debug("command failed", "error", err)
	j.deps.Notifier.Error(msg)
	return err
}

func resolve(root, file string) string {
	if filepath.IsAbs(file) || root == "" {
		return file
	}
	return filepath.Join(root, file)
}
