package jump

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWorkspace means no workspace root is configured
	ErrNoWorkspace = errors.New("no workspace folder found")

	// ErrNoActiveContext means there is no caret to take the term from
	ErrNoActiveContext = errors.New("no active editor")

	// ErrNoWordAtCursor means the caret is not on a word
	ErrNoWordAtCursor = fmt.Errorf("%w: no word at cursor position", ErrNoActiveContext)

	// ErrEmptySearchTerm means the term resolved to nothing usable
	ErrEmptySearchTerm = errors.New("no search term provided")
)

// NavigationError reports that the target could not be opened
type NavigationError struct {
	Path string
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}
