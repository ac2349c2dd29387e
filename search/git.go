package search

import (
	"os"
	"path/filepath"
)

// FindGitRoot finds the git repository root directory starting from the given path
func FindGitRoot(startPath string) (string, bool) {
	path := startPath
	for {
		// .git is a file inside worktrees and submodules
		if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
			return path, true
		}

		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}

	return "", false
}

// ResolveWorkspace returns the workspace root to search.
// An explicit root wins; otherwise the git root of cwd is used.
// It reports false when neither is available.
func ResolveWorkspace(explicit, cwd string) (string, bool) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", false
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return "", false
		}
		return abs, true
	}
	if cwd == "" {
		return "", false
	}
	return FindGitRoot(cwd)
}
