package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

// Editor represents an editor type
type Editor string

const (
	EditorCursor Editor = "cursor"
	EditorCode   Editor = "code"
)

// Valid reports whether e is a known editor
func (e Editor) Valid() bool {
	return e == EditorCursor || e == EditorCode
}

// DetectEditor detects which editor is available
func DetectEditor() (Editor, error) {
	// Check for cursor first
	if _, err := exec.LookPath("cursor"); err == nil {
		return EditorCursor, nil
	}

	if _, err := exec.LookPath("code"); err == nil {
		return EditorCode, nil
	}

	return "", fmt.Errorf("no editor found (cursor or code)")
}

// Navigator opens a file in the editor with the caret at a 1-based position.
// The editor centers the target line when opened with --goto.
type Navigator struct {
	Editor Editor
	Root   string // relative paths resolve against this

	// start launches the command; replaced in tests
	start func(cmd *exec.Cmd) error
}

// NewNavigator creates a Navigator. An empty editor is detected on first use.
func NewNavigator(ed Editor, root string) *Navigator {
	return &Navigator{Editor: ed, Root: root, start: startDetached}
}

// Resolve returns the absolute path of file
func (n *Navigator) Resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(n.Root, file)
}

// Navigate opens file at line and column
func (n *Navigator) Navigate(ctx context.Context, file string, line, column int) error {
	path := n.Resolve(file)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("failed to open %s: is a directory", path)
	}
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}

	ed := n.Editor
	if ed == "" {
		if ed, err = DetectEditor(); err != nil {
			return err
		}
	}

	reuse := hasExistingInstance(ed) || isRunningInEditor()

	// On macOS the URL scheme reaches an already running Cursor more reliably than the CLI
	if runtime.GOOS == "darwin" && reuse && ed == EditorCursor {
		cmd := exec.CommandContext(ctx, "open", "-u", fmt.Sprintf("cursor://file/%s:%d:%d", path, line, column))
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	start := n.start
	if start == nil {
		start = startDetached
	}
	if err := start(exec.Command(string(ed), GotoArgs(path, line, column, reuse)...)); err != nil {
		return fmt.Errorf("failed to launch %s: %w", ed, err)
	}
	return nil
}

// GotoArgs builds the editor CLI arguments for a jump
func GotoArgs(path string, line, column int, reuse bool) []string {
	args := []string{"--goto", fmt.Sprintf("%s:%d:%d", path, line, column)}
	if reuse {
		args = append([]string{"--reuse-window"}, args...)
	}
	return args
}

// startDetached starts cmd without waiting for it to exit
func startDetached(cmd *exec.Cmd) error {
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// isRunningInEditor checks if the process is running inside a Cursor or VS Code terminal
func isRunningInEditor() bool {
	if ipcHook := os.Getenv("VSCODE_IPC_HOOK"); ipcHook != "" {
		if _, err := os.Stat(ipcHook); err == nil || strings.HasSuffix(ipcHook, ".sock") {
			return true
		}
	}

	for _, env := range []string{"CURSOR_PID", "VSCODE_PID"} {
		if pid := os.Getenv(env); pid != "" && processExists(pid) {
			return true
		}
	}

	return os.Getenv("CURSOR_AGENT") != ""
}

// hasExistingInstance looks for an IPC socket of a running editor
func hasExistingInstance(ed Editor) bool {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return false
	}

	appDir, dotDir := "Code", ".vscode"
	if ed == EditorCursor {
		appDir, dotDir = "Cursor", ".cursor"
	}

	for _, pattern := range []string{
		filepath.Join(homeDir, "Library", "Application Support", appDir, "*.sock"),
		filepath.Join(homeDir, dotDir, "*.sock"),
	} {
		if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// processExists checks if a process with the given PID exists
func processExists(pidStr string) bool {
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return false
	}

	// Signal 0 only checks for existence
	if runtime.GOOS != "windows" {
		return syscall.Kill(pid, 0) == nil
	}

	process, err := os.FindProcess(pid)
	return err == nil && process != nil
}
