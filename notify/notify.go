// Package notify is the user-facing message channel.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level classifies a notification
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Console writes styled notifications to a terminal stream
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[Level]lipgloss.Style
}

// NewConsole creates a Console. Colors are used only when w is a color terminal.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w: w,
		styles: map[Level]lipgloss.Style{
			LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
			LevelError: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		},
	}
}

func (c *Console) Info(msg string)  { c.write(LevelInfo, msg) }
func (c *Console) Warn(msg string)  { c.write(LevelWarn, msg) }
func (c *Console) Error(msg string) { c.write(LevelError, msg) }

func (c *Console) write(level Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", c.styles[level].Render(level.String()+":"), msg)
}

// Log forwards notifications to a logger. Used when stdout carries a protocol.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Info(msg string)  { l.Logger.Info(msg, "channel", "notify") }
func (l Log) Warn(msg string)  { l.Logger.Warn(msg, "channel", "notify") }
func (l Log) Error(msg string) { l.Logger.Error(msg, "channel", "notify") }

// Quiet drops info notifications and passes the rest through
type Quiet struct {
	Next interface {
		Warn(string)
		Error(string)
	}
}

func (q Quiet) Info(string)      {}
func (q Quiet) Warn(msg string)  { q.Next.Warn(msg) }
func (q Quiet) Error(msg string) { q.Next.Error(msg) }
