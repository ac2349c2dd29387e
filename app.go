package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/takaishi/graphql-jump/config"
	"github.com/takaishi/graphql-jump/editor"
	"github.com/takaishi/graphql-jump/jump"
	"github.com/takaishi/graphql-jump/locator"
	"github.com/takaishi/graphql-jump/search"
)

// reportedError marks an error the user has already been notified about
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// app holds the collaborators shared by the commands
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	host   jump.StaticHost
	jumper *jump.Jumper
}

// notifierFunc picks the notification channel once the logger exists
type notifierFunc func(logger *slog.Logger) jump.Notifier

// newApp loads configuration and wires the jump commands
func newApp(cmd *cobra.Command, newNotifier notifierFunc, sel *jump.Selection) (*app, error) {
	v, err := config.New(cmd.Flags())
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	notifier := newNotifier(logger)

	runner := search.NewRunner(cfg.SearchOptions(logger))
	if err := runner.Check(); err != nil {
		notifier.Error(fmt.Sprintf("Search failed: %v", err))
		return nil, reported(err)
	}

	host := jump.StaticHost{Selection: sel}
	cwd, _ := os.Getwd()
	if root, ok := search.ResolveWorkspace(cfg.Workspace, cwd); ok {
		host.Root = root
	}
	logger.Debug("resolved workspace", "root", host.Root, "configured", cfg.Workspace)

	loc := locator.New(runner,
		locator.WithLogger(logger),
		locator.WithSearchHook(func(pattern, dir string) {
			notifier.Info(fmt.Sprintf("Searching: %s at %s", pattern, dir))
		}),
	)

	jumper := jump.New(jump.Deps{
		Host:      host,
		Locator:   loc,
		Navigator: editor.NewNavigator(cfg.Editor, host.Root),
		Notifier:  notifier,
		Words:     editor.WordAt,
		Logger:    logger,
	})

	return &app{cfg: cfg, logger: logger, host: host, jumper: jumper}, nil
}

// parseAt parses FILE:LINE:COL; the file part may itself contain colons
func parseAt(s string) (*jump.Selection, error) {
	colIdx := strings.LastIndex(s, ":")
	if colIdx <= 0 {
		return nil, fmt.Errorf("invalid position %q, want FILE:LINE:COL", s)
	}
	lineIdx := strings.LastIndex(s[:colIdx], ":")
	if lineIdx <= 0 {
		return nil, fmt.Errorf("invalid position %q, want FILE:LINE:COL", s)
	}

	line, err := strconv.Atoi(s[lineIdx+1 : colIdx])
	if err != nil || line < 1 {
		return nil, fmt.Errorf("invalid line in %q", s)
	}
	column, err := strconv.Atoi(s[colIdx+1:])
	if err != nil || column < 1 {
		return nil, fmt.Errorf("invalid column in %q", s)
	}

	return &jump.Selection{File: s[:lineIdx], Line: line, Column: column}, nil
}
