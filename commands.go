package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/takaishi/graphql-jump/jump"
	"github.com/takaishi/graphql-jump/locator"
	"github.com/takaishi/graphql-jump/notify"
	"github.com/takaishi/graphql-jump/preview"
	"github.com/takaishi/graphql-jump/search"
	"github.com/takaishi/graphql-jump/server"
	"github.com/takaishi/graphql-jump/tui"
)

func consoleNotifier(*slog.Logger) jump.Notifier {
	return notify.NewConsole(os.Stderr)
}

func logNotifier(logger *slog.Logger) jump.Notifier {
	return notify.Log{Logger: logger}
}

// selectionFlag reads --at when it was given
func selectionFlag(cmd *cobra.Command) (*jump.Selection, error) {
	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		return nil, nil
	}
	return parseAt(at)
}

// newGoCmd creates the "go" command.
func newGoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "go [TERM]",
		Short: "Jump to the GraphQL definition named by TERM",
		Long:  "Go strips a Query/Mutation/Fragment/Subscription suffix from TERM and opens the matching declaration. Without TERM the word at --at is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selectionFlag(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cmd, consoleNotifier, sel)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			var term string
			if len(args) == 1 {
				term = args[0]
			}
			_, err = a.jumper.GoGraphql(ctx, term)
			return reported(err)
		},
	}
	cmd.Flags().String("at", "", "Caret position FILE:LINE:COL used when TERM is omitted")
	return cmd
}

// newWordCmd creates the "word" command.
func newWordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Jump to the GraphQL definition named by the word at a caret position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selectionFlag(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cmd, consoleNotifier, sel)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			_, err = a.jumper.GoGraphqlCurrentWord(ctx)
			return reported(err)
		},
	}
	cmd.Flags().String("at", "", "Caret position FILE:LINE:COL (FILE relative to the workspace)")
	cmd.MarkFlagRequired("at")
	return cmd
}

// newLocateCmd creates the "locate" command.
func newLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate TERM",
		Short: "Print the GraphQL definition named by TERM without opening it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			withPreview, _ := cmd.Flags().GetBool("preview")
			if format != "text" && format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (text, json or yaml)", format)
			}

			a, err := newApp(cmd, func(*slog.Logger) jump.Notifier {
				return notify.Quiet{Next: notify.NewConsole(os.Stderr)}
			}, nil)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			out, err := a.jumper.Find(ctx, args[0])
			if err != nil {
				return reported(err)
			}

			report := newLocateReport(out)
			if withPreview {
				p, err := preview.LoadPreview(out.Path, out.Result.Hit.Line)
				if err != nil {
					a.logger.Warn("failed to load preview", "path", out.Path, "error", err)
				}
				report.Preview = p
			}
			return writeReport(cmd.OutOrStdout(), format, report)
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().Bool("preview", false, "Include lines around the hit")
	return cmd
}

// locateReport is the output of the locate command
type locateReport struct {
	Term    string           `json:"term" yaml:"term"`
	Root    string           `json:"root" yaml:"root"`
	Path    string           `json:"path" yaml:"path"`
	Result  *locator.Result  `json:"result" yaml:"result"`
	Preview *preview.Preview `json:"preview,omitempty" yaml:"preview,omitempty"`
}

func newLocateReport(out *jump.Outcome) locateReport {
	return locateReport{Term: out.Term, Root: out.Root, Path: out.Path, Result: out.Result}
}

func writeReport(w io.Writer, format string, report locateReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}

	result := report.Result
	hit := result.Hit
	fmt.Fprintf(w, "%s:%d:%d (%s stage, %d matching lines)\n", hit.File, hit.Line, hit.Column, result.Stage, len(result.Lines))
	if len(result.Lines) > 1 {
		fmt.Fprintf(w, "  %s\n", strings.Join(result.Lines[1:], "\n  "))
	}
	if report.Preview != nil {
		fmt.Fprintf(w, "\n%s", report.Preview)
	}
	return nil
}

// newPickCmd creates the "pick" command.
func newPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick TERM",
		Short: "Choose among every match for TERM and open the selected one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, func(*slog.Logger) jump.Notifier {
				return notify.Quiet{Next: notify.NewConsole(os.Stderr)}
			}, nil)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			out, err := a.jumper.Find(ctx, args[0])
			if err != nil {
				return reported(err)
			}

			chosen, err := tui.Pick(ctx, out.Result.Base, out.Root, search.ParseLines(out.Result.Lines))
			if err != nil {
				return err
			}
			if chosen == nil {
				return nil
			}
			return reported(a.jumper.Jump(ctx, out, chosen.Hit()))
		},
	}
}

// newServeCmd creates the "serve" command.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the jump commands as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, notifications go to the log
			a, err := newApp(cmd, logNotifier, nil)
			if err != nil {
				return err
			}

			a.logger.Info("graphql-jump MCP server starting", "root", a.host.Root)
			s := server.New(server.NewHandler(a.jumper, a.host), version)
			if err := mcpserver.ServeStdio(s); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}
