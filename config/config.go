package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/takaishi/graphql-jump/editor"
	"github.com/takaishi/graphql-jump/search"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. GRAPHQL_JUMP_EDITOR
	EnvPrefix = "GRAPHQL_JUMP"

	// FileName is the optional config file looked up in the working directory (.graphql-jump.yaml)
	FileName = ".graphql-jump"
)

// Config holds application configuration
type Config struct {
	Workspace   string
	Editor      editor.Editor
	RgPath      string
	Timeout     time.Duration
	ExcludeGlob string
	Extensions  []string
	LogLevel    slog.Level
}

// RegisterFlags adds the global flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("workspace", "", "Workspace root (default: git root of the current directory)")
	fs.String("editor", "", "Editor to use (cursor or code, default: auto-detect)")
	fs.String("rg-path", search.DefaultRgPath, "Path to the ripgrep binary")
	fs.Duration("timeout", search.DefaultTimeout, "Timeout for each search")
	fs.String("exclude-glob", search.DefaultExcludeGlob, "Glob excluding files from the search")
	fs.StringSlice("extensions", search.DefaultExtensions, "GraphQL file extensions")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
}

// New creates a viper instance bound to fs, the environment and the optional config file
func New(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

// Load reads and validates the configuration
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Workspace:   v.GetString("workspace"),
		Editor:      editor.Editor(v.GetString("editor")),
		RgPath:      v.GetString("rg-path"),
		Timeout:     v.GetDuration("timeout"),
		ExcludeGlob: v.GetString("exclude-glob"),
		Extensions:  splitList(v.GetStringSlice("extensions")),
	}

	if cfg.Editor != "" && !cfg.Editor.Valid() {
		return nil, fmt.Errorf("unknown editor %q (cursor or code)", cfg.Editor)
	}
	if cfg.RgPath == "" {
		return nil, errors.New("rg-path must not be empty")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if len(cfg.Extensions) == 0 {
		return nil, errors.New("at least one extension is required")
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid log-level: %w", err)
	}

	return cfg, nil
}

// SearchOptions converts the configuration for search.NewRunner
func (c *Config) SearchOptions(logger *slog.Logger) search.Options {
	return search.Options{
		RgPath:      c.RgPath,
		Extensions:  c.Extensions,
		ExcludeGlob: c.ExcludeGlob,
		Timeout:     c.Timeout,
		Logger:      logger,
	}
}

// splitList flattens comma separated entries coming from env vars or files
func splitList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimPrefix(strings.TrimSpace(part), "."); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
