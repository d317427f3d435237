package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/javipelopi/gridcast/pkg/config"
	"github.com/javipelopi/gridcast/pkg/epg"
	"github.com/javipelopi/gridcast/pkg/ui"
	"github.com/javipelopi/gridcast/pkg/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath    string
		backendURL string
	)

	cmd := &cobra.Command{
		Use:     "gridcast",
		Short:   "Terminal TV guide",
		Long:    "gridcast is a keyboard-driven program guide for the terminal:\nbrowse channels and schedules, search programs, and jump across days.",
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("gridcast is interactive and needs a terminal")
			}

			if cfgPath == "" {
				cfgPath = config.DefaultPath()
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if backendURL != "" {
				cfg.BackendURL = backendURL
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger := newLogger(cfg)
			logger.Info("starting gridcast",
				"version", version.Version,
				"backend", cfg.BackendURL)

			client := epg.NewClient(cfg.BackendURL, logger)
			model := ui.NewModel(client, cfg, logger)

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				logger.Error("program exited with error", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default ~/.config/gridcast/config.yaml)")
	cmd.Flags().StringVarP(&backendURL, "backend", "b", "", "guide backend base URL (overrides config)")
	return cmd
}

// newLogger builds the application logger. The TUI owns stdout, so logs go
// to a rotating file.
func newLogger(cfg config.Config) *slog.Logger {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler)
	}

	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	w := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
