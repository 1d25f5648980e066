// Command portfolio is a terminal portfolio page whose counters type themselves
// out as they scroll into view.
package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/AnatoleLucet/reveal/clock"
	"github.com/AnatoleLucet/reveal/internal/config"
	"github.com/AnatoleLucet/reveal/internal/content"
	"github.com/AnatoleLucet/reveal/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("portfolio failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	flags, err := ParseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	if flags.ContentPath != "" {
		cfg.Content.Path = flags.ContentPath
	}
	if flags.LogFile != "" {
		cfg.Log.File = flags.LogFile
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	page := content.Default()
	if cfg.Content.Path != "" {
		page, err = content.Load(cfg.Content.Path)
		if err != nil {
			return err
		}
	}

	loop := clock.NewLoop(clock.Real())
	m := tui.New(tui.Options{
		Config:  cfg,
		Content: page,
		Loop:    loop,
		Logger:  logger,
	})
	defer m.Close()

	logger.Info("starting", "config", flags.ConfigPath, "content", cfg.Content.Path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	logger.Info("stopped")
	return nil
}

// newLogger logs to the configured file, or nowhere: the terminal belongs to the page.
func newLogger(c config.LogConfig) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}

	if c.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := tea.LogToFile(c.File, "portfolio")
	if err != nil {
		return nil, nil, err
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), func() { f.Close() }, nil
}
