package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/spider/internal/config"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// Globals are the flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"spider.hcl" help:"Path to the HCL config file"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colour output"`
}

func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (g *Globals) level(cfg *config.Config) log.Level {
	if g.Debug {
		return log.DebugLevel
	}
	return cfg.LogLevel()
}

// newLogger writes to w with the given level
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "spider",
	})
}

// openLogFile opens filename for appending
func openLogFile(filename string) (*os.File, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// firstSeed returns the flag seed if set, then the config seed
func firstSeed(flag, configured *int64) *int64 {
	if flag != nil {
		return flag
	}
	return configured
}
