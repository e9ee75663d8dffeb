// Package config loads the HCL configuration shared by the spider commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = "spider.hcl"

// Config represents the complete configuration
type Config struct {
	Game   GameSettings
	Log    LogSettings
	Server ServerSettings
	UI     UISettings
}

// GameSettings controls how games are dealt and played
type GameSettings struct {
	// Seed makes every new game reproducible; nil picks a random seed
	Seed       *int64 `hcl:"seed,optional"`
	StrictDeal bool   `hcl:"strict_deal,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// ServerSettings controls the websocket server
type ServerSettings struct {
	Address string `hcl:"address,optional"`
}

// UISettings controls the terminal interface
type UISettings struct {
	ShowTimer *bool  `hcl:"show_timer,optional"`
	Theme     string `hcl:"theme,optional"`
}

// fileConfig mirrors Config with optional blocks
type fileConfig struct {
	Game   *GameSettings   `hcl:"game,block"`
	Log    *LogSettings    `hcl:"log,block"`
	Server *ServerSettings `hcl:"server,block"`
	UI     *UISettings     `hcl:"ui,block"`
}

var (
	validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validThemes    = map[string]bool{"default": true, "dark": true, "light": true}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	showTimer := true
	return &Config{
		Log: LogSettings{
			Level: "info",
			File:  "spider.log",
		},
		Server: ServerSettings{
			Address: ":8080",
		},
		UI: UISettings{
			ShowTimer: &showTimer,
			Theme:     "default",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults. The result is validated.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	if raw.Game != nil {
		config.Game = *raw.Game
	}
	if raw.Log != nil {
		config.Log = *raw.Log
	}
	if raw.Server != nil {
		config.Server = *raw.Server
	}
	if raw.UI != nil {
		config.UI = *raw.UI
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.UI.ShowTimer == nil {
		c.UI.ShowTimer = defaults.UI.ShowTimer
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Log.File == "" {
		return fmt.Errorf("log file is required")
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}
	return nil
}

// LogLevel returns the configured log level
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// TimerEnabled reports whether the play clock is shown
func (c *Config) TimerEnabled() bool {
	return c.UI.ShowTimer == nil || *c.UI.ShowTimer
}

// Render formats the configuration as an HCL document that Load accepts
func (c *Config) Render() []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	game := root.AppendNewBlock("game", nil).Body()
	if c.Game.Seed != nil {
		game.SetAttributeValue("seed", cty.NumberIntVal(*c.Game.Seed))
	}
	game.SetAttributeValue("strict_deal", cty.BoolVal(c.Game.StrictDeal))
	root.AppendNewline()

	logBlock := root.AppendNewBlock("log", nil).Body()
	logBlock.SetAttributeValue("level", cty.StringVal(c.Log.Level))
	logBlock.SetAttributeValue("file", cty.StringVal(c.Log.File))
	root.AppendNewline()

	server := root.AppendNewBlock("server", nil).Body()
	server.SetAttributeValue("address", cty.StringVal(c.Server.Address))
	root.AppendNewline()

	ui := root.AppendNewBlock("ui", nil).Body()
	ui.SetAttributeValue("show_timer", cty.BoolVal(c.TimerEnabled()))
	ui.SetAttributeValue("theme", cty.StringVal(c.UI.Theme))

	return hclwrite.Format(f.Bytes())
}
