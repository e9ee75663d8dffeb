package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Play       PlayCmd          `cmd:"" default:"withargs" help:"Play spider solitaire in the terminal"`
	Serve      ServeCmd         `cmd:"" help:"Serve games to browsers over WebSocket"`
	Simulate   SimulateCmd      `cmd:"" help:"Play many games with a greedy policy and report results"`
	InitConfig InitConfigCmd    `cmd:"init-config" help:"Write the default configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("spider"),
		kong.Description("One-suit spider solitaire"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
