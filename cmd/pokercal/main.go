package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/lox/pokercal/cmd/pokercal/shared"
)

// version is set by ldflags during build
var version = "dev"

type Globals struct {
	Debug     bool   `help:"Enable debug logging"`
	LogFormat string `help:"Log format" enum:"text,json" default:"text"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Settle  SettleCmd        `cmd:"" help:"Print the settlement for a table file"`
	Play    PlayCmd          `cmd:"" help:"Track a game interactively"`
	Init    InitCmd          `cmd:"" help:"Write a sample table file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokercal"),
		kong.Description("Cash tracking and settle-up for home poker games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	logger := shared.SetupLogger(os.Stderr, cli.Debug, cli.LogFormat)
	ctx.Bind(logger)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
