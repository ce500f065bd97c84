package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credentials/internal/app"
	"github.com/allisson/credentials/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getKeyCommands()...)
	cmds = append(cmds, getAuthCommands()...)
	return cmds
}

// containerAction runs action with a container built from the environment and shuts
// the container down afterwards.
func containerAction(
	action func(ctx context.Context, cmd *cli.Command, container *app.Container) error,
) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		container := app.NewContainer(config.Load())
		defer func() { _ = container.Shutdown(ctx) }()

		return action(ctx, cmd, container)
	}
}

// intFlagOr returns the flag value when it was given on the command line, else fallback.
func intFlagOr(cmd *cli.Command, name string, fallback int) int {
	if !cmd.IsSet(name) {
		return fallback
	}
	return int(cmd.Int(name))
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}
