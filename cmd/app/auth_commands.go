package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credentials/cmd/app/commands"
	"github.com/allisson/credentials/internal/app"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-client",
			Usage: "Create a new API client and print its secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable client name",
				},
				&cli.StringFlag{
					Name:    "actor",
					Aliases: []string{"a"},
					Usage:   "Actor identity used in permissions (defaults to client:<name>)",
				},
				formatFlag(),
			},
			Action: containerAction(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				clientUseCase, err := container.ClientUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateClient(
					ctx,
					clientUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("actor"),
					cmd.String("format"),
				)
			}),
		},
		{
			Name:  "grant-permission",
			Usage: "Grant operations on a credential path to an actor",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "actor",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Actor receiving the grant (e.g., client:deployer)",
				},
				&cli.StringFlag{
					Name:     "path",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Credential name or path ending in '/*'",
				},
				&cli.StringFlag{
					Name:     "operations",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Comma-separated operations (read, write, delete, read_acl, write_acl)",
				},
				formatFlag(),
			},
			Action: containerAction(func(ctx context.Context, cmd *cli.Command, container *app.Container) error {
				permissionUseCase, err := container.PermissionUseCase()
				if err != nil {
					return err
				}

				return commands.RunGrantPermission(
					ctx,
					permissionUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("actor"),
					cmd.String("path"),
					cmd.String("operations"),
					cmd.String("format"),
				)
			}),
		},
	}
}
