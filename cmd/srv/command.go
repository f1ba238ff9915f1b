package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "puzzup"
	app.Usage = "Keep puzzle Discord channels in sync"

	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "Path of the TOML configuration file",
	}
	puzzlesFlag := &cli.StringFlag{
		Name:     "puzzles",
		Usage:    "Path of the puzzle fixture file (JSON)",
		Required: true,
	}

	app.Commands = []*cli.Command{
		{
			Action: server.syncCommand,
			Name:   "sync",
			Usage:  "Sync every puzzle in the fixture to its channel",
			Flags: []cli.Flag{
				configFlag,
				puzzlesFlag,
				&cli.StringFlag{
					Name:  "url-base",
					Usage: "Base URL used to build channel topics, e.g. https://puzzup.example.com",
				},
				&cli.StringFlag{
					Name:  "category",
					Usage: "Category name to place synced channels under",
				},
			},
			Before:      server.before,
			Description: `Creates missing channels, renames and re-permissions existing ones.`,
		},
		{
			Action: server.cleanCommand,
			Name:   "clean",
			Usage:  "Report or delete puzzle channels no puzzle refers to",
			Flags: []cli.Flag{
				configFlag,
				puzzlesFlag,
				&cli.BoolFlag{
					Name:  "dryrun",
					Usage: "Only report orphaned channels, do not delete them",
					Value: true,
				},
			},
			Before:      server.before,
			Description: `A channel counts as orphaned when it looks like a puzzle channel but its id is not referenced by any puzzle in the fixture.`,
		},
		{
			Action: server.announceCommand,
			Name:   "announce",
			Usage:  "Announce a puzzle's spoiled users and editors in its channel",
			Flags: []cli.Flag{
				configFlag,
				puzzlesFlag,
				&cli.IntFlag{
					Name:     "puzzle",
					Usage:    "Id of the puzzle to announce",
					Required: true,
				},
			},
			Before: server.before,
		},
	}

	s.app = app
}
