package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "vesting"
	app.Usage = "View and claim the releasable amount of a vesting vault"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path of a toml config file",
			EnvVars: []string{"CONFIG_FILE"},
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path of a dotenv file, loaded before reading the environment",
			Value: ".env",
		},
	}
	app.Before = s.before
	app.After = s.after
	app.Commands = []*cli.Command{
		{
			Action:      s.startServe,
			Name:        "serve",
			Usage:       "Start the claim page and api",
			Category:    "Server",
			Description: `Serves the claim page, the json api, the view websocket and prometheus metrics.`,
		},
		{
			Action:   s.showReleasable,
			Name:     "releasable",
			Usage:    "Print the releasable amount of the connected account",
			Category: "Vault",
		},
		{
			Action:   s.showStatus,
			Name:     "status",
			Usage:    "Print the claim view as json",
			Category: "Vault",
		},
		{
			Action:   s.claim,
			Name:     "claim",
			Usage:    "Release tokens from the vault to the connected account",
			Category: "Vault",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "amount",
					Usage: "Amount in wei, the configured default amount when empty",
				},
			},
		},
	}

	s.app = app
}
