package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "wristtemp",
		Usage:  "view sleeping wrist temperature from a health store",
		Action: viewCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Usage: "health store backend: sqlite, postgres or csv",
			},
			&cli.StringFlag{
				Name:  "dsn",
				Usage: "database file (sqlite) or connection string (postgres)",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "directory of daily CSV files for the csv store",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "log destination for the terminal viewer",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "view",
				Usage:  "open the terminal viewer (default)",
				Action: viewCommand,
			},
			{
				Name:   "serve",
				Usage:  "serve the temperature list as JSON",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listen address",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "write demo nights into the configured store",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "nights",
						Value: 60,
						Usage: "number of nights to generate",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
