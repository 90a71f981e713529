// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

// makeFlags are shared by the root command and make, so a bare `sleeve` runs the interactive flow.
// The root copy is local so subcommands do not inherit it.
func makeFlags(local bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   defaultConfigPath,
			Local:   local,
		},
		&cli.StringFlag{
			Name:    "playlist",
			Aliases: []string{"p"},
			Usage:   "Spotify playlist link, URI or ID (prompted when omitted)",
			Local:   local,
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Starting gradient color as r,g,b (prompted when omitted)",
			Local: local,
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "Ending gradient color as r,g,b (prompted when omitted)",
			Local: local,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Directory for the generated images (default: [sleeve] output_dir)",
			Local:   local,
		},
		&cli.BoolFlag{
			Name:  "cache",
			Usage: "Cache downloaded artwork in SQLite (also [cache] enabled)",
			Local: local,
		},
		&cli.BoolFlag{
			Name:  "readme",
			Usage: "Also write a README.md tracklist linking the sleeve image",
			Local: local,
		},
		&cli.BoolFlag{
			Name:  "open",
			Usage: "Open the finished sleeve in the default image viewer",
			Local: local,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
			Local: local,
		},
	}
}

// makeCommand generates the sleeve images
func makeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "make",
		Usage:  "Generate the gradient, tracklist, collage and CD sleeve images",
		Flags:  makeFlags(false),
		Action: r.Make,
	}
}

// tracksCommand previews a playlist's tracklist
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "Print the tracks that will appear on the sleeve",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "playlist",
				Aliases:  []string{"p"},
				Usage:    "Spotify playlist link, URI or ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown or csv",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to a file instead of stdout",
			},
		},
		Action: r.Tracks,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and, when caching is enabled, the artwork database",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: r.Setup,
	}
}

// cacheCommand manages the opt-in artwork cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the artwork cache",
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "Show cached artwork count and size",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Delete all cached artwork",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheClear,
			},
		},
	}
}

// historyCommand lists recent runs recorded in the cache database
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recently generated sleeves",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to list",
				Value: 10,
			},
		},
		Action: r.History,
	}
}
