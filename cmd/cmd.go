// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// syncCommand handles library synchronization
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Synchronize the highlights library",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Initiate a sync and poll until it finishes",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SyncRun,
			},
			{
				Name:  "status",
				Usage: "Show the current sync job status",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SyncStatus,
			},
		},
	}
}

// authCommand handles session management
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Session management",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and save the session token",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Account username",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "verify",
				Usage:  "Check whether the saved session is still valid",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthVerify,
			},
			{
				Name:      "import-curl",
				Usage:     "Extract a session token from a browser-copied cURL command",
				ArgsUsage: "<curl-file>",
				Flags:     []cli.Flag{configFlag()},
				Action:    r.AuthImportCurl,
			},
		},
	}
}

// coverCommand resolves cover images
func coverCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "cover",
		Usage:     "Resolve a cover image URL for a book",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "Author name to narrow the search",
			},
			&cli.StringFlag{
				Name:  "isbn",
				Usage: "ISBN for deterministic resolution",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the resolved URL in the browser",
			},
		},
		Action: r.Cover,
	}
}

// booksCommand lists library contents
func booksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "books",
		Usage: "Browse the highlights library",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all books",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output CSV",
					},
				},
				Action: r.BooksList,
			},
			{
				Name:      "highlights",
				Usage:     "Export a book's highlights as Markdown",
				ArgsUsage: "<book-id>",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "cover",
						Usage: "Include a resolved cover image",
					},
				},
				Action: r.BookHighlights,
			},
		},
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create a config file and initialize the local database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive sync view",
		Flags:  []cli.Flag{configFlag()},
		Action: r.TUI,
	}
}
