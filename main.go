// sitemap2text fetches the URLs listed in a plain-text sitemap file, scrapes
// each page's visible text by tag, and writes a consolidated Markdown export
// plus a run log into a timestamped output folder.
package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/sitemap2text/internal/convert"
	"github.com/dtnitsch/sitemap2text/internal/history"
	"github.com/dtnitsch/sitemap2text/internal/validate"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sitemap2text",
		Usage: "convert a sitemap URL list into a Markdown-formatted text export",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the YAML config file (missing file uses defaults)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "path to the run history database (default: next to the binary)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "convert",
				Usage:  "fetch every URL in the input file and write the text export",
				Action: convert.ConvertAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "sitemap .txt file, one URL per line",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Value:   ".",
						Usage:   "parent directory for the timestamped run folder",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "number of parallel fetch workers",
					},
					&cli.StringFlag{
						Name:  "timeout",
						Usage: "per-fetch timeout (e.g. 10s)",
					},
					&cli.StringFlag{
						Name:  "tags",
						Usage: "comma-separated tags to extract (title,h1,h2,h3,p,li)",
					},
					&cli.BoolFlag{
						Name:  "readability",
						Usage: "distill the main article content before extraction",
					},
					&cli.BoolFlag{
						Name:  "preflight",
						Usage: "check reachability with HEAD requests before fetching",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "skip recording the run in the history database",
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "classify input lines without fetching page content",
				Action: validate.ValidateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "sitemap .txt file, one URL per line",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "preflight",
						Usage: "also check reachability with HEAD requests",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "list past runs recorded in the history database",
				Action: history.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum number of runs to list",
					},
					&cli.IntFlag{
						Name:  "run",
						Usage: "show per-URL outcomes for one run ID",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
