// Package cli contains the cubicspiral command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	generalFlagDebug    = "debug"
	generalFlagConfig   = "config"
	generalFlagLogLevel = "log-level"

	solveFlagStart   = "start"
	solveFlagEnd     = "end"
	solveFlagDegrees = "degrees"
	flagJSON         = "json"

	batchFlagInput  = "input"
	batchFlagOutput = "output"
	batchFlagTable  = "table"

	plotFlagSamples = "samples"
)

var app = &cli.App{
	Name:            "cubicspiral",
	Usage:           "solve for cubic curvature spirals between vehicle poses",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:    generalFlagConfig,
			Aliases: []string{"c"},
			Usage:   "load solver options from json `FILE`",
		},
		&cli.StringFlag{
			Name:  generalFlagLogLevel,
			Value: "info",
			Usage: "minimum level to log: debug, info, warn or error",
		},
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "log batch diagnostics regardless of --log-level",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "solve",
			Usage:     "solve for the spiral between a single pair of poses",
			UsageText: "cubicspiral solve --start x,y,theta,k --end x,y,theta,k [--degrees] [--json]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     solveFlagStart,
					Required: true,
					Usage:    "start pose as x,y,theta,curvature",
				},
				&cli.StringFlag{
					Name:     solveFlagEnd,
					Required: true,
					Usage:    "end pose as x,y,theta,curvature",
				},
				&cli.BoolFlag{
					Name:  solveFlagDegrees,
					Usage: "read and print headings in degrees",
				},
				&cli.BoolFlag{
					Name:  flagJSON,
					Usage: "print the result as json instead of a table",
				},
			},
			Action: SolveAction,
		},
		{
			Name:      "batch",
			Usage:     "solve every pair of poses in a request file",
			UsageText: "cubicspiral batch --input pairs.json [--output results.json] [--table]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     batchFlagInput,
					Required: true,
					Usage:    "json request with options and start/end pairs",
				},
				&cli.PathFlag{
					Name:  batchFlagOutput,
					Usage: "write the json results to this file instead of printing them",
				},
				&cli.BoolFlag{
					Name:  batchFlagTable,
					Usage: "also print the results as a table",
				},
			},
			Action: BatchAction,
		},
		{
			Name:      "plot",
			Usage:     "solve every pair of poses in a request file and plot the spirals",
			UsageText: "cubicspiral plot --input pairs.json --output spirals.png [--samples 64]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     batchFlagInput,
					Required: true,
					Usage:    "json request with options and start/end pairs",
				},
				&cli.PathFlag{
					Name:     batchFlagOutput,
					Required: true,
					Usage:    "image file to write; the format follows the extension (png, svg, pdf)",
				},
				&cli.IntFlag{
					Name:  plotFlagSamples,
					Value: 64,
					Usage: "number of segments drawn per spiral",
				},
			},
			Action: PlotAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
