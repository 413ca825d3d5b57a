// Package main is the cubicspiral command line tool.
package main

import (
	"os"

	"go.viam.com/cubicspiral/cli"
	"go.viam.com/cubicspiral/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("cubicspiral").Error(err)
		os.Exit(1)
	}
}
