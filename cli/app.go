// Package cli assembles the buck command-line application.
package cli

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"

	projectcmd "github.com/hu19891110/buck/cli/commands/project"
	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/util"
)

const (
	flagLogLevel       = "log-level"
	flagWorkingDir     = "working-dir"
	flagNonInteractive = "non-interactive"
)

// NewApp creates the buck CLI app writing console output and diagnostics to the given
// writers.
func NewApp(writer io.Writer, errWriter io.Writer) *cli.App {
	opts := options.NewProjectOptions("")
	opts.Writer = writer
	opts.ErrWriter = errWriter

	app := cli.NewApp()
	app.Name = "buck"
	app.Usage = "A build tool: resolves project scope over the target graph and generates IDE projects."
	app.Writer = writer
	app.ErrWriter = errWriter
	app.ExitErrHandler = func(ctx *cli.Context, err error) {}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    flagLogLevel,
			EnvVars: []string{"BUCK_LOG_LEVEL"},
			Usage:   "Log level: trace, debug, info, warn, or error.",
			Value:   "info",
		},
		&cli.StringFlag{
			Name:  flagWorkingDir,
			Usage: "Directory to discover build files in. Defaults to the current directory.",
		},
		&cli.BoolFlag{
			Name:  flagNonInteractive,
			Usage: "Assume \"no\" for every prompt instead of asking.",
		},
	}
	app.Before = beforeRunningCommand(opts)
	app.Commands = []*cli.Command{
		projectcmd.NewCommand(opts),
	}

	return app
}

func beforeRunningCommand(opts *options.ProjectOptions) cli.BeforeFunc {
	return func(ctx *cli.Context) error {
		opts.LogLevel = util.ParseLogLevel(ctx.String(flagLogLevel))
		opts.Logger = util.CreateLogEntry("", opts.LogLevel, ctx.App.ErrWriter)
		opts.NonInteractive = ctx.Bool(flagNonInteractive)

		if workingDir := ctx.String(flagWorkingDir); workingDir != "" {
			opts.WorkingDir = workingDir
			return nil
		}

		currentDir, err := os.Getwd()
		if err != nil {
			return errors.WithStackTrace(err)
		}

		opts.WorkingDir = currentDir

		return nil
	}
}
