package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/hu19891110/buck/cli"
	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/shell"
)

// The main entrypoint for buck.
func main() {
	defer errors.Recover(checkForErrorsAndExit)

	app := cli.NewApp(os.Stdout, os.Stderr)

	checkForErrorsAndExit(app.Run(os.Args))
}

// If there is an error, display it in the console and exit with a non-zero exit code.
// Otherwise, exit 0.
func checkForErrorsAndExit(err error) {
	if err == nil {
		os.Exit(0)
	}

	exitCode, underlying := shell.GetExitCode(err)

	if underlying != nil {
		logrus.StandardLogger().SetOutput(os.Stderr)
		logrus.Error(err.Error())
		logrus.Debug(errors.PrintErrorWithStackTrace(err))
	}

	os.Exit(exitCode)
}
