// Package shell invokes external commands on behalf of the orchestrators: the scoped
// build trigger and post-process scripts. Output is streamed to the invocation's writers.
package shell

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/options"
)

// Run the specified shell command with the specified arguments. Connect the command's
// stdin, stdout, and stderr to the currently running app. Returns the command's exit code.
func RunShellCommand(opts *options.ProjectOptions, command string, args ...string) (int, error) {
	opts.Logger.Debugf("Running command: %s %s", command, strings.Join(args, " "))

	cmd := exec.Command(command, args...)

	cmd.Dir = opts.WorkingDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = opts.Writer
	cmd.Stderr = opts.ErrWriter
	cmd.Env = toEnvVarsList(opts.Env)

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}

		// bad path, binary not executable, &c
		return 1, errors.WithStackTrace(err)
	}

	return 0, nil
}

func toEnvVarsList(envVarsAsMap map[string]string) []string {
	if len(envVarsAsMap) == 0 {
		return os.Environ()
	}

	envVarsAsList := []string{}
	for key, value := range envVarsAsMap {
		envVarsAsList = append(envVarsAsList, fmt.Sprintf("%s=%s", key, value))
	}

	return envVarsAsList
}

// Return the exit code of a command. If the error does not implement errors.IErrorCode
// or is not an exec.ExitError type, returns 1 along with the error.
func GetExitCode(err error) (int, error) {
	if exiterr, ok := errors.Unwrap(err).(errors.IErrorCode); ok {
		return exiterr.ExitStatus()
	}

	if exiterr, ok := errors.Unwrap(err).(*exec.ExitError); ok {
		return exiterr.ExitCode(), nil
	}

	return 1, err
}
