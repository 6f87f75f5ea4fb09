package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/shell"
)

// XcodeProcessName is the executable name of the IDE that holds generated project files
// open exclusively.
const XcodeProcessName = "Xcode"

// CheckForAndKillIDEIfRunning protects generated files from a running IDE: when the IDE is
// running and the invocation is interactive, the user is asked whether to kill it before
// generation begins. Declining (or being unable to ask) proceeds with a warning. Missing
// process management degrades to a logged warning; the guard never blocks generation
// without a path forward.
func CheckForAndKillIDEIfRunning(opts *options.ProjectOptions, manager ProcessManager) error {
	if manager == nil {
		opts.Logger.Warnf("Could not check if %s is running (no process manager)", XcodeProcessName)
		return nil
	}

	running, err := manager.IsRunning(XcodeProcessName)
	if err != nil {
		opts.Logger.Warnf("Could not check if %s is running: %v", XcodeProcessName, err)
		return nil
	}

	if !running {
		opts.Logger.Debugf("%s is not running.", XcodeProcessName)
		return nil
	}

	if !opts.IDEPrompt || !canPrompt(opts) {
		opts.Logger.Warnf(
			"%s is running, but cannot prompt to kill it (prompt enabled %v, interactive %v). "+
				"Generated projects might be lost or corrupted if %s currently has them open.",
			XcodeProcessName, opts.IDEPrompt, canPrompt(opts), XcodeProcessName)

		return nil
	}

	kill, err := shell.PromptUserForYesNo(
		fmt.Sprintf(
			"%s is currently running. Generation will modify files %s currently has open, "+
				"which can cause it to become unstable.\n\nKill %s and continue?",
			XcodeProcessName, XcodeProcessName, XcodeProcessName),
		true,
		opts)
	if err != nil {
		return err
	}

	if kill {
		if err := manager.Kill(XcodeProcessName); err != nil {
			opts.Logger.Warnf("Could not kill %s: %v", XcodeProcessName, err)
		}
	} else {
		fmt.Fprintf(
			opts.Writer,
			"%s is running. Generated projects might be lost or corrupted if %s currently has them open.\n",
			XcodeProcessName, XcodeProcessName)
	}

	fmt.Fprintf(
		opts.Writer,
		"To disable this prompt in the future, add the following to %s:\n\n[project]\n  ide_prompt = false\n\n",
		filepath.Join(opts.WorkingDir, options.DefaultConfigFileName))

	return nil
}

func canPrompt(opts *options.ProjectOptions) bool {
	return !opts.NonInteractive && isatty.IsTerminal(os.Stdin.Fd())
}
