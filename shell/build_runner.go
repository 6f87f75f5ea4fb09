package shell

import (
	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/options"
)

// CommandBuildRunner triggers scoped builds by invoking the configured build executable
// with the target labels as arguments.
type CommandBuildRunner struct {
	opts *options.ProjectOptions
}

func NewCommandBuildRunner(opts *options.ProjectOptions) *CommandBuildRunner {
	return &CommandBuildRunner{opts: opts}
}

// Build runs the build command over exactly the given targets and returns its exit code.
func (runner *CommandBuildRunner) Build(targets []graph.TargetID) (int, error) {
	args := make([]string, 0, len(targets))
	for _, target := range targets {
		args = append(args, target.String())
	}

	runner.opts.Logger.Infof("Building %d required targets", len(targets))

	return RunShellCommand(runner.opts, runner.opts.BuildCommand, args...)
}
