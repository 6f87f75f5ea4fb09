// Package project wires the `buck project` command: flag parsing into project options,
// collaborator construction, and the hand-off to scope resolution and generation.
package project

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hu19891110/buck/config"
	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/ide/intellij"
	"github.com/hu19891110/buck/ide/xcode"
	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/process"
	buckproject "github.com/hu19891110/buck/project"
	"github.com/hu19891110/buck/shell"
)

const (
	CommandName = "project"

	flagIDE                = "ide"
	flagWithTests          = "with-tests"
	flagCombinedProject    = "combined-project"
	flagCombineTestBundles = "combine-test-bundles"
	flagReadOnly           = "read-only"
	flagIDEPrompt          = "ide-prompt"
	flagProcessAnnotations = "process-annotations"
	flagDryRun             = "dry-run"
	flagVerbose            = "verbose"
	flagDefaultManifest    = "default-manifest"
	flagPostProcessScript  = "post-process-script"
	flagBuildCommand       = "build-command"
)

// NewCommand creates the project command. The given options carry the global flag state
// set up by the app's Before hook.
func NewCommand(opts *options.ProjectOptions) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Generate project configuration files for an IDE.",
		ArgsUsage: "[target...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagIDE,
				Usage: "IDE to generate a project for: intellij or xcode.",
				Value: string(options.IDEIntelliJ),
			},
			&cli.BoolFlag{
				Name:  flagWithTests,
				Usage: "Include associated tests in the generated project.",
			},
			&cli.BoolFlag{
				Name:  flagCombinedProject,
				Usage: "Generate one combined project instead of separate per-workspace projects.",
			},
			&cli.BoolFlag{
				Name:  flagCombineTestBundles,
				Usage: "Combine groupable tests into shared test bundles.",
			},
			&cli.BoolFlag{
				Name:  flagReadOnly,
				Usage: "Write generated project files read-only.",
			},
			&cli.BoolFlag{
				Name:  flagIDEPrompt,
				Usage: "Prompt before killing a running IDE that has project files open.",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  flagProcessAnnotations,
				Usage: "Build annotation-processing targets so their generated sources exist.",
			},
			&cli.BoolFlag{
				Name:  flagDryRun,
				Usage: "Print the targets in the resolved project scope without generating anything.",
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "Report scratch output locations instead of cleaning them up.",
			},
			&cli.StringFlag{
				Name:  flagDefaultManifest,
				Usage: "Path to the default manifest for modules that do not declare one.",
			},
			&cli.StringFlag{
				Name:  flagPostProcessScript,
				Usage: "Script to run over the generated flat project description.",
			},
			&cli.StringFlag{
				Name:  flagBuildCommand,
				Usage: "Executable invoked to build required targets.",
				Value: options.DefaultBuildCommand,
			},
		},
		Action: func(ctx *cli.Context) error {
			return runProject(ctx, opts)
		},
	}
}

func runProject(ctx *cli.Context, opts *options.ProjectOptions) error {
	ide, err := options.ParseIDE(ctx.String(flagIDE))
	if err != nil {
		return err
	}

	explicitTargets, err := graph.ParseTargetIDs(ctx.Args().Slice())
	if err != nil {
		return err
	}

	opts.IDE = ide
	opts.ExplicitTargets = explicitTargets
	opts.WithTests = ctx.Bool(flagWithTests)
	opts.CombinedProject = ctx.Bool(flagCombinedProject)
	opts.CombineTestBundles = ctx.Bool(flagCombineTestBundles)
	opts.ReadOnly = ctx.Bool(flagReadOnly)
	opts.IDEPrompt = ctx.Bool(flagIDEPrompt)
	opts.ProcessAnnotations = ctx.Bool(flagProcessAnnotations)
	opts.DryRun = ctx.Bool(flagDryRun)
	opts.Verbose = ctx.Bool(flagVerbose)
	opts.DefaultManifestPath = ctx.String(flagDefaultManifest)
	opts.PostProcessScriptPath = ctx.String(flagPostProcessScript)
	opts.BuildCommand = ctx.String(flagBuildCommand)

	exitCode, err := buckproject.Run(opts, newDependencies(opts))
	if err != nil {
		return err
	}

	if exitCode != 0 {
		// Propagate the failing collaborator's exit code verbatim; its own output already
		// explained the failure.
		return errors.ErrorWithExitCode{Err: fmt.Errorf("exited with code %d", exitCode), ExitCode: exitCode}
	}

	return nil
}

// newDependencies wires the bundled collaborators. A host without process enumeration
// leaves the process manager nil, which the guard handles as best-effort.
func newDependencies(opts *options.ProjectOptions) buckproject.Dependencies {
	deps := buckproject.Dependencies{
		Parser:           config.NewParser(opts),
		WorkspaceFactory: xcode.NewGeneratorFactory(opts),
		Transformer:      intellij.NewTransformer(),
		FlatEmitter:      intellij.NewEmitter(opts),
		Build:            shell.NewCommandBuildRunner(opts),
	}

	if manager, err := process.NewManager(); err == nil {
		deps.Processes = manager
	} else {
		opts.Logger.Debugf("Process management unavailable: %v", err)
	}

	return deps
}
