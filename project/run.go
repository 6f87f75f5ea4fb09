package project

import (
	"fmt"

	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/options"
)

// Run resolves the project scope and drives generation for one command invocation: guard
// against a running IDE (Xcode only), parse the target graph, select roots, expand the
// scope with associated tests, then either print the scope (dry run) or dispatch to the
// IDE's generation path. Returns the invocation's exit code.
func Run(opts *options.ProjectOptions, deps Dependencies) (int, error) {
	if opts.IDE == options.IDEXcode {
		if err := CheckForAndKillIDEIfRunning(opts, deps.Processes); err != nil {
			return 1, err
		}
	}

	universeSpecs := UniverseSpecs(opts.IDE, opts.ExplicitTargets)

	projectGraph, err := deps.Parser.Parse(universeSpecs)
	if err != nil {
		return 1, err
	}

	predicates := PredicatesForIDE(opts.IDE)

	roots := SelectRoots(projectGraph, opts.ExplicitTargets, predicates.Roots)

	scope, err := CreateScope(deps.Parser, projectGraph, roots, opts.WithTests, universeSpecs, predicates.AssociatedTests)
	if err != nil {
		return 1, err
	}

	if opts.DryRun {
		for _, node := range scope.Graph().Nodes() {
			fmt.Fprintln(opts.Writer, node.String())
		}

		return 0, nil
	}

	switch opts.IDE {
	case options.IDEIntelliJ:
		return GenerateFlatProject(opts, scope, deps.Transformer, deps.FlatEmitter, deps.Build)
	case options.IDEXcode:
		requestedWorkspaces := opts.ExplicitTargets
		if len(requestedWorkspaces) == 0 {
			requestedWorkspaces = scope.Roots()
		}

		return GenerateWorkspaces(opts, scope, requestedWorkspaces, deps.WorkspaceFactory, deps.Build)
	default:
		return 1, errors.WithStackTrace(options.InvalidIDEError{Value: string(opts.IDE)})
	}
}
