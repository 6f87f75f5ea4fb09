package project

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/shell"
	"github.com/hu19891110/buck/util"
)

// NotAWorkspaceError is a user-input error: a requested workspace target exists but is not
// a workspace configuration rule.
type NotAWorkspaceError struct {
	Target graph.TargetID
	Kind   graph.RuleKind
}

func (err NotAWorkspaceError) Error() string {
	return fmt.Sprintf("%s must be a %s, but is a %s", err.Target, graph.XcodeWorkspaceConfigRule, err.Kind)
}

// GenerateWorkspaces drives per-workspace generation over the resolved scope: every
// requested workspace is validated up front (the whole command fails before any generation
// when one is missing or of the wrong kind), generators are de-duplicated by output path so
// overlapping workspaces converge on one written project, and the targets each generator
// reports as required are merged and built once at the end. Returns the invocation's exit
// code: the downstream build's code, or 0 when nothing needed building.
func GenerateWorkspaces(
	opts *options.ProjectOptions,
	scope *ScopeBundle,
	requestedWorkspaces []graph.TargetID,
	factory WorkspaceGeneratorFactory,
	build BuildRunner,
) (int, error) {
	workspaceNodes, err := validateWorkspaces(scope, requestedWorkspaces)
	if err != nil {
		return 1, err
	}

	genOpts := GeneratorOptions{
		CombinedProject: opts.CombinedProject,
		ReadOnly:        opts.ReadOnly,
		IncludeTests:    opts.WithTests,
		GroupableTests:  groupableTests(opts, scope),
	}

	opts.Logger.Debugf("Generating workspaces for config targets %v", requestedWorkspaces)

	// Both accumulators live for exactly one invocation: generators de-duplicated by
	// output path, and the union of every workspace's required build targets.
	generatorsByPath := map[string]WorkspaceGenerator{}
	requiredTargets := map[graph.TargetID]struct{}{}

	for _, workspaceNode := range workspaceNodes {
		generator, err := factory.NewGenerator(scope.Graph(), workspaceNode, genOpts)
		if err != nil {
			return 1, err
		}

		outputPath := generator.OutputPath()

		if _, ok := generatorsByPath[outputPath]; ok {
			// First generator wins: a later workspace with different options does not
			// regenerate the project.
			opts.Logger.Warnf(
				"Workspace %s generates a project at %s, which an earlier workspace in this invocation already generated; skipping it",
				workspaceNode.ID(), outputPath)

			continue
		}

		generatorsByPath[outputPath] = generator

		result, err := generator.Generate()
		if err != nil {
			exitCode, _ := shell.GetExitCode(err)
			return exitCode, errors.WithStackTraceAndPrefix(err, "error generating project for workspace %s", workspaceNode.ID())
		}

		opts.Logger.Debugf("Required build targets for workspace %s: %v", workspaceNode.ID(), result.RequiredTargets)

		for _, target := range result.RequiredTargets {
			requiredTargets[target] = struct{}{}
		}
	}

	if len(requiredTargets) == 0 {
		return 0, nil
	}

	return build.Build(util.SortedKeys(requiredTargets))
}

// validateWorkspaces looks up every requested workspace in the scope graph and checks its
// kind tag, collecting every offender so the user sees them all at once. Duplicate
// requests collapse to one.
func validateWorkspaces(scope *ScopeBundle, requestedWorkspaces []graph.TargetID) ([]*graph.TargetNode, error) {
	var (
		workspaceNodes []*graph.TargetNode
		validationErrs *multierror.Error
	)

	for _, workspaceTarget := range util.RemoveDuplicatesFromList(requestedWorkspaces) {
		workspaceNode, ok := scope.Graph().Get(workspaceTarget)
		if !ok {
			validationErrs = multierror.Append(validationErrs, graph.TargetNotFoundError{Target: workspaceTarget})
			continue
		}

		if workspaceNode.Kind() != graph.XcodeWorkspaceConfigRule {
			validationErrs = multierror.Append(validationErrs, NotAWorkspaceError{Target: workspaceTarget, Kind: workspaceNode.Kind()})
			continue
		}

		workspaceNodes = append(workspaceNodes, workspaceNode)
	}

	if err := validationErrs.ErrorOrNil(); err != nil {
		return nil, errors.WithStackTrace(err)
	}

	return workspaceNodes, nil
}

// groupableTests returns the associated tests that may be combined into shared bundles:
// test rules that opted in via their can_group attribute, and only when bundling was
// requested for this invocation.
func groupableTests(opts *options.ProjectOptions, scope *ScopeBundle) []*graph.TargetNode {
	if !opts.CombineTestBundles {
		return nil
	}

	var groupable []*graph.TargetNode

	for _, node := range scope.AssociatedTests() {
		if node.Kind() == graph.AppleTestRule && node.Attribute("can_group") == "true" {
			groupable = append(groupable, node)
		}
	}

	return groupable
}
