package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/shell"
	"github.com/hu19891110/buck/util"
)

const flatProjectFileName = "project.json"

// GenerateFlatProject drives the flat, single-project generation path: the target graph is
// transformed into a build-rule graph, its project configuration rules are fed to the
// emitter, and the targets the generated project depends on (the explicitly requested ones
// plus, when requested, annotation-processing targets) are built afterwards. The emitter
// writes to a scratch location that is either reported (verbose) or removed, on every exit
// path. Returns the first failing collaborator's exit code.
func GenerateFlatProject(
	opts *options.ProjectOptions,
	scope *ScopeBundle,
	transformer GraphTransformer,
	emitter FlatProjectEmitter,
	build BuildRunner,
) (int, error) {
	actionGraph, err := transformer.Transform(scope.Graph())
	if err != nil {
		return 1, err
	}

	projectConfigs := actionGraph.RulesOfKind(graph.ProjectConfigRule)

	scratchDir, err := os.MkdirTemp("", "buck-project")
	if err != nil {
		return 1, errors.WithStackTrace(err)
	}

	scratchFile := filepath.Join(scratchDir, flatProjectFileName)

	// Either leave the scratch output around for debugging or delete it: exactly one of
	// the two, on every exit path.
	defer func() {
		if opts.Verbose {
			fmt.Fprintf(opts.ErrWriter, "%s was written to %s\n", flatProjectFileName, scratchFile)
		} else {
			os.RemoveAll(scratchDir)
		}
	}()

	meta := FlatProjectMeta{
		BasePathToAliases:     opts.BasePathToAliases,
		DefaultManifestPath:   opts.DefaultManifestPath,
		PostProcessScriptPath: opts.PostProcessScriptPath,
	}

	exitCode, err := emitter.Emit(actionGraph, projectConfigs, meta, scratchFile)
	if err != nil {
		exitCode, _ = shell.GetExitCode(err)
		return exitCode, err
	}

	if exitCode != 0 {
		return exitCode, nil
	}

	var annotationTargets []graph.TargetID
	if opts.ProcessAnnotations {
		annotationTargets = AnnotationProcessingTargets(scope.Graph(), opts.ExplicitTargets)
		opts.Logger.Debugf("Annotation processing targets: %v", annotationTargets)
	}

	initialTargets := util.RemoveDuplicatesFromList(append(opts.ExplicitTargets, annotationTargets...))
	if len(initialTargets) > 0 {
		exitCode, err := build.Build(initialTargets)
		if err != nil || exitCode != 0 {
			return exitCode, err
		}
	}

	if len(opts.ExplicitTargets) == 0 {
		printProjectHint(opts)
	}

	return 0, nil
}

func printProjectHint(opts *options.ProjectOptions) {
	fmt.Fprintf(opts.ErrWriter,
		"=== Did you know ===\n"+
			" * You can run `buck project <target>` to generate a minimal project just for that target.\n"+
			" * This will make your IDE faster when working on large projects.\n"+
			" * See buck project --help for more info.\n")
}
