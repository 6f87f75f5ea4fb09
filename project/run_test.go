package project_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/project"
)

func TestRunDryRunPrintsSortedScopeAndGeneratesNothing(t *testing.T) {
	t.Parallel()

	g := mustGraph(t,
		node("//app:config", graph.ProjectConfigRule),
		node("//app:lib", graph.JavaLibraryRule, "//util:util"),
		node("//util:util", graph.JavaLibraryRule),
	)

	opts := options.NewProjectOptionsForTest("")
	opts.IDE = options.IDEIntelliJ
	opts.DryRun = true

	var out bytes.Buffer
	opts.Writer = &out

	parser := &fakeParser{graph: g}
	emitter := &fakeEmitter{}
	build := &fakeBuild{}

	exitCode, err := project.Run(opts, project.Dependencies{
		Parser:      parser,
		Transformer: &fakeTransformer{},
		FlatEmitter: emitter,
		Build:       build,
	})
	require.NoError(t, err)
	assert.Zero(t, exitCode)

	// One line per node, in label order.
	var printed []graph.TargetID
	for _, n := range g.Nodes() {
		printed = append(printed, n.ID())
		assert.Contains(t, out.String(), n.String())
	}
	assert.Equal(t, []graph.TargetID{"//app:config", "//app:lib", "//util:util"}, printed)

	assert.Zero(t, emitter.emitCount)
	assert.Zero(t, build.buildCount)
}

func TestRunIntelliJDispatchesToFlatProject(t *testing.T) {
	t.Parallel()

	g := mustGraph(t, node("//app:config", graph.ProjectConfigRule))

	opts := options.NewProjectOptionsForTest("")
	opts.IDE = options.IDEIntelliJ

	parser := &fakeParser{graph: g}
	transformer := &fakeTransformer{actionGraph: graph.NewActionGraph(nil)}
	emitter := &fakeEmitter{}

	exitCode, err := project.Run(opts, project.Dependencies{
		Parser:      parser,
		Transformer: transformer,
		FlatEmitter: emitter,
		Build:       &fakeBuild{},
	})
	require.NoError(t, err)
	assert.Zero(t, exitCode)

	assert.Equal(t, 1, parser.parseCount)
	assert.Equal(t, []string{"//..."}, specStrings(parser.lastSpecs))
	assert.Equal(t, 1, emitter.emitCount)
}

func TestRunXcodeGeneratesWorkspacesForPredicateRoots(t *testing.T) {
	t.Parallel()

	g := mustGraph(t,
		node("//app:workspace", graph.XcodeWorkspaceConfigRule),
		node("//lib:lib", graph.AppleLibraryRule),
	)

	opts := options.NewProjectOptionsForTest("")
	opts.IDE = options.IDEXcode

	generator := &fakeGenerator{outputPath: "/out/App.xcworkspace", result: &project.GenerateResult{}}
	factory := &fakeFactory{generators: map[graph.TargetID]*fakeGenerator{"//app:workspace": generator}}

	exitCode, err := project.Run(opts, project.Dependencies{
		Parser:           &fakeParser{graph: g},
		WorkspaceFactory: factory,
		Build:            &fakeBuild{},
	})
	require.NoError(t, err)
	assert.Zero(t, exitCode)

	assert.Equal(t, []graph.TargetID{"//app:workspace"}, factory.created)
	assert.Equal(t, 1, generator.generateCount)
}

func TestRunXcodeUsesExplicitTargetsAsWorkspaces(t *testing.T) {
	t.Parallel()

	g := mustGraph(t,
		node("//app:workspace", graph.XcodeWorkspaceConfigRule),
		node("//other:workspace", graph.XcodeWorkspaceConfigRule),
	)

	opts := options.NewProjectOptionsForTest("")
	opts.IDE = options.IDEXcode
	opts.ExplicitTargets = []graph.TargetID{"//app:workspace"}

	generator := &fakeGenerator{outputPath: "/out/App.xcworkspace", result: &project.GenerateResult{}}
	other := &fakeGenerator{outputPath: "/out/Other.xcworkspace", result: &project.GenerateResult{}}
	factory := &fakeFactory{generators: map[graph.TargetID]*fakeGenerator{
		"//app:workspace":   generator,
		"//other:workspace": other,
	}}

	parser := &fakeParser{graph: g}

	exitCode, err := project.Run(opts, project.Dependencies{
		Parser:           parser,
		WorkspaceFactory: factory,
		Build:            &fakeBuild{},
	})
	require.NoError(t, err)
	assert.Zero(t, exitCode)

	// The parse was scoped to the requested target, and only its workspace generated.
	assert.Equal(t, []string{"//app:workspace"}, specStrings(parser.lastSpecs))
	assert.Equal(t, 1, generator.generateCount)
	assert.Zero(t, other.generateCount)
}

func TestRunPropagatesParseFailure(t *testing.T) {
	t.Parallel()

	opts := options.NewProjectOptionsForTest("")
	opts.IDE = options.IDEIntelliJ

	parser := &fakeParser{err: graph.TargetNotFoundError{Target: "//missing:missing"}}

	exitCode, err := project.Run(opts, project.Dependencies{Parser: parser})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode)
}

func TestRunRejectsUnknownIDE(t *testing.T) {
	t.Parallel()

	g := mustGraph(t, node("//app:config", graph.ProjectConfigRule))

	opts := options.NewProjectOptionsForTest("")
	opts.IDE = options.IDE("eclipse")

	exitCode, err := project.Run(opts, project.Dependencies{Parser: &fakeParser{graph: g}})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode)

	var invalidErr options.InvalidIDEError
	assert.ErrorAs(t, err, &invalidErr)
}
