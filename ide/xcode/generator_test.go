package xcode_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/ide/xcode"
	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/project"
)

func node(id string, kind graph.RuleKind, deps ...graph.TargetID) *graph.TargetNode {
	return graph.NewTargetNode(graph.TargetID(id), kind, nil, deps, nil, nil, nil)
}

func mustGraph(t *testing.T, nodes ...*graph.TargetNode) *graph.TargetGraph {
	t.Helper()

	g, err := graph.NewTargetGraph(nodes)
	require.NoError(t, err)

	return g
}

func readManifest(t *testing.T, result *project.GenerateResult) map[string]any {
	t.Helper()

	require.Len(t, result.WrittenPaths, 1)

	data, err := os.ReadFile(result.WrittenPaths[0])
	require.NoError(t, err)

	var manifest map[string]any
	require.NoError(t, json.Unmarshal(data, &manifest))

	return manifest
}

func TestGeneratorOutputPathDefaultsToTargetShortName(t *testing.T) {
	t.Parallel()

	opts := options.NewProjectOptionsForTest("/repo")
	factory := xcode.NewGeneratorFactory(opts)

	workspace := node("//apps/ios:workspace", graph.XcodeWorkspaceConfigRule)
	g := mustGraph(t, workspace)

	generator, err := factory.NewGenerator(g, workspace, project.GeneratorOptions{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/repo", "apps", "ios", "workspace.xcworkspace"), generator.OutputPath())
}

func TestGeneratorOutputPathHonorsWorkspaceNameAttribute(t *testing.T) {
	t.Parallel()

	opts := options.NewProjectOptionsForTest("/repo")
	factory := xcode.NewGeneratorFactory(opts)

	workspace := graph.NewTargetNode(
		"//apps/ios:workspace",
		graph.XcodeWorkspaceConfigRule,
		map[string]string{"workspace_name": "MyApp"},
		nil, nil, nil, nil)
	g := mustGraph(t, workspace)

	generator, err := factory.NewGenerator(g, workspace, project.GeneratorOptions{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/repo", "apps", "ios", "MyApp.xcworkspace"), generator.OutputPath())
}

func TestGenerateScopesToDependencyClosureAndReportsGenrules(t *testing.T) {
	t.Parallel()

	workspace := node("//app:workspace", graph.XcodeWorkspaceConfigRule, "//app:lib")
	lib := node("//app:lib", graph.AppleLibraryRule, "//gen:sources", "//base:base")
	genrule := node("//gen:sources", graph.GenruleRule)
	base := node("//base:base", graph.AppleLibraryRule)
	unrelated := node("//other:lib", graph.AppleLibraryRule)

	g := mustGraph(t, workspace, lib, genrule, base, unrelated)

	opts := options.NewProjectOptionsForTest(t.TempDir())
	factory := xcode.NewGeneratorFactory(opts)

	generator, err := factory.NewGenerator(g, workspace, project.GeneratorOptions{})
	require.NoError(t, err)

	result, err := generator.Generate()
	require.NoError(t, err)

	assert.Equal(t, []graph.TargetID{"//gen:sources"}, result.RequiredTargets)

	manifest := readManifest(t, result)
	assert.Equal(t, "//app:workspace", manifest["workspace"])
	assert.Equal(t,
		[]any{"//app:lib", "//base:base", "//gen:sources"},
		manifest["targets"])
	assert.NotContains(t, manifest, "tests")
}

func TestGenerateIncludesGroupableTestsWhenRequested(t *testing.T) {
	t.Parallel()

	workspace := node("//app:workspace", graph.XcodeWorkspaceConfigRule)
	g := mustGraph(t, workspace)

	opts := options.NewProjectOptionsForTest(t.TempDir())
	factory := xcode.NewGeneratorFactory(opts)

	groupable := []*graph.TargetNode{
		node("//app:z_test", graph.AppleTestRule),
		node("//app:a_test", graph.AppleTestRule),
	}

	generator, err := factory.NewGenerator(g, workspace, project.GeneratorOptions{
		IncludeTests:   true,
		GroupableTests: groupable,
	})
	require.NoError(t, err)

	result, err := generator.Generate()
	require.NoError(t, err)

	manifest := readManifest(t, result)
	assert.Equal(t, []any{"//app:a_test", "//app:z_test"}, manifest["tests"])
}

func TestGenerateWritesReadOnlyManifest(t *testing.T) {
	t.Parallel()

	workspace := node("//app:workspace", graph.XcodeWorkspaceConfigRule)
	g := mustGraph(t, workspace)

	opts := options.NewProjectOptionsForTest(t.TempDir())
	factory := xcode.NewGeneratorFactory(opts)

	generator, err := factory.NewGenerator(g, workspace, project.GeneratorOptions{ReadOnly: true})
	require.NoError(t, err)

	result, err := generator.Generate()
	require.NoError(t, err)

	info, err := os.Stat(result.WrittenPaths[0])
	require.NoError(t, err)

	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())

	manifest := readManifest(t, result)
	assert.Equal(t, true, manifest["read_only"])
}
