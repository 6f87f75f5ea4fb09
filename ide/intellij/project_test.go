package intellij_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/ide/intellij"
	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/project"
)

func node(id string, kind graph.RuleKind) *graph.TargetNode {
	return graph.NewTargetNode(graph.TargetID(id), kind, nil, nil, nil, nil, nil)
}

func TestTransformMapsEveryNodeToOneRule(t *testing.T) {
	t.Parallel()

	g, err := graph.NewTargetGraph([]*graph.TargetNode{
		node("//app:config", graph.ProjectConfigRule),
		node("//app:lib", graph.JavaLibraryRule),
	})
	require.NoError(t, err)

	actionGraph, err := intellij.NewTransformer().Transform(g)
	require.NoError(t, err)

	rules := actionGraph.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, graph.TargetID("//app:config"), rules[0].ID)
	assert.Equal(t, graph.ProjectConfigRule, rules[0].Kind)
	assert.Equal(t, graph.TargetID("//app:lib"), rules[1].ID)

	configs := actionGraph.RulesOfKind(graph.ProjectConfigRule)
	require.Len(t, configs, 1)
	assert.Equal(t, graph.TargetID("//app:config"), configs[0].ID)
}

func TestEmitWritesProjectDescription(t *testing.T) {
	t.Parallel()

	actionGraph := graph.NewActionGraph([]*graph.BuildRule{
		{ID: "//app:config", Kind: graph.ProjectConfigRule},
		{ID: "//app:lib", Kind: graph.JavaLibraryRule},
	})
	projectConfigs := actionGraph.RulesOfKind(graph.ProjectConfigRule)

	meta := project.FlatProjectMeta{
		BasePathToAliases:   map[string]string{"app": "App"},
		DefaultManifestPath: "/manifests/default.json",
	}

	scratchPath := filepath.Join(t.TempDir(), "project.json")

	emitter := intellij.NewEmitter(options.NewProjectOptionsForTest(""))

	exitCode, err := emitter.Emit(actionGraph, projectConfigs, meta, scratchPath)
	require.NoError(t, err)
	assert.Zero(t, exitCode)

	data, err := os.ReadFile(scratchPath)
	require.NoError(t, err)

	var description struct {
		Modules []struct {
			Target   string `json:"target"`
			BasePath string `json:"base_path"`
			Alias    string `json:"alias"`
			Manifest string `json:"manifest"`
		} `json:"modules"`
		Rules []string `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(data, &description))

	require.Len(t, description.Modules, 1)
	assert.Equal(t, "//app:config", description.Modules[0].Target)
	assert.Equal(t, "app", description.Modules[0].BasePath)
	assert.Equal(t, "App", description.Modules[0].Alias)
	assert.Equal(t, "/manifests/default.json", description.Modules[0].Manifest)

	assert.Equal(t, []string{"//app:config", "//app:lib"}, description.Rules)
}

func TestEmitRunsPostProcessScript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// The script records the path it was handed, then fails with a distinctive code.
	scriptPath := filepath.Join(dir, "post-process.sh")
	recordPath := filepath.Join(dir, "seen.txt")
	script := "#!/bin/sh\necho \"$1\" > " + recordPath + "\nexit 6\n"
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o755))

	scratchPath := filepath.Join(dir, "project.json")

	emitter := intellij.NewEmitter(options.NewProjectOptionsForTest(""))

	exitCode, err := emitter.Emit(
		graph.NewActionGraph(nil),
		nil,
		project.FlatProjectMeta{PostProcessScriptPath: scriptPath},
		scratchPath)
	require.NoError(t, err)
	assert.Equal(t, 6, exitCode)

	seen, err := os.ReadFile(recordPath)
	require.NoError(t, err)
	assert.Equal(t, scratchPath+"\n", string(seen))
}
