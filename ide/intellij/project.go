// Package intellij is the bundled flat-project generation backend: the identity transform
// from target graph to build-rule graph, and an emitter that writes the flat project
// description to the orchestrator's scratch location and hands it to the configured
// post-process script. Rendering the IDE's native project files is the script's job.
package intellij

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/project"
	"github.com/hu19891110/buck/shell"
)

// Transformer derives the build-rule graph for flat generation. Every target node becomes
// one rule instance with the same label and kind tag.
type Transformer struct{}

func NewTransformer() *Transformer {
	return &Transformer{}
}

func (transformer *Transformer) Transform(g *graph.TargetGraph) (*graph.ActionGraph, error) {
	var rules []*graph.BuildRule

	for _, node := range g.Nodes() {
		rules = append(rules, &graph.BuildRule{ID: node.ID(), Kind: node.Kind()})
	}

	return graph.NewActionGraph(rules), nil
}

// Emitter writes the flat project description.
type Emitter struct {
	opts *options.ProjectOptions
}

func NewEmitter(opts *options.ProjectOptions) *Emitter {
	return &Emitter{opts: opts}
}

type flatProjectModule struct {
	Target   string `json:"target"`
	BasePath string `json:"base_path"`
	Alias    string `json:"alias,omitempty"`
	Manifest string `json:"manifest,omitempty"`
}

type flatProjectDescription struct {
	Modules []flatProjectModule `json:"modules"`
	Rules   []string            `json:"rules"`
}

// Emit writes the project description for the given project configuration rules to the
// scratch path, then runs the post-process script over it when one is configured,
// propagating the script's exit code.
func (emitter *Emitter) Emit(
	actionGraph *graph.ActionGraph,
	projectConfigs []*graph.BuildRule,
	meta project.FlatProjectMeta,
	scratchPath string,
) (int, error) {
	description := flatProjectDescription{}

	for _, rule := range projectConfigs {
		description.Modules = append(description.Modules, flatProjectModule{
			Target:   rule.ID.String(),
			BasePath: rule.ID.BasePath(),
			Alias:    meta.BasePathToAliases[rule.ID.BasePath()],
			Manifest: meta.DefaultManifestPath,
		})
	}

	for _, rule := range actionGraph.Rules() {
		description.Rules = append(description.Rules, rule.ID.String())
	}

	sort.Strings(description.Rules)

	data, err := json.MarshalIndent(description, "", "  ")
	if err != nil {
		return 1, errors.WithStackTrace(err)
	}

	if err := os.WriteFile(scratchPath, data, 0o644); err != nil {
		return 1, errors.WithStackTrace(err)
	}

	emitter.opts.Logger.Debugf("Wrote flat project description with %d modules to %s", len(description.Modules), scratchPath)

	if meta.PostProcessScriptPath != "" {
		return shell.RunShellCommand(emitter.opts, meta.PostProcessScriptPath, scratchPath)
	}

	return 0, nil
}
