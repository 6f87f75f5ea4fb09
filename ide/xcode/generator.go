// Package xcode is the bundled workspace generator: one generated project per workspace
// configuration target, described by a manifest the IDE-native emitter consumes. Writing
// the IDE's native file format itself is out of scope; this generator produces the scoped
// project description and reports which targets must be built first.
package xcode

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/options"
	"github.com/hu19891110/buck/project"
)

const manifestFileName = "manifest.json"

// workspaceNameAttr optionally overrides the generated workspace's directory name.
const workspaceNameAttr = "workspace_name"

// GeneratorFactory creates workspace generators bound to one workspace node each.
type GeneratorFactory struct {
	opts *options.ProjectOptions
}

func NewGeneratorFactory(opts *options.ProjectOptions) *GeneratorFactory {
	return &GeneratorFactory{opts: opts}
}

func (factory *GeneratorFactory) NewGenerator(
	g *graph.TargetGraph,
	workspace *graph.TargetNode,
	genOpts project.GeneratorOptions,
) (project.WorkspaceGenerator, error) {
	name := workspace.Attribute(workspaceNameAttr)
	if name == "" {
		name = workspace.ID().ShortName()
	}

	outputPath := filepath.Join(factory.opts.WorkingDir, filepath.FromSlash(workspace.ID().BasePath()), name+".xcworkspace")

	return &workspaceGenerator{
		opts:       factory.opts,
		graph:      g,
		workspace:  workspace,
		genOpts:    genOpts,
		outputPath: outputPath,
	}, nil
}

type workspaceGenerator struct {
	opts       *options.ProjectOptions
	graph      *graph.TargetGraph
	workspace  *graph.TargetNode
	genOpts    project.GeneratorOptions
	outputPath string
}

func (generator *workspaceGenerator) OutputPath() string {
	return generator.outputPath
}

// workspaceManifest is the generated project description.
type workspaceManifest struct {
	Workspace       string   `json:"workspace"`
	CombinedProject bool     `json:"combined_project"`
	ReadOnly        bool     `json:"read_only"`
	Targets         []string `json:"targets"`
	Tests           []string `json:"tests,omitempty"`
}

// Generate writes the workspace manifest and reports the targets whose build outputs the
// generated project references, i.e. every generated-source rule in the workspace's scope.
func (generator *workspaceGenerator) Generate() (*project.GenerateResult, error) {
	scoped := generator.scopedTargets()

	var (
		targets  []string
		required []graph.TargetID
	)

	for _, id := range scoped {
		targets = append(targets, id.String())

		if node, ok := generator.graph.Get(id); ok && node.Kind() == graph.GenruleRule {
			required = append(required, id)
		}
	}

	var tests []string

	if generator.genOpts.IncludeTests {
		for _, test := range generator.genOpts.GroupableTests {
			tests = append(tests, test.ID().String())
		}

		sort.Strings(tests)
	}

	manifest := workspaceManifest{
		Workspace:       generator.workspace.ID().String(),
		CombinedProject: generator.genOpts.CombinedProject,
		ReadOnly:        generator.genOpts.ReadOnly,
		Targets:         targets,
		Tests:           tests,
	}

	manifestPath, err := generator.writeManifest(manifest)
	if err != nil {
		return nil, err
	}

	generator.opts.Logger.Infof("Generated workspace %s at %s", generator.workspace.ID(), generator.outputPath)

	return &project.GenerateResult{
		WrittenPaths:    []string{manifestPath},
		RequiredTargets: required,
	}, nil
}

// scopedTargets returns the workspace's transitive dependency closure, sorted.
func (generator *workspaceGenerator) scopedTargets() []graph.TargetID {
	visited := map[graph.TargetID]struct{}{}
	frontier := generator.workspace.Deps()

	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]

		if _, ok := visited[id]; ok {
			continue
		}

		visited[id] = struct{}{}

		if node, ok := generator.graph.Get(id); ok {
			frontier = append(frontier, node.Deps()...)
		}
	}

	scoped := make([]graph.TargetID, 0, len(visited))
	for id := range visited {
		scoped = append(scoped, id)
	}

	sort.Slice(scoped, func(i, j int) bool { return scoped[i] < scoped[j] })

	return scoped
}

func (generator *workspaceGenerator) writeManifest(manifest workspaceManifest) (string, error) {
	if err := os.MkdirAll(generator.outputPath, 0o755); err != nil {
		return "", errors.WithStackTrace(err)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", errors.WithStackTrace(err)
	}

	manifestPath := filepath.Join(generator.outputPath, manifestFileName)

	mode := os.FileMode(0o644)
	if generator.genOpts.ReadOnly {
		mode = 0o444
	}

	if err := os.WriteFile(manifestPath, data, mode); err != nil {
		return "", errors.WithStackTrace(err)
	}

	return manifestPath, nil
}
