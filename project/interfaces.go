// Package project resolves which targets belong in a generated IDE project and drives the
// per-IDE generators over that selection: root selection, associated-test expansion, the
// scope bundle handed to generation, the running-IDE guard, and the workspace and
// flat-project orchestrators with their final scoped build trigger.
package project

import "github.com/hu19891110/buck/graph"

// Parser builds a target graph from a set of target specs. Parsing must be referentially
// transparent: the same specs over the same inputs always yield the same node set.
type Parser interface {
	Parse(specs []graph.TargetSpec) (*graph.TargetGraph, error)
}

// GenerateResult is what one generator run reports back.
type GenerateResult struct {
	// Paths of the project files the generator wrote.
	WrittenPaths []string

	// Targets whose build outputs must exist before the generated project is usable,
	// e.g. generated sources the project references.
	RequiredTargets []graph.TargetID
}

// GeneratorOptions configures one workspace generator.
type GeneratorOptions struct {
	CombinedProject bool
	ReadOnly        bool
	IncludeTests    bool

	// Tests that may be combined into shared bundles, when bundling was requested.
	GroupableTests []*graph.TargetNode
}

// WorkspaceGenerator generates the IDE project files for one workspace.
type WorkspaceGenerator interface {
	// OutputPath is where this generator writes its project; orchestration de-duplicates
	// generators by this path.
	OutputPath() string

	Generate() (*GenerateResult, error)
}

// WorkspaceGeneratorFactory creates a generator bound to one workspace node of the graph.
type WorkspaceGeneratorFactory interface {
	NewGenerator(g *graph.TargetGraph, workspace *graph.TargetNode, genOpts GeneratorOptions) (WorkspaceGenerator, error)
}

// GraphTransformer derives the build-rule graph that flat project generation consumes.
type GraphTransformer interface {
	Transform(g *graph.TargetGraph) (*graph.ActionGraph, error)
}

// FlatProjectMeta is the project metadata handed to the flat-project emitter.
type FlatProjectMeta struct {
	BasePathToAliases     map[string]string
	DefaultManifestPath   string
	PostProcessScriptPath string
}

// FlatProjectEmitter writes the flat project description to the given scratch path and
// returns its exit code.
type FlatProjectEmitter interface {
	Emit(actionGraph *graph.ActionGraph, projectConfigs []*graph.BuildRule, meta FlatProjectMeta, scratchPath string) (int, error)
}

// BuildRunner triggers a scoped build of exactly the given targets and returns the build's
// exit code.
type BuildRunner interface {
	Build(targets []graph.TargetID) (int, error)
}

// ProcessManager detects and terminates host processes by name.
type ProcessManager interface {
	IsRunning(name string) (bool, error)
	Kill(name string) error
}

// Dependencies bundles the external collaborators one project command invocation drives.
type Dependencies struct {
	Parser           Parser
	WorkspaceFactory WorkspaceGeneratorFactory
	Transformer      GraphTransformer
	FlatEmitter      FlatProjectEmitter
	Build            BuildRunner

	// Processes may be nil when the host offers no process management; the IDE guard then
	// degrades to a logged warning.
	Processes ProcessManager
}
