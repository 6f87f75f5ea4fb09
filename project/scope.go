package project

import (
	"github.com/hu19891110/buck/errors"
	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/util"
)

// ScopeBundle is the immutable project scope handed to generation: the selected roots, the
// (possibly re-parsed) target graph they live in, the explicitly declared test targets,
// and the predicate that pulls in further associated tests. Constructed once per command
// invocation and never mutated.
type ScopeBundle struct {
	roots                   []graph.TargetID
	graph                   *graph.TargetGraph
	explicitTestTargets     []graph.TargetID
	withTests               bool
	associatedTestPredicate AssociatedTestPredicate
}

// NewScopeBundle packages the root selection and test expansion results. Every root must
// resolve in the given graph; a root that does not is the deferred lookup failure for a
// requested target outside the parsed universe.
func NewScopeBundle(
	roots []graph.TargetID,
	g *graph.TargetGraph,
	associatedTestPredicate AssociatedTestPredicate,
	withTests bool,
	explicitTestTargets []graph.TargetID,
) (*ScopeBundle, error) {
	for _, root := range roots {
		if _, ok := g.Get(root); !ok {
			return nil, errors.WithStackTrace(graph.TargetNotFoundError{Target: root})
		}
	}

	return &ScopeBundle{
		roots:                   append([]graph.TargetID(nil), roots...),
		graph:                   g,
		explicitTestTargets:     append([]graph.TargetID(nil), explicitTestTargets...),
		withTests:               withTests,
		associatedTestPredicate: associatedTestPredicate,
	}, nil
}

// Roots returns the selected project root targets.
func (scope *ScopeBundle) Roots() []graph.TargetID {
	return append([]graph.TargetID(nil), scope.roots...)
}

// RootSet returns the roots as a set.
func (scope *ScopeBundle) RootSet() map[graph.TargetID]struct{} {
	return util.SetFromSlice(scope.roots)
}

// Graph returns the target graph the scope was resolved against. When tests were included
// this is the re-parsed graph that contains them.
func (scope *ScopeBundle) Graph() *graph.TargetGraph {
	return scope.graph
}

// ExplicitTestTargets returns the targets declared in the roots' test attributes.
func (scope *ScopeBundle) ExplicitTestTargets() []graph.TargetID {
	return append([]graph.TargetID(nil), scope.explicitTestTargets...)
}

// WithTests reports whether associated tests were requested for this scope.
func (scope *ScopeBundle) WithTests() bool {
	return scope.withTests
}

// AssociatedTests returns every test node visible to generators: the union of the roots'
// declared test targets and the graph nodes matching the associated-test predicate, sorted
// by target label. Generators must traverse this union, not either half alone.
func (scope *ScopeBundle) AssociatedTests() []*graph.TargetNode {
	byID := map[graph.TargetID]*graph.TargetNode{}

	for _, id := range scope.explicitTestTargets {
		if node, ok := scope.graph.Get(id); ok {
			byID[id] = node
		}
	}

	if scope.associatedTestPredicate != nil {
		roots := scope.RootSet()

		for _, node := range scope.graph.Nodes() {
			if scope.associatedTestPredicate(node, roots) {
				byID[node.ID()] = node
			}
		}
	}

	tests := make([]*graph.TargetNode, 0, len(byID))
	for _, id := range util.SortedKeys(byID) {
		tests = append(tests, byID[id])
	}

	return tests
}

// ExplicitTestTargets computes the union of every root's declared test-dependency
// attribute. A root's test attribute is authoritative even when the referenced target is
// outside the currently parsed universe, so results may name targets absent from g.
func ExplicitTestTargets(roots []graph.TargetID, g *graph.TargetGraph) []graph.TargetID {
	tests := map[graph.TargetID]struct{}{}

	for _, root := range roots {
		node, ok := g.Get(root)
		if !ok {
			continue
		}

		for _, test := range node.TestTargets() {
			tests[test] = struct{}{}
		}
	}

	return util.SortedKeys(tests)
}

// CreateScope expands the root selection into the final project scope. Without tests the
// given graph is bundled as is. With tests, the roots' declared test targets are computed
// and the graph is re-parsed with the universe specs plus explicit specs for every root
// and test target, so that targets reachable only through test declarations become
// visible even when the original parse was scoped narrowly.
func CreateScope(
	parser Parser,
	projectGraph *graph.TargetGraph,
	roots []graph.TargetID,
	withTests bool,
	universeSpecs []graph.TargetSpec,
	associatedTestPredicate AssociatedTestPredicate,
) (*ScopeBundle, error) {
	if !withTests {
		return NewScopeBundle(roots, projectGraph, associatedTestPredicate, false, nil)
	}

	explicitTestTargets := ExplicitTestTargets(roots, projectGraph)

	specs := graph.MergeSpecs(
		universeSpecs,
		graph.SpecsForTargets(append(append([]graph.TargetID(nil), roots...), explicitTestTargets...)),
	)

	expandedGraph, err := parser.Parse(specs)
	if err != nil {
		return nil, err
	}

	return NewScopeBundle(roots, expandedGraph, associatedTestPredicate, true, explicitTestTargets)
}
