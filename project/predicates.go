package project

import (
	"sort"

	"github.com/hu19891110/buck/graph"
	"github.com/hu19891110/buck/options"
)

// RootPredicate decides whether a node counts as a project root for some IDE.
type RootPredicate func(node *graph.TargetNode) bool

// AssociatedTestPredicate decides whether a test node belongs in project scope for the
// given root set even though it is not a declared dependency of any root.
type AssociatedTestPredicate func(node *graph.TargetNode, roots map[graph.TargetID]struct{}) bool

// Predicates carries the IDE-specific scope decision functions.
type Predicates struct {
	Roots           RootPredicate
	AssociatedTests AssociatedTestPredicate
}

// PredicatesForIDE returns the predicates for the given IDE kind: each IDE marks its
// project roots with a different configuration rule kind, while both associate tests
// through the test's declared source-under-test relation.
func PredicatesForIDE(ide options.IDE) Predicates {
	rootKind := graph.ProjectConfigRule
	if ide == options.IDEXcode {
		rootKind = graph.XcodeWorkspaceConfigRule
	}

	return Predicates{
		Roots: func(node *graph.TargetNode) bool {
			return node.Kind() == rootKind
		},
		AssociatedTests: testsSourceUnderTestPredicate,
	}
}

func testsSourceUnderTestPredicate(node *graph.TargetNode, roots map[graph.TargetID]struct{}) bool {
	if !node.Kind().IsTest() {
		return false
	}

	for _, tested := range node.SourceUnderTest() {
		if _, ok := roots[tested]; ok {
			return true
		}
	}

	return false
}

// UniverseSpecs returns the IDE's normal universe-selecting spec set: Xcode scopes the
// parse to the requested targets when any were passed, everything else parses the whole
// universe.
func UniverseSpecs(ide options.IDE, explicitTargets []graph.TargetID) []graph.TargetSpec {
	if ide == options.IDEXcode && len(explicitTargets) > 0 {
		return graph.SpecsForTargets(explicitTargets)
	}

	return []graph.TargetSpec{graph.AllTargetsSpec{}}
}

// SelectRoots computes the initial project roots: the explicitly requested targets when
// any were passed (the predicate is ignored, and no existence check happens here — a
// missing target surfaces as a lookup failure later), otherwise every node matching the
// root predicate, sorted for reproducible output.
func SelectRoots(g *graph.TargetGraph, explicitTargets []graph.TargetID, rootsPredicate RootPredicate) []graph.TargetID {
	if len(explicitTargets) > 0 {
		return append([]graph.TargetID(nil), explicitTargets...)
	}

	var roots []graph.TargetID

	for _, node := range g.Nodes() {
		if rootsPredicate(node) {
			roots = append(roots, node.ID())
		}
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	return roots
}

// AnnotationProcessingTargets returns the targets whose annotation processor output the
// IDE needs: JVM library rules declaring a non-empty processor list. Scoped to the
// explicitly requested targets when any were passed, otherwise the whole graph.
func AnnotationProcessingTargets(g *graph.TargetGraph, explicitTargets []graph.TargetID) []graph.TargetID {
	return SelectRoots(g, explicitTargets, func(node *graph.TargetNode) bool {
		return node.Kind().IsJVMLibrary() && len(node.AnnotationProcessors()) > 0
	})
}
