package graph

import (
	"fmt"
	"sort"
	"strings"
)

// RuleKind is the enumerated type tag of a target node. Orchestration dispatches on the
// kind tag rather than inspecting runtime types.
type RuleKind string

const (
	// XcodeWorkspaceConfigRule marks targets that configure a generated workspace of one
	// or more IDE sub-projects.
	XcodeWorkspaceConfigRule RuleKind = "xcode_workspace_config"

	// ProjectConfigRule marks targets that configure a flat generated project.
	ProjectConfigRule RuleKind = "project_config"

	JavaLibraryRule    RuleKind = "java_library"
	AndroidLibraryRule RuleKind = "android_library"
	JavaTestRule       RuleKind = "java_test"
	AppleLibraryRule   RuleKind = "apple_library"
	AppleTestRule      RuleKind = "apple_test"

	// GenruleRule marks targets whose output only exists after a build, e.g. generated
	// sources a project references.
	GenruleRule RuleKind = "genrule"
)

// IsJVMLibrary reports whether the kind belongs to the JVM library family, the rules that
// may declare annotation processors whose output the IDE needs.
func (kind RuleKind) IsJVMLibrary() bool {
	return kind == JavaLibraryRule || kind == AndroidLibraryRule
}

// IsTest reports whether the kind is a test rule.
func (kind RuleKind) IsTest() bool {
	return kind == JavaTestRule || kind == AppleTestRule
}

// TargetNode is one node of the target graph. Nodes are created by a parse and never
// mutated afterwards; every accessor returns copies of list-valued fields.
type TargetNode struct {
	id                   TargetID
	kind                 RuleKind
	attributes           map[string]string
	deps                 []TargetID
	testTargets          []TargetID
	sourceUnderTest      []TargetID
	annotationProcessors []string
}

// NewTargetNode creates an immutable target node. All slice and map arguments are copied.
func NewTargetNode(
	id TargetID,
	kind RuleKind,
	attributes map[string]string,
	deps []TargetID,
	testTargets []TargetID,
	sourceUnderTest []TargetID,
	annotationProcessors []string,
) *TargetNode {
	attrs := make(map[string]string, len(attributes))
	for key, value := range attributes {
		attrs[key] = value
	}

	return &TargetNode{
		id:                   id,
		kind:                 kind,
		attributes:           attrs,
		deps:                 copyIDs(deps),
		testTargets:          copyIDs(testTargets),
		sourceUnderTest:      copyIDs(sourceUnderTest),
		annotationProcessors: append([]string(nil), annotationProcessors...),
	}
}

func (node *TargetNode) ID() TargetID {
	return node.id
}

func (node *TargetNode) Kind() RuleKind {
	return node.kind
}

// Attribute returns the named declared configuration attribute, or "" if absent.
func (node *TargetNode) Attribute(name string) string {
	return node.attributes[name]
}

// Deps returns the declared dependencies of this target.
func (node *TargetNode) Deps() []TargetID {
	return copyIDs(node.deps)
}

// TestTargets returns the declared test-dependency attribute: the tests the target author
// associated with this target. The referenced targets may be outside the parsed universe.
func (node *TargetNode) TestTargets() []TargetID {
	return copyIDs(node.testTargets)
}

// SourceUnderTest returns, for test nodes, the targets this test declares itself a test of.
func (node *TargetNode) SourceUnderTest() []TargetID {
	return copyIDs(node.sourceUnderTest)
}

// AnnotationProcessors returns the declared annotation processor class names, if any.
func (node *TargetNode) AnnotationProcessors() []string {
	return append([]string(nil), node.annotationProcessors...)
}

// Render this node as a human-readable string. The canonical form is stable, so dry-run
// output and logs are reproducible.
func (node *TargetNode) String() string {
	deps := make([]string, 0, len(node.deps))
	for _, dep := range node.deps {
		deps = append(deps, dep.String())
	}

	sort.Strings(deps)

	return fmt.Sprintf("%s (%s, deps: [%s])", node.id, node.kind, strings.Join(deps, ", "))
}

func copyIDs(ids []TargetID) []TargetID {
	return append([]TargetID(nil), ids...)
}
