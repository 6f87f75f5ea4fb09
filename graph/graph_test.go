package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hu19891110/buck/graph"
)

func node(id string, kind graph.RuleKind, deps ...string) *graph.TargetNode {
	depIDs := make([]graph.TargetID, 0, len(deps))
	for _, dep := range deps {
		depIDs = append(depIDs, graph.TargetID(dep))
	}

	return graph.NewTargetNode(graph.TargetID(id), kind, nil, depIDs, nil, nil, nil)
}

func TestNewTargetGraphRejectsDuplicateTargets(t *testing.T) {
	t.Parallel()

	_, err := graph.NewTargetGraph([]*graph.TargetNode{
		node("//app:lib", graph.JavaLibraryRule),
		node("//app:lib", graph.JavaLibraryRule),
	})

	require.Error(t, err)

	var dupErr graph.DuplicateTargetError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, graph.TargetID("//app:lib"), dupErr.Target)
}

func TestTargetGraphLookupAndIteration(t *testing.T) {
	t.Parallel()

	g, err := graph.NewTargetGraph([]*graph.TargetNode{
		node("//b:b", graph.JavaLibraryRule),
		node("//a:a", graph.JavaLibraryRule, "//b:b"),
		node("//c:c", graph.GenruleRule),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.Size())

	found, ok := g.Get("//a:a")
	require.True(t, ok)
	assert.Equal(t, graph.TargetID("//a:a"), found.ID())
	assert.Equal(t, []graph.TargetID{"//b:b"}, found.Deps())

	_, ok = g.Get("//missing:missing")
	assert.False(t, ok)

	assert.Equal(t, []graph.TargetID{"//a:a", "//b:b", "//c:c"}, g.TargetIDs())

	var ids []graph.TargetID
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, g.TargetIDs(), ids, "node iteration must follow sorted label order")
}

func TestTargetNodeAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	original := graph.NewTargetNode(
		"//app:lib",
		graph.JavaLibraryRule,
		map[string]string{"visibility": "public"},
		[]graph.TargetID{"//dep:dep"},
		[]graph.TargetID{"//app:test"},
		nil,
		[]string{"com.example.Processor"},
	)

	deps := original.Deps()
	deps[0] = "//mutated:mutated"
	assert.Equal(t, []graph.TargetID{"//dep:dep"}, original.Deps())

	tests := original.TestTargets()
	tests[0] = "//mutated:mutated"
	assert.Equal(t, []graph.TargetID{"//app:test"}, original.TestTargets())

	assert.Equal(t, "public", original.Attribute("visibility"))
	assert.Equal(t, "", original.Attribute("missing"))
}
