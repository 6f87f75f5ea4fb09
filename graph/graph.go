package graph

import (
	"fmt"
	"sort"
)

// TargetGraph is the immutable set of target nodes produced by one parse, with
// lookup-by-label and full-node iteration. A re-parse produces a new TargetGraph; the old
// one is never mutated, only superseded.
type TargetGraph struct {
	nodes map[TargetID]*TargetNode
}

// NewTargetGraph builds a graph from the given nodes. Later duplicates of the same target
// label are rejected, since a parse is expected to produce each node exactly once.
func NewTargetGraph(nodes []*TargetNode) (*TargetGraph, error) {
	byID := make(map[TargetID]*TargetNode, len(nodes))

	for _, node := range nodes {
		if _, ok := byID[node.ID()]; ok {
			return nil, DuplicateTargetError{Target: node.ID()}
		}

		byID[node.ID()] = node
	}

	return &TargetGraph{nodes: byID}, nil
}

// Get looks up the node for the given target label.
func (g *TargetGraph) Get(id TargetID) (*TargetNode, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Size returns the number of nodes in the graph.
func (g *TargetGraph) Size() int {
	return len(g.nodes)
}

// TargetIDs returns every target label in the graph, sorted.
func (g *TargetGraph) TargetIDs() []TargetID {
	ids := make([]TargetID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// Nodes returns every node in the graph, sorted by target label.
func (g *TargetGraph) Nodes() []*TargetNode {
	nodes := make([]*TargetNode, 0, len(g.nodes))
	for _, id := range g.TargetIDs() {
		nodes = append(nodes, g.nodes[id])
	}

	return nodes
}

// DuplicateTargetError is returned when a parse produces two nodes with the same label.
type DuplicateTargetError struct {
	Target TargetID
}

func (err DuplicateTargetError) Error() string {
	return fmt.Sprintf("target %s is defined more than once", err.Target)
}

// TargetNotFoundError is returned when a requested or referenced target does not exist in
// the parsed universe.
type TargetNotFoundError struct {
	Target TargetID
}

func (err TargetNotFoundError) Error() string {
	return fmt.Sprintf("target %s does not exist in the parsed target graph", err.Target)
}
