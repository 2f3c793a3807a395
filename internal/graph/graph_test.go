package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wyldefox/rustlens/internal/graph"
)

func TestAddEdgeDeduplicatesAndRegistersEndpoints(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")

	assert.ElementsMatch(t, []string{"a", "b", "c"}, g.Nodes())
	assert.Equal(t, []string{"b", "c"}, g.Successors("a"))
	assert.Equal(t, []string{"a"}, g.Predecessors("b"))
	assert.Equal(t, 2, g.OutDegree("a"))
	assert.Equal(t, 0, g.InDegree("a"))
}

func TestAddNodeWithNoEdgesStillCounts(t *testing.T) {
	g := graph.New()
	g.AddNode("isolated")

	assert.True(t, g.HasNode("isolated"))
	assert.Empty(t, g.Successors("isolated"))
}

func TestAdjacencyIncludesEveryNodeEvenWithNoEdges(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddNode("isolated")

	adj := g.Adjacency()
	assert.Equal(t, []string{"b"}, adj["a"])
	assert.Empty(t, adj["isolated"])
	_, ok := adj["isolated"]
	assert.True(t, ok)
}
