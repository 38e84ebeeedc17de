package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/services"
)

// TestPositionFor verifies the grid coordinates for every layout direction.
func TestPositionFor(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		direction models.Direction
		wantX     int
		wantY     int
	}{
		{"vertical first", 0, models.DirectionVertical, 80, 60},
		{"vertical third", 2, models.DirectionVertical, 80, 60 + 2*(70+60)},
		{"horizontal first", 0, models.DirectionHorizontal, 80, 60},
		{"horizontal third", 2, models.DirectionHorizontal, 80 + 2*(180+60), 60},
		{"grid first row", 2, models.DirectionGrid, 80 + 2*(180+60), 60},
		{"grid wraps to second row", 3, models.DirectionGrid, 80, 60 + (70 + 60)},
		{"grid second row second column", 4, models.DirectionGrid, 80 + (180 + 60), 60 + (70 + 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := services.PositionFor(tt.index, tt.direction)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

// TestChainEdges verifies that n nodes produce n-1 edges in order.
func TestChainEdges(t *testing.T) {
	assert.Empty(t, services.ChainEdges(nil))
	assert.Empty(t, services.ChainEdges([]models.Node{{ID: "only"}}))

	nodes := []models.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	edges := services.ChainEdges(nodes)
	require.Len(t, edges, 2)
	assert.Equal(t, models.Edge{Source: "a", Target: "b"}, edges[0])
	assert.Equal(t, models.Edge{Source: "b", Target: "c"}, edges[1])
}

// TestBuildDiagram verifies node order, geometry and chaining of a freshly
// built diagram.
func TestBuildDiagram(t *testing.T) {
	steps := []string{"Налить воду", "Вскипятить", "Заварить"}
	diagram := services.BuildDiagram(steps, models.DirectionVertical, models.SourceLLM)

	require.Len(t, diagram.Nodes, 3)
	require.Len(t, diagram.Edges, 2)
	assert.Equal(t, models.DirectionVertical, diagram.Direction)
	assert.Equal(t, models.SourceLLM, diagram.Source)
	assert.False(t, diagram.UpdatedAt.IsZero())

	seen := map[string]bool{}
	for i, node := range diagram.Nodes {
		assert.Equal(t, steps[i], node.Label)
		assert.Equal(t, services.NodeWidth, node.Width)
		assert.Equal(t, services.NodeHeight, node.Height)
		wantX, wantY := services.PositionFor(i, models.DirectionVertical)
		assert.Equal(t, wantX, node.X)
		assert.Equal(t, wantY, node.Y)
		assert.NotEmpty(t, node.ID)
		assert.False(t, seen[node.ID], "node IDs must be unique")
		seen[node.ID] = true
	}
	assert.Equal(t, diagram.Nodes[0].ID, diagram.Edges[0].Source)
	assert.Equal(t, diagram.Nodes[1].ID, diagram.Edges[0].Target)
}

// TestBuildDiagramEmpty verifies that zero steps still yield non-nil slices,
// so the JSON encoding stays [] instead of null.
func TestBuildDiagramEmpty(t *testing.T) {
	diagram := services.BuildDiagram(nil, models.DirectionVertical, models.SourceManual)
	assert.NotNil(t, diagram.Nodes)
	assert.NotNil(t, diagram.Edges)
	assert.Empty(t, diagram.Nodes)
	assert.Empty(t, diagram.Edges)
}

// TestRelayoutDiagram verifies that switching direction recomputes positions
// without touching node identity or order.
func TestRelayoutDiagram(t *testing.T) {
	diagram := services.BuildDiagram([]string{"a", "b", "c", "d"}, models.DirectionVertical, models.SourceManual)
	ids := make([]string, 0, len(diagram.Nodes))
	for _, n := range diagram.Nodes {
		ids = append(ids, n.ID)
	}

	services.RelayoutDiagram(diagram, models.DirectionGrid)

	assert.Equal(t, models.DirectionGrid, diagram.Direction)
	require.Len(t, diagram.Nodes, 4)
	for i, node := range diagram.Nodes {
		assert.Equal(t, ids[i], node.ID, "relayout must not reorder nodes")
		wantX, wantY := services.PositionFor(i, models.DirectionGrid)
		assert.Equal(t, wantX, node.X)
		assert.Equal(t, wantY, node.Y)
	}
	require.Len(t, diagram.Edges, 3)
}
