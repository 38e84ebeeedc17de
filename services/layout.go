package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/kirill778/flowchart/models"
)

// Node geometry. The UI renders whatever coordinates it gets, these only
// need to be consistent across directions.
const (
	NodeWidth   = 180
	NodeHeight  = 70
	NodeGap     = 60
	OriginX     = 80
	OriginY     = 60
	GridColumns = 3
)

// PositionFor returns the top-left corner of node i for the given direction.
func PositionFor(i int, direction models.Direction) (x, y int) {
	switch direction {
	case models.DirectionHorizontal:
		return OriginX + i*(NodeWidth+NodeGap), OriginY
	case models.DirectionGrid:
		col := i % GridColumns
		row := i / GridColumns
		return OriginX + col*(NodeWidth+NodeGap), OriginY + row*(NodeHeight+NodeGap)
	default:
		return OriginX, OriginY + i*(NodeHeight+NodeGap)
	}
}

// BuildDiagram lays steps out as a fresh diagram: one node per step in
// order, chained with N-1 edges.
func BuildDiagram(steps []string, direction models.Direction, source models.DiagramSource) *models.Diagram {
	nodes := make([]models.Node, 0, len(steps))
	for i, label := range steps {
		x, y := PositionFor(i, direction)
		nodes = append(nodes, models.Node{
			ID:     uuid.New().String(),
			Label:  label,
			X:      x,
			Y:      y,
			Width:  NodeWidth,
			Height: NodeHeight,
		})
	}
	return &models.Diagram{
		Direction: direction,
		Source:    source,
		Nodes:     nodes,
		Edges:     ChainEdges(nodes),
		UpdatedAt: time.Now(),
	}
}

// ChainEdges connects node i to node i+1, yielding len(nodes)-1 edges.
func ChainEdges(nodes []models.Node) []models.Edge {
	if len(nodes) < 2 {
		return []models.Edge{}
	}
	edges := make([]models.Edge, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		edges = append(edges, models.Edge{Source: nodes[i-1].ID, Target: nodes[i].ID})
	}
	return edges
}

// RelayoutDiagram recomputes every node position for the new direction,
// preserving node order and labels.
func RelayoutDiagram(diagram *models.Diagram, direction models.Direction) {
	for i := range diagram.Nodes {
		x, y := PositionFor(i, direction)
		diagram.Nodes[i].X = x
		diagram.Nodes[i].Y = y
		diagram.Nodes[i].Width = NodeWidth
		diagram.Nodes[i].Height = NodeHeight
	}
	diagram.Direction = direction
	diagram.UpdatedAt = time.Now()
}
