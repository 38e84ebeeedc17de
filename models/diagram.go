package models

import "time"

type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
	DirectionGrid       Direction = "grid"
)

// Valid reports whether the direction is one of the supported layout modes.
func (d Direction) Valid() bool {
	switch d {
	case DirectionVertical, DirectionHorizontal, DirectionGrid:
		return true
	}
	return false
}

type DiagramSource string

const (
	SourceLLM      DiagramSource = "llm"
	SourceFallback DiagramSource = "fallback"
	SourceManual   DiagramSource = "manual"
)

// Node is one rectangle of the flowchart.
type Node struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Edge is a directed "happens after" link between two node IDs.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Diagram is the whole editable flowchart. It lives only in session memory
// and is replaced wholesale on every generation request.
type Diagram struct {
	Direction Direction     `json:"direction"`
	Source    DiagramSource `json:"source"`
	Nodes     []Node        `json:"nodes"`
	Edges     []Edge        `json:"edges"`
	UpdatedAt time.Time     `json:"updated_at"`
}
