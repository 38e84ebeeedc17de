package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/awalterschulze/gographviz"

	"github.com/kirill778/flowchart/models"
)

const (
	svgMargin      = 40
	svgMaxLabelLen = 24
)

// RenderSVG draws the diagram as static inline SVG: rounded rectangles,
// centered labels and arrowhead edges. Long labels are ellipsis-truncated
// with the full text kept in a <title>.
func RenderSVG(d *models.Diagram) []byte {
	width, height := svgCanvasSize(d)

	var b strings.Builder
	b.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height))
	b.WriteString(`<defs><marker id="arrow" markerWidth="10" markerHeight="7" refX="10" refY="3.5" orient="auto">`)
	b.WriteString(`<polygon points="0 0, 10 3.5, 0 7" fill="#555"/></marker></defs>`)

	// edges first so nodes paint over them
	for _, e := range d.Edges {
		src, okSrc := findNode(d, e.Source)
		dst, okDst := findNode(d, e.Target)
		if !okSrc || !okDst {
			continue
		}
		x1, y1, x2, y2 := edgeEndpoints(src, dst)
		b.WriteString(fmt.Sprintf(
			`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#555" stroke-width="2" marker-end="url(#arrow)"/>`,
			x1, y1, x2, y2))
	}

	for _, n := range d.Nodes {
		b.WriteString("<g>")
		b.WriteString(fmt.Sprintf("<title>%s</title>", html.EscapeString(n.Label)))
		b.WriteString(fmt.Sprintf(
			`<rect x="%d" y="%d" width="%d" height="%d" rx="8" fill="#eef2ff" stroke="#4f5d95" stroke-width="2"/>`,
			n.X, n.Y, n.Width, n.Height))
		b.WriteString(fmt.Sprintf(
			`<text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="13">%s</text>`,
			n.X+n.Width/2, n.Y+n.Height/2, html.EscapeString(truncateLabel(n.Label, svgMaxLabelLen))))
		b.WriteString("</g>")
	}

	b.WriteString("</svg>")
	return []byte(b.String())
}

// RenderDOT builds a graphviz digraph for external tooling.
func RenderDOT(d *models.Diagram) (string, error) {
	dotGraph := gographviz.NewGraph()
	if err := dotGraph.SetName("flowchart"); err != nil {
		return "", err
	}
	if err := dotGraph.SetDir(true); err != nil {
		return "", err
	}
	if err := dotGraph.AddAttr("flowchart", "rankdir", rankdir(d.Direction)); err != nil {
		return "", err
	}

	for _, n := range d.Nodes {
		attrs := map[string]string{
			"label": fmt.Sprintf("\"%s\"", escapeDOT(n.Label)),
			"shape": "\"box\"",
			"style": "\"rounded\"",
		}
		if err := dotGraph.AddNode("flowchart", quoteDOT(n.ID), attrs); err != nil {
			return "", err
		}
	}
	for _, e := range d.Edges {
		if err := dotGraph.AddEdge(quoteDOT(e.Source), quoteDOT(e.Target), true, nil); err != nil {
			return "", err
		}
	}

	return dotGraph.String(), nil
}

func svgCanvasSize(d *models.Diagram) (width, height int) {
	maxX, maxY := 0, 0
	for _, n := range d.Nodes {
		if n.X+n.Width > maxX {
			maxX = n.X + n.Width
		}
		if n.Y+n.Height > maxY {
			maxY = n.Y + n.Height
		}
	}
	width = maxX + svgMargin
	height = maxY + svgMargin
	if width < 2*svgMargin {
		width = 2 * svgMargin
	}
	if height < 2*svgMargin {
		height = 2 * svgMargin
	}
	return width, height
}

// edgeEndpoints anchors the line on the facing borders of the two nodes,
// picked by the dominant axis between their centers.
func edgeEndpoints(a, b models.Node) (x1, y1, x2, y2 int) {
	acx, acy := a.X+a.Width/2, a.Y+a.Height/2
	bcx, bcy := b.X+b.Width/2, b.Y+b.Height/2
	dx, dy := bcx-acx, bcy-acy
	if abs(dx) > abs(dy) {
		if dx > 0 {
			return a.X + a.Width, acy, b.X, bcy
		}
		return a.X, acy, b.X + b.Width, bcy
	}
	if dy > 0 {
		return acx, a.Y + a.Height, bcx, b.Y
	}
	return acx, a.Y, bcx, b.Y + b.Height
}

func findNode(d *models.Diagram, nodeID string) (models.Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == nodeID {
			return n, true
		}
	}
	return models.Node{}, false
}

func truncateLabel(label string, max int) string {
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	return string(runes[:max-1]) + "…"
}

func rankdir(direction models.Direction) string {
	if direction == models.DirectionHorizontal {
		return "LR"
	}
	return "TB"
}

func quoteDOT(id string) string {
	return "\"" + id + "\""
}

func escapeDOT(label string) string {
	label = strings.ReplaceAll(label, `\`, `\\`)
	return strings.ReplaceAll(label, `"`, `\"`)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
