package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/primetree/pkg/hit"
	"github.com/matzehuels/primetree/pkg/prime"
	"github.com/matzehuels/primetree/pkg/render"
)

const hoverCSS = `
    .node circle { transition: stroke-width 0.2s ease; }
    .node:hover circle { stroke: %s; stroke-width: 3; }
    .edge:hover line { stroke: %s; stroke-width: 3; }
    text { pointer-events: none; font-family: sans-serif; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	tooltips   bool
	background string
	hoverCSS   bool
}

// WithTooltips adds a <title> to every node and visible edge.
func WithTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = true } }

// WithBackground fills the canvas with a CSS colour.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithHoverCSS embeds a stylesheet that highlights nodes and edges under
// the mouse.
func WithHoverCSS() SVGOption { return func(r *svgRenderer) { r.hoverCSS = true } }

// RenderSVG draws the scene as an SVG document the size of the canvas.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.hoverCSS {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", fmt.Sprintf(hoverCSS, s.Palette.Highlight, s.Palette.Highlight))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}
	if !s.Empty() {
		renderSymmetry(&buf, s)
		renderEdges(&buf, s, r.tooltips)
		renderNodes(&buf, s, r.tooltips)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSymmetry(buf *bytes.Buffer, s render.Scene) {
	x, ok := s.Symmetry()
	if !ok {
		return
	}
	fmt.Fprintf(buf, `  <line class="symmetry" x1="%.2f" y1="0" x2="%.2f" y2="%.2f" stroke="%s" stroke-dasharray="6 4"/>`+"\n",
		x, x, s.Height, s.Palette.Symmetry)
}

func renderEdges(buf *bytes.Buffer, s render.Scene, tooltips bool) {
	for i, e := range s.Tree.Edges {
		if !s.EdgeVisible(e) {
			continue
		}
		x1, y1 := s.Screen(s.Tree.Node(e.From))
		x2, y2 := s.Screen(s.Tree.Node(e.To))
		stroke, width := s.Palette.Edge, 1.0
		if s.HoveredEdge(i) {
			stroke, width = s.Palette.Highlight, 3
		}
		buf.WriteString(`  <g class="edge">`)
		if tooltips {
			r := hit.Result{Kind: hit.EdgeHit, Node: -1, Edge: i}
			fmt.Fprintf(buf, "<title>%s</title>", html.EscapeString(r.Tooltip(s.Tree)))
		}
		fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`,
			x1, y1, x2, y2, stroke, width)
		buf.WriteString("</g>\n")
	}
}

func renderNodes(buf *bytes.Buffer, s render.Scene, tooltips bool) {
	radius := s.Radius()
	for i := range s.Tree.Nodes {
		n := &s.Tree.Nodes[i]
		cx, cy := s.Screen(n)
		fmt.Fprintf(buf, `  <g class="node" id="node-%d">`, n.Value)
		if tooltips {
			fmt.Fprintf(buf, "<title>%s</title>", html.EscapeString(prime.Format(n.Value, n.Factors)))
		}
		stroke := ""
		if s.Hovered(n.ID) {
			stroke = fmt.Sprintf(` stroke="%s" stroke-width="3"`, s.Palette.Highlight)
		}
		fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s/>`,
			cx, cy, radius, s.Palette.NodeFill(n), stroke)
		if label := s.Label(n); label != "" {
			fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-size="%.1f" fill="%s">%s</text>`,
				cx, cy, fontSize(label, radius), s.Palette.Label, html.EscapeString(label))
		}
		buf.WriteString("</g>\n")
	}
}

// fontSize shrinks long labels so they stay inside the circle.
func fontSize(label string, radius float64) float64 {
	size := radius * 0.8
	if n := float64(len([]rune(label))); n > 2 {
		size = size * 2 / n * 1.2
	}
	return max(size, 4)
}
