package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/primetree/pkg/prime"
	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed labels each node with its factorization instead of its value.
	Detailed bool
	// Edges selects which edges are emitted. Empty means all.
	Edges render.EdgeMode
	// Pinned fixes every node at its laid-out model position so Graphviz
	// reproduces the engine's layout instead of computing its own.
	Pinned bool
}

// ToDOT converts a tree to Graphviz DOT format. Primes and composites get
// the default palette fills.
func ToDOT(t *tree.Tree, opts Options) string {
	palette := render.DefaultPalette()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontcolor=white, fontsize=14, fixedsize=true, width=0.6];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if t != nil {
		for i := range t.Nodes {
			n := &t.Nodes[i]
			attrs := fmtAttrs(n, palette, opts)
			fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n.Value), strings.Join(attrs, ", "))
		}

		buf.WriteString("\n")
		scene := render.Scene{Tree: t, Display: render.Display{Edges: opts.Edges}}
		for _, e := range t.Edges {
			if !scene.EdgeVisible(e) {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(t.Node(e.From).Value), nodeID(t.Node(e.To).Value))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(v int) string { return "n" + strconv.Itoa(v) }

func fmtAttrs(n *tree.Node, p render.Palette, opts Options) []string {
	label := strconv.Itoa(n.Value)
	if opts.Detailed {
		label = prime.Format(n.Value, n.Factors)
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", p.NodeFill(n)),
		fmt.Sprintf("tooltip=%q", prime.Format(n.Value, n.Factors)),
	}
	if opts.Detailed {
		attrs = append(attrs, "fixedsize=false", "shape=box", `style="rounded,filled"`)
	}
	if opts.Pinned {
		// Graphviz positions are in points with y growing upwards.
		attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X, -n.Y))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz. Pinned graphs are
// laid out with neato so the pinned positions hold.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if strings.Contains(dot, "!\"") {
		gv.SetLayout(graphviz.NEATO)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
