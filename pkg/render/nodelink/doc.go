// Package nodelink renders prime trees as Graphviz node-link diagrams.
//
// # Usage
//
// Convert a tree to DOT, then render to SVG in-process:
//
//	dot := nodelink.ToDOT(t, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// By default Graphviz computes its own hierarchical layout with dot. With
// [Options.Pinned] every node carries its laid-out position and rendering
// switches to neato, so the diagram matches the engine's own layout.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
