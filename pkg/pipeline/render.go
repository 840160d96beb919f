package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/primetree/pkg/layout"
	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/render/nodelink"
	"github.com/matzehuels/primetree/pkg/render/sink"
	"github.com/matzehuels/primetree/pkg/tree"
	"github.com/matzehuels/primetree/pkg/view"
)

// BuildTree builds the tree for opts. Options must be validated.
func BuildTree(opts Options) (*tree.Tree, error) {
	return tree.Build(opts.Start, opts.End, opts.RootPolicy(), tree.Options{MaxNodes: opts.MaxNodes})
}

// LayoutTree places t on the canvas described by opts.
func LayoutTree(t *tree.Tree, opts Options) error {
	return layout.Apply(t, opts.LayoutOptions())
}

// SceneFor returns the scene the artifacts of a run show: the fixed view
// from opts, or the auto-fit view.
func SceneFor(t *tree.Tree, opts Options) render.Scene {
	v := view.AutoFit(t, opts.Width, opts.Height)
	if opts.View != nil {
		v = *opts.View
	}
	s := render.NewScene(t, v, opts.Width, opts.Height, opts.Display())
	if opts.NodeRadius > 0 {
		s.NodeRadius = opts.NodeRadius
	}
	return s
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, s render.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, s, opts, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(ctx context.Context, s render.Scene, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithHoverCSS()}
		if opts.Tooltips {
			svgOpts = append(svgOpts, sink.WithTooltips())
		}
		return sink.RenderSVG(s, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(s, sink.WithScale(opts.Scale))
	case FormatJSON:
		return sink.RenderJSON(s)
	case FormatText:
		txt, err := sink.RenderText(s, opts.TextCols, opts.TextRows)
		if err != nil {
			return nil, err
		}
		return []byte(txt + "\n"), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(s.Tree, dotOptions(opts))), nil
	case FormatDOTSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(s.Tree, dotOptions(opts)))
	}
	return nil, ValidateFormat(format)
}

func dotOptions(opts Options) nodelink.Options {
	return nodelink.Options{
		Detailed: opts.Detailed,
		Edges:    opts.Display().Edges,
		Pinned:   opts.Pinned,
	}
}
