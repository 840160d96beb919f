package sink

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the canvas fill. The default is white.
func WithPNGBackground(c string) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterizes the scene.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: "#fff"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", r.scale)
	}
	w, h := int(s.Width*r.scale), int(s.Height*r.scale)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png canvas must have positive size, got %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	dc.SetColor(render.ParseHex(r.background))
	dc.Clear()

	if !s.Empty() {
		drawSymmetry(dc, s)
		drawEdges(dc, s)
		drawNodes(dc, s)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawSymmetry(dc *gg.Context, s render.Scene) {
	x, ok := s.Symmetry()
	if !ok {
		return
	}
	dc.SetColor(render.ParseHex(s.Palette.Symmetry))
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	dc.DrawLine(x, 0, x, s.Height)
	dc.Stroke()
	dc.SetDash()
}

func drawEdges(dc *gg.Context, s render.Scene) {
	for i, e := range s.Tree.Edges {
		if !s.EdgeVisible(e) {
			continue
		}
		x1, y1 := s.Screen(s.Tree.Node(e.From))
		x2, y2 := s.Screen(s.Tree.Node(e.To))
		dc.SetColor(render.ParseHex(s.Palette.Edge))
		dc.SetLineWidth(1)
		if s.HoveredEdge(i) {
			dc.SetColor(render.ParseHex(s.Palette.Highlight))
			dc.SetLineWidth(3)
		}
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
}

func drawNodes(dc *gg.Context, s render.Scene) {
	radius := s.Radius()
	for i := range s.Tree.Nodes {
		n := &s.Tree.Nodes[i]
		cx, cy := s.Screen(n)
		dc.DrawCircle(cx, cy, radius)
		dc.SetColor(render.ParseHex(s.Palette.NodeFill(n)))
		dc.Fill()
		if s.Hovered(n.ID) {
			dc.DrawCircle(cx, cy, radius)
			dc.SetColor(render.ParseHex(s.Palette.Highlight))
			dc.SetLineWidth(3)
			dc.Stroke()
		}
		if label := s.Label(n); label != "" {
			dc.SetColor(render.ParseHex(s.Palette.Label))
			dc.DrawStringAnchored(label, cx, cy, 0.5, 0.35)
		}
	}
}
