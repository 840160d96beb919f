package layout

import (
	"math"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/tree"
)

const (
	// DefaultMargin is the horizontal and vertical canvas margin in pixels.
	DefaultMargin = 50.0
	// DefaultLeafSpacing is the minimum distance between consecutive leaves
	// before rescaling.
	DefaultLeafSpacing = 60.0
	// DefaultWidth and DefaultHeight size the canvas when none is given.
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Options describes the canvas the tree is laid out on.
type Options struct {
	Width       float64 `json:"width" toml:"width"`
	Height      float64 `json:"height" toml:"height"`
	HMargin     float64 `json:"h_margin" toml:"h_margin"`
	VMargin     float64 `json:"v_margin" toml:"v_margin"`
	LeafSpacing float64 `json:"leaf_spacing" toml:"leaf_spacing"`
}

// DefaultOptions returns options for a width×height canvas with the
// default margins and leaf spacing.
func DefaultOptions(width, height float64) Options {
	return Options{
		Width:       width,
		Height:      height,
		HMargin:     DefaultMargin,
		VMargin:     DefaultMargin,
		LeafSpacing: DefaultLeafSpacing,
	}
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.HMargin == 0 {
		o.HMargin = DefaultMargin
	}
	if o.VMargin == 0 {
		o.VMargin = DefaultMargin
	}
	if o.LeafSpacing == 0 {
		o.LeafSpacing = DefaultLeafSpacing
	}
}

// Validate rejects sizes that would produce non-finite coordinates.
func (o Options) Validate() error {
	for _, v := range []float64{o.Width, o.Height, o.HMargin, o.VMargin, o.LeafSpacing} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "layout sizes must be finite")
		}
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must have positive size, got %gx%g", o.Width, o.Height)
	}
	if o.LeafSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "leaf spacing must be positive, got %g", o.LeafSpacing)
	}
	return nil
}

// Apply lays out t in place: Place followed by Rescale.
func Apply(t *tree.Tree, opts Options) error {
	if err := Place(t, opts); err != nil {
		return err
	}
	Rescale(t, opts)
	return nil
}

// Place runs the depth, vertical and horizontal steps. Leaf x values are
// strictly increasing in post-order and spaced exactly LeafSpacing apart.
func Place(t *tree.Tree, opts Options) error {
	if t == nil || t.Len() == 0 {
		return errors.New(errors.ErrCodeInternal, "layout of an empty tree")
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	maxDepth := t.MaxDepth()
	levels := t.Levels()
	rowGap := 0.0
	if maxDepth > 1 {
		rowGap = (opts.Height - 2*opts.VMargin) / float64(maxDepth-1)
	}
	for i := range t.Nodes {
		t.Nodes[i].Y = opts.VMargin + float64(levels[i])*rowGap
	}

	cursor := opts.HMargin
	var place func(id tree.NodeID)
	place = func(id tree.NodeID) {
		n := t.Node(id)
		if n.IsLeaf() {
			n.X = cursor
			cursor += opts.LeafSpacing
			return
		}
		for _, c := range n.Children {
			place(c)
		}
		first := t.Node(n.Children[0])
		last := t.Node(n.Children[len(n.Children)-1])
		n.X = (first.X + last.X) / 2
	}
	place(0)
	return nil
}

// Rescale stretches x so that the span of the tree maps onto
// [HMargin, Width-HMargin]. A single column of nodes collapses onto the
// left margin.
func Rescale(t *tree.Tree, opts Options) {
	if t == nil || t.Len() == 0 {
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	for i := range t.Nodes {
		minX = math.Min(minX, t.Nodes[i].X)
		maxX = math.Max(maxX, t.Nodes[i].X)
	}
	span := maxX - minX
	if span == 0 {
		span = 1
	}
	scale := (opts.Width - 2*opts.HMargin) / span
	for i := range t.Nodes {
		t.Nodes[i].X = opts.HMargin + (t.Nodes[i].X-minX)*scale
	}
}
