package state

import (
	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/hit"
	"github.com/matzehuels/primetree/pkg/layout"
	"github.com/matzehuels/primetree/pkg/prime"
	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/tree"
	"github.com/matzehuels/primetree/pkg/view"
)

// Config seeds a new Graph.
type Config struct {
	Start      int
	End        int
	Policy     tree.RootPolicy
	Width      float64
	Height     float64
	Layout     layout.Options
	MaxNodes   int
	Display    render.Display
	NodeRadius float64
}

// DefaultConfig is the range 1..10 with a zero root on an 800×600 canvas.
func DefaultConfig() Config {
	return Config{
		Start:   1,
		End:     10,
		Policy:  tree.Zero,
		Width:   layout.DefaultWidth,
		Height:  layout.DefaultHeight,
		Layout:  layout.DefaultOptions(layout.DefaultWidth, layout.DefaultHeight),
		Display: render.DefaultDisplay(),
	}
}

// Graph is the state of one interactive view.
type Graph struct {
	// Requested inputs. These may describe an invalid range.
	start, end int
	policy     tree.RootPolicy

	tree    *tree.Tree
	// oracle holds the primality memo of tree and is replaced with it.
	oracle  *prime.Oracle
	lastErr error

	width, height float64
	layoutOpts    layout.Options
	maxNodes      int

	transform view.Transform
	manual    bool
	anim      *view.Animation

	display render.Display
	hitOpts hit.Options
	hover   hit.Result

	dragging       bool
	dragMX, dragMY float64

	needsRedraw bool
	graphDirty  bool
}

// New builds the initial tree. Unlike later handlers there is no previous
// graph to fall back to, so an invalid initial range is an error.
func New(cfg Config) (*Graph, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas must have positive size, got %gx%g", cfg.Width, cfg.Height)
	}
	cfg.Layout.SetDefaults()
	cfg.Display.SetDefaults()
	if err := cfg.Display.Validate(); err != nil {
		return nil, err
	}

	g := &Graph{
		start:      cfg.Start,
		end:        cfg.End,
		policy:     cfg.Policy,
		width:      cfg.Width,
		height:     cfg.Height,
		layoutOpts: cfg.Layout,
		maxNodes:   cfg.MaxNodes,
		transform:  view.Identity(),
		display:    cfg.Display,
		hitOpts:    hit.Options{NodeRadius: cfg.NodeRadius},
		hover:      noHit(),
	}
	if err := g.rebuild(); err != nil {
		return nil, err
	}
	return g, nil
}

func noHit() hit.Result {
	return hit.Result{Kind: hit.None, Node: tree.NoParent, Edge: -1}
}

// rebuild builds a tree from the requested inputs and swaps it in. On
// failure the previous tree stays.
func (g *Graph) rebuild() error {
	// A fresh memo per range keeps the oracle no larger than the tree.
	oracle := prime.NewOracle()
	t, err := tree.Build(g.start, g.end, g.policy, tree.Options{MaxNodes: g.maxNodes, Oracle: oracle})
	if err != nil {
		g.lastErr = err
		return err
	}
	g.tree = t
	g.oracle = oracle
	g.lastErr = nil
	g.hover = noHit()
	g.graphDirty = true
	g.needsRedraw = true
	return nil
}

// settle recomputes geometry if it is stale.
func (g *Graph) settle() {
	if !g.graphDirty {
		return
	}
	opts := g.layoutOpts
	opts.Width, opts.Height = g.width, g.height
	if err := layout.Apply(g.tree, opts); err != nil {
		g.lastErr = err
		return
	}
	if !g.manual {
		g.transform = view.AutoFit(g.tree, g.width, g.height)
	}
	g.graphDirty = false
	g.needsRedraw = true
}

// Frame runs the pending recompute and returns the scene to draw. The
// boolean is false when nothing changed since the last frame.
func (g *Graph) Frame() (render.Scene, bool) {
	g.settle()
	if !g.needsRedraw {
		return render.Scene{}, false
	}
	g.needsRedraw = false
	return g.Scene(), true
}

// Scene snapshots the current state without touching the flags.
func (g *Graph) Scene() render.Scene {
	s := render.NewScene(g.tree, g.transform, g.width, g.height, g.display)
	if g.hitOpts.NodeRadius > 0 {
		s.NodeRadius = g.hitOpts.NodeRadius
	}
	s.Hover = g.hover
	return s
}

// Hover hit-tests the screen point against the current geometry. It
// records the result for the next scene but does not schedule a redraw.
// Nodes are hit within the radius they are drawn with, so dots are
// smaller targets than labelled circles.
func (g *Graph) Hover(sx, sy float64) hit.Result {
	g.settle()
	opts := g.hitOpts
	opts.NodeRadius = g.Scene().Radius()
	g.hover = hit.Test(g.tree, g.transform, sx, sy, opts)
	return g.hover
}

// Tooltip is the text for the last hover, empty when nothing is hovered.
func (g *Graph) Tooltip() string { return g.hover.Tooltip(g.tree) }

func (g *Graph) Start() int                 { return g.start }
func (g *Graph) End() int                   { return g.end }
func (g *Graph) Policy() tree.RootPolicy    { return g.policy }
func (g *Graph) Tree() *tree.Tree           { return g.tree }
func (g *Graph) Transform() view.Transform  { return g.transform }
func (g *Graph) Display() render.Display    { return g.display }
func (g *Graph) Manual() bool               { return g.manual }
func (g *Graph) NeedsRedraw() bool          { return g.needsRedraw }
func (g *Graph) GraphDirty() bool           { return g.graphDirty }
func (g *Graph) Animating() bool            { return g.anim != nil }
func (g *Graph) Canvas() (float64, float64) { return g.width, g.height }

// Err is the error from the most recent rebuild, nil if it succeeded.
func (g *Graph) Err() error { return g.lastErr }
