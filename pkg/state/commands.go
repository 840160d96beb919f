package state

import (
	"math"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/tree"
	"github.com/matzehuels/primetree/pkg/view"
)

// SetStart requests a new range start and rebuilds.
func (g *Graph) SetStart(n int) error {
	g.start = n
	return g.rebuild()
}

// SetEnd requests a new range end and rebuilds.
func (g *Graph) SetEnd(n int) error {
	g.end = n
	return g.rebuild()
}

// SetRange sets both ends at once, so an intermediate invalid range is
// never attempted.
func (g *Graph) SetRange(start, end int) error {
	g.start, g.end = start, end
	return g.rebuild()
}

// SetPolicy changes the root policy and rebuilds. An unknown policy is
// rejected before any state changes.
func (g *Graph) SetPolicy(p tree.RootPolicy) error {
	if !p.Valid() {
		err := errors.New(errors.ErrCodeInvalidPolicy, "unknown root policy %d", int(p))
		g.lastErr = err
		return err
	}
	g.policy = p
	return g.rebuild()
}

// SetPolicyName parses name and calls SetPolicy.
func (g *Graph) SetPolicyName(name string) error {
	p, err := tree.ParsePolicy(name)
	if err != nil {
		g.lastErr = err
		return err
	}
	return g.SetPolicy(p)
}

// CyclePolicy moves to the next root policy: zero, odd, even, zero.
func (g *Graph) CyclePolicy() error {
	return g.SetPolicy(tree.Policies[(int(g.policy)+1)%len(tree.Policies)])
}

// DoubleStart multiplies the start by two.
func (g *Graph) DoubleStart() error {
	n, err := double(g.start)
	if err != nil {
		g.lastErr = err
		return err
	}
	return g.SetStart(n)
}

// HalveStart halves the start, rounding down.
func (g *Graph) HalveStart() error { return g.SetStart(floorHalf(g.start)) }

// DoubleEnd multiplies the end by two.
func (g *Graph) DoubleEnd() error {
	n, err := double(g.end)
	if err != nil {
		g.lastErr = err
		return err
	}
	return g.SetEnd(n)
}

// HalveEnd halves the end, rounding down.
func (g *Graph) HalveEnd() error { return g.SetEnd(floorHalf(g.end)) }

func double(n int) (int, error) {
	if n > math.MaxInt/2 || n < math.MinInt/2 {
		return 0, errors.New(errors.ErrCodeInvalidRange, "doubling %d overflows", n)
	}
	return n * 2, nil
}

// floorHalf rounds towards negative infinity, so -3 halves to -2.
func floorHalf(n int) int { return n >> 1 }

// ZoomIn zooms by one step about the canvas centre.
func (g *Graph) ZoomIn() { g.zoomAt(g.width/2, g.height/2, view.ZoomStep) }

// ZoomOut undoes one ZoomIn step about the canvas centre.
func (g *Graph) ZoomOut() { g.zoomAt(g.width/2, g.height/2, 1/view.ZoomStep) }

// Wheel zooms about the cursor: scrolling up (deltaY < 0) zooms in.
func (g *Graph) Wheel(sx, sy, deltaY float64) {
	switch {
	case deltaY < 0:
		g.zoomAt(sx, sy, view.ZoomStep)
	case deltaY > 0:
		g.zoomAt(sx, sy, 1/view.ZoomStep)
	}
}

func (g *Graph) zoomAt(sx, sy, factor float64) {
	g.settle()
	g.takeControl()
	g.transform.ZoomAt(sx, sy, factor)
	g.needsRedraw = true
}

// PointerDown starts a drag, remembering the model point under the pointer.
func (g *Graph) PointerDown(sx, sy float64) {
	g.settle()
	g.dragging = true
	g.dragMX, g.dragMY = g.transform.ScreenToModel(sx, sy)
}

// PointerMove keeps the grabbed model point under the pointer while a drag
// is active. Without a drag it changes nothing and schedules no redraw.
func (g *Graph) PointerMove(sx, sy float64) {
	if !g.dragging {
		return
	}
	g.takeControl()
	g.transform.AnchorTo(g.dragMX, g.dragMY, sx, sy)
	g.needsRedraw = true
}

// PointerUp ends the drag.
func (g *Graph) PointerUp() { g.dragging = false }

// Dragging reports whether a drag is active.
func (g *Graph) Dragging() bool { return g.dragging }

// PanBy shifts the view by screen pixels. Keyboard hosts use it in place
// of a drag.
func (g *Graph) PanBy(dx, dy float64) {
	g.settle()
	g.takeControl()
	g.transform.Pan(dx, dy)
	g.needsRedraw = true
}

func (g *Graph) takeControl() {
	g.manual = true
	g.anim = nil
}

// Recenter hands the view back to auto-fit.
func (g *Graph) Recenter() {
	g.manual = false
	g.anim = nil
	g.graphDirty = true
	g.needsRedraw = true
}

// RecenterAnimated hands the view back to auto-fit, easing from the current
// transform to the fitted one over seconds. Advance the animation with Tick.
func (g *Graph) RecenterAnimated(seconds float32) {
	g.settle()
	g.manual = false
	target := view.AutoFit(g.tree, g.width, g.height)
	g.anim = view.NewAnimation(g.transform, target, seconds, nil)
	g.needsRedraw = true
}

// Tick advances a running animation by dt seconds and reports whether one
// is still running.
func (g *Graph) Tick(dt float32) bool {
	if g.anim == nil {
		return false
	}
	tr, done := g.anim.Update(dt)
	g.transform = tr
	g.needsRedraw = true
	if done {
		g.anim = nil
	}
	return !done
}

// Resize changes the canvas size and schedules a re-layout.
func (g *Graph) Resize(width, height float64) error {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must have positive size, got %gx%g", width, height)
	}
	g.width, g.height = width, height
	g.graphDirty = true
	g.needsRedraw = true
	return nil
}

// SetNodeDisplay switches the node labelling mode.
func (g *Graph) SetNodeDisplay(m render.NodeMode) error {
	m, err := render.ParseNodeMode(string(m))
	if err != nil {
		return err
	}
	g.display.Nodes = m
	g.markDisplay()
	return nil
}

// SetEdgeDisplay switches the edge drawing mode.
func (g *Graph) SetEdgeDisplay(m render.EdgeMode) error {
	m, err := render.ParseEdgeMode(string(m))
	if err != nil {
		return err
	}
	g.display.Edges = m
	g.markDisplay()
	return nil
}

// SetSymmetryLine shows or hides the line of symmetry.
func (g *Graph) SetSymmetryLine(on bool) {
	g.display.SymmetryLine = on
	g.markDisplay()
}

func (g *Graph) markDisplay() {
	g.graphDirty = true
	g.needsRedraw = true
}
