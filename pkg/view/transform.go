// Package view maps between model space (layout coordinates) and screen
// space (canvas pixels).
//
// A [Transform] is a uniform scale followed by a translation:
//
//	screen = model*Zoom + Pan
//	model  = (screen - Pan) / Zoom
//
// [Transform.ZoomAt] keeps the model point under an anchor fixed while the
// scale changes, [Transform.Pan] translates in screen pixels, and [AutoFit]
// frames a laid-out tree inside a canvas.
package view

import "math"

const (
	// ZoomStep is the factor applied by one zoom-in step; zoom-out uses
	// its inverse.
	ZoomStep = 1.1
	// FitRatio is the share of the canvas AutoFit lets the tree occupy.
	FitRatio = 0.95
	// LeafMargin is the gap AutoFit keeps between a leaf and the canvas
	// edge when it has to shift the tree back on screen.
	LeafMargin = 10.0
)

// Transform is the pan/zoom state. Zoom must stay positive.
type Transform struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

// Identity returns the transform that maps model space onto screen space
// unchanged.
func Identity() Transform {
	return Transform{Zoom: 1}
}

// ModelToScreen maps a model point to screen pixels.
func (t Transform) ModelToScreen(x, y float64) (float64, float64) {
	return x*t.Zoom + t.PanX, y*t.Zoom + t.PanY
}

// ScreenToModel maps screen pixels back to model space.
func (t Transform) ScreenToModel(x, y float64) (float64, float64) {
	return (x - t.PanX) / t.Zoom, (y - t.PanY) / t.Zoom
}

// ZoomAt multiplies the zoom by factor while keeping the model point under
// (ax, ay) in place. Non-positive or non-finite factors are ignored. Zoom
// is otherwise unbounded.
func (t *Transform) ZoomAt(ax, ay, factor float64) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	mx, my := t.ScreenToModel(ax, ay)
	t.Zoom *= factor
	t.PanX = ax - mx*t.Zoom
	t.PanY = ay - my*t.Zoom
}

// Pan translates the view by a screen-space delta.
func (t *Transform) Pan(dx, dy float64) {
	t.PanX += dx
	t.PanY += dy
}

// AnchorTo sets the pan so that model point (mx, my) sits under screen
// point (sx, sy). Drag panning uses it with the model point grabbed at
// pointer-down.
func (t *Transform) AnchorTo(mx, my, sx, sy float64) {
	t.PanX = sx - mx*t.Zoom
	t.PanY = sy - my*t.Zoom
}

// Valid reports whether every field is finite and Zoom is positive.
func (t Transform) Valid() bool {
	for _, v := range []float64{t.Zoom, t.PanX, t.PanY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return t.Zoom > 0
}
