package view

import (
	"github.com/matzehuels/primetree/pkg/layout"
	"github.com/matzehuels/primetree/pkg/tree"
)

// AutoFit frames a laid-out tree inside a canvasW×canvasH canvas.
//
// The zoom makes the tree's bounding box fill FitRatio of the tighter
// dimension; a degenerate dimension (all nodes in one row or column) is
// ignored, and a single point falls back to zoom 1. Horizontally the view
// centres on the span of the parent nodes so the trunk stays in the
// middle; vertically it centres on the full bounding box. If the leftmost
// or rightmost leaf would then be off screen, the pan is shifted just
// enough to bring it back with LeafMargin to spare.
func AutoFit(t *tree.Tree, canvasW, canvasH float64) Transform {
	if t == nil || t.Len() == 0 || canvasW <= 0 || canvasH <= 0 {
		return Identity()
	}

	box := layout.Bounds(t)
	zoom := fitZoom(box, canvasW, canvasH)

	center := box.CenterX()
	if parents := t.Parents(); len(parents) > 0 {
		center = layout.Bounds(t, parents...).CenterX()
	}

	v := Transform{
		Zoom: zoom,
		PanX: canvasW/2 - center*zoom,
		PanY: (canvasH-box.Height()*zoom)/2 - box.MinY*zoom,
	}

	leaves := layout.Bounds(t, t.Leaves()...)
	left := leaves.MinX*zoom + v.PanX
	right := leaves.MaxX*zoom + v.PanX
	if left < 0 {
		v.PanX += -left + LeafMargin
	}
	if right > canvasW {
		v.PanX -= right - canvasW + LeafMargin
	}
	return v
}

func fitZoom(box layout.Rect, canvasW, canvasH float64) float64 {
	w, h := box.Width(), box.Height()
	switch {
	case w == 0 && h == 0:
		return 1
	case w == 0:
		return canvasH / h * FitRatio
	case h == 0:
		return canvasW / w * FitRatio
	}
	return min(canvasH/h, canvasW/w) * FitRatio
}
