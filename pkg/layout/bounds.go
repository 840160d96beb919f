package layout

import (
	"math"

	"github.com/matzehuels/primetree/pkg/tree"
)

// Rect is an axis-aligned box in model space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX-MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY-MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// CenterX returns the horizontal midpoint.
func (r Rect) CenterX() float64 { return (r.MinX + r.MaxX) / 2 }

// Contains reports whether (x, y) lies inside r, borders included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Bounds returns the bounding box of the given nodes, or of every node
// when ids is empty. The zero Rect is returned for an empty tree.
func Bounds(t *tree.Tree, ids ...tree.NodeID) Rect {
	if t == nil || t.Len() == 0 {
		return Rect{}
	}
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	grow := func(n *tree.Node) {
		r.MinX = math.Min(r.MinX, n.X)
		r.MaxX = math.Max(r.MaxX, n.X)
		r.MinY = math.Min(r.MinY, n.Y)
		r.MaxY = math.Max(r.MaxY, n.Y)
	}
	if len(ids) == 0 {
		for i := range t.Nodes {
			grow(&t.Nodes[i])
		}
		return r
	}
	for _, id := range ids {
		if n := t.Node(id); n != nil {
			grow(n)
		}
	}
	if math.IsInf(r.MinX, 1) {
		return Rect{}
	}
	return r
}

// SymmetryAxis returns the x of the root, the vertical line the tree is
// drawn symmetric around.
func SymmetryAxis(t *tree.Tree) float64 {
	if root := t.Root(); root != nil {
		return root.X
	}
	return 0
}
