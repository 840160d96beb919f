// Package hit finds the node or edge under a screen point.
//
// All distances are measured in screen pixels, so the hit radius does not
// shrink or grow with the zoom level.
package hit

import (
	"fmt"
	"math"

	"github.com/matzehuels/primetree/pkg/prime"
	"github.com/matzehuels/primetree/pkg/tree"
	"github.com/matzehuels/primetree/pkg/view"
)

const (
	// DefaultNodeRadius is the drawn node radius in screen pixels.
	DefaultNodeRadius = 20.0
	// DefaultEdgeTolerance is how far from an edge the cursor may be.
	DefaultEdgeTolerance = 5.0
)

// Options sets the hit geometry. Zero fields take the defaults.
type Options struct {
	NodeRadius    float64
	EdgeTolerance float64
}

func (o Options) withDefaults() Options {
	if o.NodeRadius <= 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.EdgeTolerance <= 0 {
		o.EdgeTolerance = DefaultEdgeTolerance
	}
	return o
}

// Kind tells what a Result points at.
type Kind int

const (
	None Kind = iota
	NodeHit
	EdgeHit
)

// Result is the outcome of [Test]. At most one of node or edge is set.
type Result struct {
	Kind Kind
	Node tree.NodeID
	Edge int // index into Tree.Edges
}

// Node returns the last node, in paint order, within radius pixels of
// (sx, sy). Later nodes are drawn on top, so they win ties.
func Node(t *tree.Tree, v view.Transform, sx, sy, radius float64) (tree.NodeID, bool) {
	found := tree.NoParent
	for i := range t.Nodes {
		nx, ny := v.ModelToScreen(t.Nodes[i].X, t.Nodes[i].Y)
		if math.Hypot(sx-nx, sy-ny) <= radius {
			found = t.Nodes[i].ID
		}
	}
	return found, found != tree.NoParent
}

// Edge returns the index of the first edge whose segment lies within
// tolerance pixels of (sx, sy).
func Edge(t *tree.Tree, v view.Transform, sx, sy, tolerance float64) (int, bool) {
	for i, e := range t.Edges {
		from, to := t.Node(e.From), t.Node(e.To)
		ax, ay := v.ModelToScreen(from.X, from.Y)
		bx, by := v.ModelToScreen(to.X, to.Y)
		if SegmentDistance(sx, sy, ax, ay, bx, by) <= tolerance {
			return i, true
		}
	}
	return -1, false
}

// Test checks nodes first and only falls back to edges when no node is
// under the cursor.
func Test(t *tree.Tree, v view.Transform, sx, sy float64, opts Options) Result {
	if t == nil || t.Len() == 0 {
		return Result{Kind: None, Node: tree.NoParent, Edge: -1}
	}
	opts = opts.withDefaults()
	if id, ok := Node(t, v, sx, sy, opts.NodeRadius); ok {
		return Result{Kind: NodeHit, Node: id, Edge: -1}
	}
	if i, ok := Edge(t, v, sx, sy, opts.EdgeTolerance); ok {
		return Result{Kind: EdgeHit, Node: tree.NoParent, Edge: i}
	}
	return Result{Kind: None, Node: tree.NoParent, Edge: -1}
}

// Tooltip renders the hover text: "12 = 2^2 × 3^1" for a node, "2 → 4"
// for an edge, empty when nothing was hit.
func (r Result) Tooltip(t *tree.Tree) string {
	switch r.Kind {
	case NodeHit:
		n := t.Node(r.Node)
		return prime.Format(n.Value, n.Factors)
	case EdgeHit:
		e := t.Edges[r.Edge]
		return fmt.Sprintf("%d → %d", t.Node(e.From).Value, t.Node(e.To).Value)
	}
	return ""
}

// Prime reports whether the hovered element gets prime styling: a prime
// node, or an edge whose endpoints are both prime.
func (r Result) Prime(t *tree.Tree) bool {
	switch r.Kind {
	case NodeHit:
		return t.Node(r.Node).Prime
	case EdgeHit:
		e := t.Edges[r.Edge]
		return t.Node(e.From).Prime && t.Node(e.To).Prime
	}
	return false
}

// SegmentDistance returns the distance from (px, py) to the segment
// (ax, ay)-(bx, by).
func SegmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	u := ((px-ax)*dx + (py-ay)*dy) / lenSq
	u = math.Max(0, math.Min(1, u))
	return math.Hypot(px-(ax+u*dx), py-(ay+u*dy))
}
