package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/tree"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func build(t *testing.T, start, end int) *tree.Tree {
	t.Helper()
	tr, err := tree.Build(start, end, tree.Zero, tree.Options{})
	if err != nil {
		t.Fatalf("Build(%d, %d): %v", start, end, err)
	}
	return tr
}

// postOrderLeaves returns leaf ids in the order the layout visits them.
func postOrderLeaves(tr *tree.Tree) []tree.NodeID {
	var out []tree.NodeID
	var walk func(id tree.NodeID)
	walk = func(id tree.NodeID) {
		n := tr.Node(id)
		if n.IsLeaf() {
			out = append(out, id)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(0)
	return out
}

func TestPlaceLeafSpacing(t *testing.T) {
	tr := build(t, 1, 10)
	opts := DefaultOptions(800, 600)
	if err := Place(tr, opts); err != nil {
		t.Fatal(err)
	}

	leaves := postOrderLeaves(tr)
	want := opts.HMargin
	for _, id := range leaves {
		n := tr.Node(id)
		if !approxEqual(n.X, want, epsilon) {
			t.Errorf("leaf %d x = %f, want %f", n.Value, n.X, want)
		}
		want += opts.LeafSpacing
	}
}

func TestPlaceLeavesStrictlyIncreasing(t *testing.T) {
	for _, end := range []int{2, 3, 7, 31, 100, 257} {
		tr := build(t, 1, end)
		if err := Place(tr, DefaultOptions(1024, 768)); err != nil {
			t.Fatal(err)
		}
		prev := math.Inf(-1)
		for _, id := range postOrderLeaves(tr) {
			x := tr.Node(id).X
			if x <= prev {
				t.Fatalf("end=%d: leaf x %f not greater than %f", end, x, prev)
			}
			prev = x
		}
	}
}

func TestPlaceParentCentered(t *testing.T) {
	tr := build(t, 1, 10)
	if err := Apply(tr, DefaultOptions(800, 600)); err != nil {
		t.Fatal(err)
	}
	for _, id := range tr.Parents() {
		n := tr.Node(id)
		first := tr.Node(n.Children[0])
		last := tr.Node(n.Children[len(n.Children)-1])
		if !approxEqual(n.X, (first.X+last.X)/2, 1e-6) {
			t.Errorf("node %d x = %f, want centre of children %f", n.Value, n.X, (first.X+last.X)/2)
		}
	}
}

func TestSameLevelSameY(t *testing.T) {
	tr := build(t, 1, 50)
	opts := DefaultOptions(800, 600)
	if err := Apply(tr, opts); err != nil {
		t.Fatal(err)
	}

	levels := tr.Levels()
	maxDepth := tr.MaxDepth()
	rowY := map[int]float64{}
	for i, n := range tr.Nodes {
		want := opts.VMargin + float64(levels[i])*(opts.Height-2*opts.VMargin)/float64(maxDepth-1)
		if !approxEqual(n.Y, want, epsilon) {
			t.Errorf("node %d y = %f, want %f", n.Value, n.Y, want)
		}
		if y, ok := rowY[levels[i]]; ok && y != n.Y {
			t.Errorf("level %d has y %f and %f", levels[i], y, n.Y)
		}
		rowY[levels[i]] = n.Y
	}

	if root := tr.Root(); root.Y != opts.VMargin {
		t.Errorf("root y = %f, want %f", root.Y, opts.VMargin)
	}
}

func TestRescaleFillsWidth(t *testing.T) {
	tr := build(t, 1, 20)
	opts := DefaultOptions(1000, 500)
	if err := Apply(tr, opts); err != nil {
		t.Fatal(err)
	}
	b := Bounds(tr)
	if !approxEqual(b.MinX, opts.HMargin, 1e-6) {
		t.Errorf("min x = %f, want %f", b.MinX, opts.HMargin)
	}
	if !approxEqual(b.MaxX, opts.Width-opts.HMargin, 1e-6) {
		t.Errorf("max x = %f, want %f", b.MaxX, opts.Width-opts.HMargin)
	}
	if !approxEqual(b.MaxY, opts.Height-opts.VMargin, 1e-6) {
		t.Errorf("max y = %f, want %f", b.MaxY, opts.Height-opts.VMargin)
	}
}

func TestSingleNodeIsFinite(t *testing.T) {
	tr := build(t, 5, 5)
	opts := DefaultOptions(800, 600)
	if err := Apply(tr, opts); err != nil {
		t.Fatal(err)
	}
	root := tr.Root()
	if root.X != opts.HMargin || root.Y != opts.VMargin {
		t.Errorf("single node at (%f, %f), want (%f, %f)", root.X, root.Y, opts.HMargin, opts.VMargin)
	}
}

func TestAllCoordinatesFinite(t *testing.T) {
	for end := 1; end <= 64; end++ {
		tr := build(t, 1, end)
		if err := Apply(tr, DefaultOptions(320, 240)); err != nil {
			t.Fatal(err)
		}
		for _, n := range tr.Nodes {
			if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsInf(n.X, 0) || math.IsInf(n.Y, 0) {
				t.Fatalf("end=%d: node %d at (%f, %f)", end, n.Value, n.X, n.Y)
			}
		}
	}
}

func TestApplyDeterministic(t *testing.T) {
	a := build(t, 1, 33)
	b := build(t, 1, 33)
	opts := DefaultOptions(900, 700)
	if err := Apply(a, opts); err != nil {
		t.Fatal(err)
	}
	if err := Apply(b, opts); err != nil {
		t.Fatal(err)
	}
	// Re-applying must not drift.
	if err := Apply(b, opts); err != nil {
		t.Fatal(err)
	}
	for i := range a.Nodes {
		if a.Nodes[i].X != b.Nodes[i].X || a.Nodes[i].Y != b.Nodes[i].Y {
			t.Fatalf("node %d differs: (%f,%f) vs (%f,%f)", i, a.Nodes[i].X, a.Nodes[i].Y, b.Nodes[i].X, b.Nodes[i].Y)
		}
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name string
		tr   *tree.Tree
		opts Options
		code errors.Code
	}{
		{"nil tree", nil, DefaultOptions(800, 600), errors.ErrCodeInternal},
		{"empty tree", &tree.Tree{}, DefaultOptions(800, 600), errors.ErrCodeInternal},
		{"zero width", build(t, 1, 3), DefaultOptions(0, 600), errors.ErrCodeInvalidInput},
		{"nan height", build(t, 1, 3), DefaultOptions(800, math.NaN()), errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Apply(tt.tr, tt.opts); !errors.Is(err, tt.code) {
				t.Errorf("Apply error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o != DefaultOptions(DefaultWidth, DefaultHeight) {
		t.Errorf("SetDefaults() = %+v", o)
	}
}

func TestBoundsSubset(t *testing.T) {
	tr := build(t, 1, 10)
	if err := Apply(tr, DefaultOptions(800, 600)); err != nil {
		t.Fatal(err)
	}
	parents := Bounds(tr, tr.Parents()...)
	all := Bounds(tr)
	if parents.Width() > all.Width() {
		t.Errorf("parent span %f wider than full span %f", parents.Width(), all.Width())
	}
	if !all.Contains(parents.MinX, parents.MinY) {
		t.Error("full bounds do not contain the parent bounds")
	}
	if (Bounds(nil) != Rect{}) {
		t.Error("Bounds(nil) should be the zero Rect")
	}
	if got := SymmetryAxis(tr); got != tr.Root().X {
		t.Errorf("SymmetryAxis() = %f, want %f", got, tr.Root().X)
	}
}
