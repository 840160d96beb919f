package view

import (
	"math"
	"testing"

	"github.com/matzehuels/primetree/pkg/layout"
	"github.com/matzehuels/primetree/pkg/tree"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestIdentity(t *testing.T) {
	v := Identity()
	sx, sy := v.ModelToScreen(12.5, -3)
	if sx != 12.5 || sy != -3 {
		t.Errorf("Identity ModelToScreen = (%f, %f), want (12.5, -3)", sx, sy)
	}
}

func TestRoundTrip(t *testing.T) {
	transforms := []Transform{
		Identity(),
		{Zoom: 2, PanX: 100, PanY: -40},
		{Zoom: 0.013, PanX: -7.25, PanY: 3000},
		{Zoom: 37.9, PanX: 0.5, PanY: 0.5},
	}
	points := [][2]float64{{0, 0}, {50, 50}, {-123.4, 987.6}, {1e6, -1e6}}

	for _, v := range transforms {
		for _, p := range points {
			sx, sy := v.ModelToScreen(p[0], p[1])
			mx, my := v.ScreenToModel(sx, sy)
			eps := 1e-9 * math.Max(1, math.Abs(p[0])+math.Abs(p[1]))
			if !approxEqual(mx, p[0], eps) || !approxEqual(my, p[1], eps) {
				t.Errorf("%+v: round trip of %v = (%f, %f)", v, p, mx, my)
			}
		}
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	tests := []struct {
		name   string
		start  Transform
		ax, ay float64
		factor float64
	}{
		{"zoom in at centre", Identity(), 400, 300, ZoomStep},
		{"zoom out at corner", Transform{Zoom: 2, PanX: 10, PanY: 20}, 0, 0, 1 / ZoomStep},
		{"large factor", Transform{Zoom: 0.5, PanX: -300, PanY: 120}, 123, 456, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.start
			bx, by := v.ScreenToModel(tt.ax, tt.ay)
			v.ZoomAt(tt.ax, tt.ay, tt.factor)
			ax, ay := v.ScreenToModel(tt.ax, tt.ay)
			if !approxEqual(bx, ax, 1e-9) || !approxEqual(by, ay, 1e-9) {
				t.Errorf("anchor moved from (%f, %f) to (%f, %f)", bx, by, ax, ay)
			}
			if !approxEqual(v.Zoom, tt.start.Zoom*tt.factor, 1e-12) {
				t.Errorf("Zoom = %f, want %f", v.Zoom, tt.start.Zoom*tt.factor)
			}
		})
	}
}

func TestZoomInOutRestores(t *testing.T) {
	orig := Transform{Zoom: 1.7, PanX: 33, PanY: -12}
	v := orig
	v.ZoomAt(400, 300, ZoomStep)
	v.ZoomAt(400, 300, 1/ZoomStep)

	if !approxEqual(v.Zoom, orig.Zoom, epsilon) {
		t.Errorf("Zoom = %f, want %f", v.Zoom, orig.Zoom)
	}
	if !approxEqual(v.PanX, orig.PanX, 1e-6) || !approxEqual(v.PanY, orig.PanY, 1e-6) {
		t.Errorf("Pan = (%f, %f), want (%f, %f)", v.PanX, v.PanY, orig.PanX, orig.PanY)
	}
}

func TestZoomAtIgnoresBadFactor(t *testing.T) {
	for _, f := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		v := Identity()
		v.ZoomAt(10, 10, f)
		if v != Identity() {
			t.Errorf("ZoomAt(factor=%f) changed transform to %+v", f, v)
		}
	}
}

func TestPan(t *testing.T) {
	v := Transform{Zoom: 3}
	v.Pan(10, -5)
	v.Pan(2.5, 1)
	if v.PanX != 12.5 || v.PanY != -4 || v.Zoom != 3 {
		t.Errorf("after Pan = %+v", v)
	}
}

func TestAnchorTo(t *testing.T) {
	v := Transform{Zoom: 2, PanX: 5, PanY: 5}
	v.AnchorTo(100, 50, 300, 200)
	sx, sy := v.ModelToScreen(100, 50)
	if !approxEqual(sx, 300, epsilon) || !approxEqual(sy, 200, epsilon) {
		t.Errorf("anchored point at (%f, %f), want (300, 200)", sx, sy)
	}
}

func TestValid(t *testing.T) {
	if !Identity().Valid() {
		t.Error("Identity should be valid")
	}
	for _, v := range []Transform{{}, {Zoom: -1}, {Zoom: 1, PanX: math.NaN()}, {Zoom: math.Inf(1)}} {
		if v.Valid() {
			t.Errorf("%+v should be invalid", v)
		}
	}
}

func laidOut(t *testing.T, start, end int, w, h float64) *tree.Tree {
	t.Helper()
	tr, err := tree.Build(start, end, tree.Zero, tree.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := layout.Apply(tr, layout.DefaultOptions(w, h)); err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestAutoFitFitsCanvas(t *testing.T) {
	const w, h = 800.0, 600.0
	for _, end := range []int{2, 3, 10, 63, 200} {
		tr := laidOut(t, 1, end, w, h)
		v := AutoFit(tr, w, h)
		if !v.Valid() {
			t.Fatalf("end=%d: invalid transform %+v", end, v)
		}

		box := layout.Bounds(tr)
		if box.Width()*v.Zoom > w*FitRatio+1e-6 || box.Height()*v.Zoom > h*FitRatio+1e-6 {
			t.Errorf("end=%d: zoomed box %fx%f exceeds %v of canvas", end, box.Width()*v.Zoom, box.Height()*v.Zoom, FitRatio)
		}

		for _, id := range tr.Leaves() {
			sx, _ := v.ModelToScreen(tr.Node(id).X, tr.Node(id).Y)
			if sx < -1e-6 || sx > w+1e-6 {
				t.Errorf("end=%d: leaf %d off screen at x=%f", end, tr.Node(id).Value, sx)
			}
		}

		_, top := v.ModelToScreen(0, box.MinY)
		_, bottom := v.ModelToScreen(0, box.MaxY)
		if !approxEqual(top, h-bottom, 1e-6) {
			t.Errorf("end=%d: vertical margins %f and %f differ", end, top, h-bottom)
		}
	}
}

func TestAutoFitCentresOnParents(t *testing.T) {
	const w, h = 800.0, 600.0
	tr := laidOut(t, 1, 15, w, h)
	v := AutoFit(tr, w, h)

	parents := layout.Bounds(tr, tr.Parents()...)
	sx, _ := v.ModelToScreen(parents.CenterX(), 0)
	if !approxEqual(sx, w/2, 1e-6) {
		t.Errorf("parent centre at x=%f, want %f", sx, w/2)
	}
}

func TestAutoFitLeafOverflowShift(t *testing.T) {
	// With 1..4 the parents (1, 2) sit left of centre, so centring on them
	// pushes leaf 3 past the right edge.
	const w, h = 800.0, 600.0
	tr := laidOut(t, 1, 4, w, h)
	v := AutoFit(tr, w, h)

	leaves := layout.Bounds(tr, tr.Leaves()...)
	right, _ := v.ModelToScreen(leaves.MaxX, 0)
	if right > w {
		t.Errorf("rightmost leaf at %f beyond canvas width %f", right, w)
	}
}

func TestAutoFitDegenerate(t *testing.T) {
	single := laidOut(t, 9, 9, 800, 600)
	if v := AutoFit(single, 800, 600); v.Zoom != 1 || !v.Valid() {
		t.Errorf("single node AutoFit = %+v, want zoom 1", v)
	}

	// Two nodes share the same x: only the vertical extent constrains zoom.
	pair := laidOut(t, 1, 2, 800, 600)
	v := AutoFit(pair, 800, 600)
	want := 600 / layout.Bounds(pair).Height() * FitRatio
	if !approxEqual(v.Zoom, want, epsilon) {
		t.Errorf("pair AutoFit zoom = %f, want %f", v.Zoom, want)
	}

	if v := AutoFit(nil, 800, 600); v != Identity() {
		t.Errorf("AutoFit(nil) = %+v, want identity", v)
	}
	if v := AutoFit(pair, 0, 600); v != Identity() {
		t.Errorf("AutoFit on zero-width canvas = %+v, want identity", v)
	}
}
