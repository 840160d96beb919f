package view

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestAnimationReachesTarget(t *testing.T) {
	from := Identity()
	to := Transform{Zoom: 3, PanX: -200, PanY: 50}
	a := NewAnimation(from, to, 0.5, ease.Linear)

	mid, done := a.Update(0.25)
	if done {
		t.Fatal("animation finished halfway")
	}
	if !approxEqual(mid.Zoom, 2, 1e-3) || !approxEqual(mid.PanX, -100, 1e-2) {
		t.Errorf("halfway transform = %+v, want zoom 2 pan -100", mid)
	}

	end, done := a.Update(0.5)
	if !done || !a.Done() {
		t.Fatal("animation should be finished")
	}
	if end != to {
		t.Errorf("final transform = %+v, want %+v", end, to)
	}
	if a.Target() != to {
		t.Errorf("Target() = %+v, want %+v", a.Target(), to)
	}
}

func TestAnimationZeroDuration(t *testing.T) {
	to := Transform{Zoom: 2}
	a := NewAnimation(Identity(), to, 0, nil)
	if got, done := a.Update(0.016); !done || got != to {
		t.Errorf("zero-duration Update = %+v, %v", got, done)
	}
}
