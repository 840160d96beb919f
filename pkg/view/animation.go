package view

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation eases a view from one transform to another. It is advanced
// with Update from the host's frame loop.
type Animation struct {
	zoom, panX, panY *gween.Tween
	to               Transform
	done             bool
}

// NewAnimation starts a transition from `from` to `to` lasting duration
// seconds. A nil easing function means ease.OutCubic.
func NewAnimation(from, to Transform, duration float32, fn ease.TweenFunc) *Animation {
	if fn == nil {
		fn = ease.OutCubic
	}
	return &Animation{
		zoom: gween.New(float32(from.Zoom), float32(to.Zoom), duration, fn),
		panX: gween.New(float32(from.PanX), float32(to.PanX), duration, fn),
		panY: gween.New(float32(from.PanY), float32(to.PanY), duration, fn),
		to:   to,
		done: duration <= 0,
	}
}

// Update advances the animation by dt seconds and returns the current
// transform. Once finished it returns the exact target.
func (a *Animation) Update(dt float32) (Transform, bool) {
	if a.done {
		return a.to, true
	}
	z, zd := a.zoom.Update(dt)
	x, xd := a.panX.Update(dt)
	y, yd := a.panY.Update(dt)
	if zd && xd && yd {
		a.done = true
		return a.to, true
	}
	return Transform{Zoom: float64(z), PanX: float64(x), PanY: float64(y)}, false
}

// Done reports whether the target has been reached.
func (a *Animation) Done() bool { return a.done }

// Target returns the transform the animation ends on.
func (a *Animation) Target() Transform { return a.to }
