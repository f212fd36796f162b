// Package view maps between normalized UV space [0,1]² and a pannable,
// zoomable display space.
package view

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/uvisland/pkg/island"
)

// Default zoom clamp range.
const (
	DefaultMinZoom = 1.0
	DefaultMaxZoom = 8.0
)

// Transform holds the zoom and pan state. The forward mapping is
//
//	display = (uv - 0.5)*zoom + pan + 0.5
//
// i.e. center, scale, offset, recenter. Pan is clamped to ±(zoom-1)/2 per
// axis so the UV unit square can never leave the view entirely.
type Transform struct {
	zoom    float32
	pan     mgl32.Vec2
	minZoom float32
	maxZoom float32
}

// NewTransform returns an identity transform (zoom 1, no pan) with the
// default zoom range.
func NewTransform() *Transform {
	return &Transform{zoom: 1, minZoom: DefaultMinZoom, maxZoom: DefaultMaxZoom}
}

// SetZoomRange adjusts the clamp range and re-clamps the current state.
func (t *Transform) SetZoomRange(min, max float32) {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	t.minZoom, t.maxZoom = min, max
	t.SetZoom(t.zoom)
}

// Zoom returns the current zoom factor.
func (t *Transform) Zoom() float32 {
	return t.zoom
}

// SetZoom sets the zoom factor, clamped to the zoom range. Pan is
// re-clamped since its legal range depends on zoom.
func (t *Transform) SetZoom(zoom float32) {
	t.zoom = clamp(zoom, t.minZoom, t.maxZoom)
	t.SetPan(t.pan)
}

// Pan returns the current pan offset.
func (t *Transform) Pan() mgl32.Vec2 {
	return t.pan
}

// SetPan sets the pan offset, clamped proportionally to zoom.
func (t *Transform) SetPan(pan mgl32.Vec2) {
	limit := (t.zoom - 1) / 2
	t.pan = mgl32.Vec2{
		clamp(pan.X(), -limit, limit),
		clamp(pan.Y(), -limit, limit),
	}
}

// ZoomAtPoint changes zoom by delta while holding the given UV point
// visually fixed: the pan offset is recomputed from the zoom change and the
// point's offset from center, then clamped.
func (t *Transform) ZoomAtPoint(uv mgl32.Vec2, delta float32) {
	oldZoom := t.zoom
	t.zoom = clamp(oldZoom+delta, t.minZoom, t.maxZoom)
	centered := uv.Sub(mgl32.Vec2{0.5, 0.5})
	t.SetPan(t.pan.Add(centered.Mul(oldZoom - t.zoom)))
}

// ToDisplay maps a UV point into display space.
func (t *Transform) ToDisplay(uv mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(uv.X()-0.5)*t.zoom + t.pan.X() + 0.5,
		(uv.Y()-0.5)*t.zoom + t.pan.Y() + 0.5,
	}
}

// ToUV maps a display-space point back into UV space (inverse of
// ToDisplay).
func (t *Transform) ToUV(p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(p.X()-0.5-t.pan.X())/t.zoom + 0.5,
		(p.Y()-0.5-t.pan.Y())/t.zoom + 0.5,
	}
}

// RectToDisplay maps a UV rect into display space, for hosts drawing range
// rectangles or island bounds.
func (t *Transform) RectToDisplay(r island.Rect) island.Rect {
	return island.Rect{
		Min: t.ToDisplay(r.Min),
		Max: t.ToDisplay(r.Max),
	}
}

// Reset restores the identity view.
func (t *Transform) Reset() {
	t.zoom = clamp(1, t.minZoom, t.maxZoom)
	t.pan = mgl32.Vec2{}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
