package island

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Rect is an axis-aligned box in UV space.
type Rect struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// emptyRect returns a Rect that any Add will overwrite.
func emptyRect() Rect {
	return Rect{
		Min: mgl32.Vec2{1e10, 1e10},
		Max: mgl32.Vec2{-1e10, -1e10},
	}
}

// IsEmpty reports whether the rect has never been extended.
func (r Rect) IsEmpty() bool {
	return r.Min.X() > r.Max.X() || r.Min.Y() > r.Max.Y()
}

// Add extends the rect to include the given point.
func (r Rect) Add(p mgl32.Vec2) Rect {
	if p.X() < r.Min[0] {
		r.Min[0] = p.X()
	}
	if p.Y() < r.Min[1] {
		r.Min[1] = p.Y()
	}
	if p.X() > r.Max[0] {
		r.Max[0] = p.X()
	}
	if p.Y() > r.Max[1] {
		r.Max[1] = p.Y()
	}
	return r
}

// Expanded returns the rect grown by tol on every side.
func (r Rect) Expanded(tol float32) Rect {
	return Rect{
		Min: mgl32.Vec2{r.Min.X() - tol, r.Min.Y() - tol},
		Max: mgl32.Vec2{r.Max.X() + tol, r.Max.Y() + tol},
	}
}

// Contains reports whether the point lies inside the rect (inclusive).
func (r Rect) Contains(p mgl32.Vec2) bool {
	return p.X() >= r.Min.X() && p.X() <= r.Max.X() &&
		p.Y() >= r.Min.Y() && p.Y() <= r.Max.Y()
}

// Overlaps reports whether two rects intersect (touching counts).
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X() <= o.Max.X() && r.Max.X() >= o.Min.X() &&
		r.Min.Y() <= o.Max.Y() && r.Max.Y() >= o.Min.Y()
}

// EdgeDistance returns the distance from the point to the rect's boundary:
// for outside points the distance to the rect, for inside points the
// distance to the nearest edge.
func (r Rect) EdgeDistance(p mgl32.Vec2) float32 {
	if !r.Contains(p) {
		dx := maxf(r.Min.X()-p.X(), 0, p.X()-r.Max.X())
		dy := maxf(r.Min.Y()-p.Y(), 0, p.Y()-r.Max.Y())
		return float32(gomath.Sqrt(float64(dx*dx + dy*dy)))
	}
	return minf(
		p.X()-r.Min.X(), r.Max.X()-p.X(),
		p.Y()-r.Min.Y(), r.Max.Y()-p.Y(),
	)
}

// RectFromPoints builds a normalized rect from two arbitrary corners, so
// min/max are order-independent.
func RectFromPoints(a, b mgl32.Vec2) Rect {
	return emptyRect().Add(a).Add(b)
}

func maxf(vals ...float32) float32 {
	out := vals[0]
	for _, v := range vals[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

func minf(vals ...float32) float32 {
	out := vals[0]
	for _, v := range vals[1:] {
		if v < out {
			out = v
		}
	}
	return out
}
