package island

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRect_AddAndBounds(t *testing.T) {
	r := emptyRect()
	if !r.IsEmpty() {
		t.Fatal("fresh rect should be empty")
	}
	r = r.Add(mgl32.Vec2{0.3, 0.7}).Add(mgl32.Vec2{0.1, 0.9})
	if r.IsEmpty() {
		t.Fatal("rect with points should not be empty")
	}
	if r.Min != (mgl32.Vec2{0.1, 0.7}) || r.Max != (mgl32.Vec2{0.3, 0.9}) {
		t.Errorf("unexpected bounds: %v - %v", r.Min, r.Max)
	}
}

func TestRectFromPoints_OrderIndependent(t *testing.T) {
	a := RectFromPoints(mgl32.Vec2{0.8, 0.1}, mgl32.Vec2{0.2, 0.6})
	b := RectFromPoints(mgl32.Vec2{0.2, 0.6}, mgl32.Vec2{0.8, 0.1})
	if a != b {
		t.Errorf("corner order changed the rect: %v vs %v", a, b)
	}
	if a.Min != (mgl32.Vec2{0.2, 0.1}) || a.Max != (mgl32.Vec2{0.8, 0.6}) {
		t.Errorf("rect not normalized: %v", a)
	}
}

func TestRect_Overlaps(t *testing.T) {
	a := RectFromPoints(mgl32.Vec2{0, 0}, mgl32.Vec2{0.2, 0.2})
	b := RectFromPoints(mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{0.7, 0.7})
	c := RectFromPoints(mgl32.Vec2{0.1, 0.1}, mgl32.Vec2{0.6, 0.6})

	if a.Overlaps(b) {
		t.Error("disjoint rects reported overlapping")
	}
	if !a.Overlaps(c) || !b.Overlaps(c) {
		t.Error("overlapping rects reported disjoint")
	}
}

func TestRect_EdgeDistance(t *testing.T) {
	r := RectFromPoints(mgl32.Vec2{0, 0}, mgl32.Vec2{0.2, 0.2})

	// Outside: straight-line distance to the box.
	if d := r.EdgeDistance(mgl32.Vec2{0.3, 0.1}); !approx32(d, 0.1) {
		t.Errorf("outside distance = %g, want 0.1", d)
	}
	// Outside a corner: diagonal distance.
	if d := r.EdgeDistance(mgl32.Vec2{0.23, 0.24}); !approx32(d, 0.05) {
		t.Errorf("corner distance = %g, want 0.05", d)
	}
	// Inside: distance to the nearest edge.
	if d := r.EdgeDistance(mgl32.Vec2{0.05, 0.1}); !approx32(d, 0.05) {
		t.Errorf("inside distance = %g, want 0.05", d)
	}
	// On the boundary.
	if d := r.EdgeDistance(mgl32.Vec2{0.2, 0.1}); !approx32(d, 0) {
		t.Errorf("boundary distance = %g, want 0", d)
	}
}

func TestRect_Expanded(t *testing.T) {
	r := RectFromPoints(mgl32.Vec2{0.1, 0.1}, mgl32.Vec2{0.2, 0.2})
	e := r.Expanded(0.05)
	if !e.Contains(mgl32.Vec2{0.06, 0.1}) {
		t.Error("expanded rect should contain the nearby point")
	}
	if e.Contains(mgl32.Vec2{0.01, 0.1}) {
		t.Error("expanded rect should not contain the distant point")
	}
}

func approx32(got, want float32) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d < 1e-5
}
