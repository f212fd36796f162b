package island

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/uvisland/pkg/mesh"
)

// DefaultPickTolerance is the UV-space slack used by the pick fallback to
// absorb near-miss clicks at island edges. Clicks farther than this from
// every island's bounds resolve to nothing.
const DefaultPickTolerance = 0.01

// Pick returns the island containing the UV point, or nil. It runs two
// phases: an exact point-in-triangle pass, then a bounds-based fallback
// that accepts the island whose (un-expanded) bounds boundary is nearest to
// the point, provided that distance is within tol. A tol of zero or less
// selects DefaultPickTolerance.
func Pick(m *mesh.Mesh, islands []Island, uv mgl32.Vec2, tol float32) *Island {
	if tol <= 0 {
		tol = DefaultPickTolerance
	}

	for i := range islands {
		is := &islands[i]
		if is.Bounds.Contains(uv) && is.ContainsPoint(uv, m) {
			return is
		}
	}

	var best *Island
	bestDist := tol
	for i := range islands {
		is := &islands[i]
		if is.Bounds.IsEmpty() || !is.Bounds.Expanded(tol).Contains(uv) {
			continue
		}
		if d := is.Bounds.EdgeDistance(uv); d <= bestDist {
			best = is
			bestDist = d
		}
	}
	return best
}

// pointInTriangle tests UV containment via cross-product signs, accepting
// either winding. Points on an edge count as inside. Fully degenerate
// triangles reject every off-line point.
func pointInTriangle(p, a, b, c mgl32.Vec2) bool {
	if cross2(b.Sub(a), c.Sub(a)) == 0 {
		return false // zero-area triangle claims nothing
	}
	d1 := cross2(b.Sub(a), p.Sub(a))
	d2 := cross2(c.Sub(b), p.Sub(b))
	d3 := cross2(a.Sub(c), p.Sub(c))

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross2(a, b mgl32.Vec2) float32 {
	return a.X()*b.Y() - a.Y()*b.X()
}
