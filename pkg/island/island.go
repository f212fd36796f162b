// Package island partitions the triangles of a mesh's UV map into connected
// clusters ("UV islands") and answers point-in-island queries against them.
package island

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/uvisland/pkg/mesh"
)

// Island is one UV-connected cluster of a submesh's triangles.
type Island struct {
	// ID is unique within the island's submesh and stable for a given
	// analysis run; re-analysis may reassign IDs.
	ID      int
	Submesh int

	// Triangles holds triangle indices into the submesh's index buffer,
	// ordered by first encounter.
	Triangles []int

	// Vertices holds the sorted, deduplicated mesh vertex indices used by
	// the island's triangles.
	Vertices []int

	// Bounds is the UV-space AABB over all member vertices.
	Bounds Rect

	// Color is derived deterministically from ID for stable visualization.
	Color color.NRGBA

	// CustomName is a user-assigned label, empty by default.
	CustomName string
}

// ContainsVertex reports whether the island uses the given mesh vertex.
func (is *Island) ContainsVertex(v int) bool {
	i := sort.SearchInts(is.Vertices, v)
	return i < len(is.Vertices) && is.Vertices[i] == v
}

// ContainsPoint reports whether the UV point lies inside any of the
// island's triangles. Islands may be concave or split into disjoint UV
// shells after seam cuts, so every triangle is tested; there is no hull
// shortcut.
func (is *Island) ContainsPoint(uv mgl32.Vec2, m *mesh.Mesh) bool {
	for _, t := range is.Triangles {
		tri := m.Triangle(is.Submesh, t)
		if pointInTriangle(uv, m.UVs[tri[0]], m.UVs[tri[1]], m.UVs[tri[2]]) {
			return true
		}
	}
	return false
}
