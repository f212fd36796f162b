package island

import (
	"sort"

	"github.com/Faultbox/uvisland/pkg/mesh"
)

// DefaultWeldEpsilon is the UV-space proximity tolerance used to weld
// near-duplicate vertices into one island. Exporters often emit seam
// vertices whose UVs differ only by float noise; welding absorbs that.
// Keep it small: an over-aggressive value silently merges islands that are
// legitimately separate but packed tightly in the atlas.
const DefaultWeldEpsilon = 1e-4

// Params holds the analyzer tunables.
type Params struct {
	// WeldEpsilon is the UV distance under which two distinct vertices
	// are treated as the same UV corner. Zero or negative selects
	// DefaultWeldEpsilon.
	WeldEpsilon float32
}

// DefaultParams returns the analyzer defaults.
func DefaultParams() Params {
	return Params{WeldEpsilon: DefaultWeldEpsilon}
}

// Analyze clusters every submesh's triangles into UV islands. With no
// explicit submesh indices it processes all submeshes; otherwise only the
// listed ones. The result is deterministic for identical input: islands are
// ordered by submesh, then by their first triangle index, and IDs are
// sequential per submesh.
func Analyze(m *mesh.Mesh, params Params, submeshes ...int) ([]Island, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	eps := params.WeldEpsilon
	if eps <= 0 {
		eps = DefaultWeldEpsilon
	}

	targets := submeshes
	if len(targets) == 0 {
		targets = make([]int, len(m.Submeshes))
		for i := range targets {
			targets[i] = i
		}
	}
	for _, s := range targets {
		if err := m.CheckSubmesh(s); err != nil {
			return nil, err
		}
	}

	var islands []Island
	for _, s := range targets {
		islands = append(islands, analyzeSubmesh(m, s, eps)...)
	}
	return islands, nil
}

// analyzeSubmesh runs the clustering passes for one submesh:
//
//  1. triangles sharing an edge (two common vertex indices) are joined —
//     UV seams duplicate their vertices in exported meshes, so triangles
//     across a seam never share indices and stay apart;
//  2. distinct vertices whose UVs lie within the weld epsilon are treated
//     as one UV corner and their incident triangle fans are joined,
//     absorbing float noise that would otherwise fragment an island.
//
// A UV-space grid backs the weld pass so it never degenerates into
// all-pairs comparison across the submesh.
func analyzeSubmesh(m *mesh.Mesh, submesh int, eps float32) []Island {
	triCount := m.TriangleCount(submesh)
	if triCount == 0 {
		return nil
	}

	uf := newUnionFind(triCount)

	// Vertex -> incident triangles, in deterministic first-seen order.
	vertTris := make(map[int][]int)
	vertOrder := make([]int, 0, triCount*3)
	for t := 0; t < triCount; t++ {
		tri := m.Triangle(submesh, t)
		for c, v := range tri {
			// Degenerate triangles repeat indices; count each once.
			if (c > 0 && tri[0] == v) || (c > 1 && tri[1] == v) {
				continue
			}
			if _, ok := vertTris[v]; !ok {
				vertOrder = append(vertOrder, v)
			}
			vertTris[v] = append(vertTris[v], t)
		}
	}

	joinSharedEdges(m, submesh, triCount, uf)
	weldNearbyVertices(m, vertOrder, vertTris, eps, uf)

	// Group by root, ordered by first triangle index so IDs are stable.
	byRoot := make(map[int][]int)
	rootOrder := make([]int, 0)
	for t := 0; t < triCount; t++ {
		r := uf.find(t)
		if _, ok := byRoot[r]; !ok {
			rootOrder = append(rootOrder, r)
		}
		byRoot[r] = append(byRoot[r], t)
	}

	islands := make([]Island, 0, len(rootOrder))
	for id, r := range rootOrder {
		tris := byRoot[r]
		vset := make(map[int]struct{})
		bounds := emptyRect()
		for _, t := range tris {
			tri := m.Triangle(submesh, t)
			for _, v := range tri {
				vset[v] = struct{}{}
				uv := m.UVs[v]
				if isFinite(uv.X()) && isFinite(uv.Y()) {
					bounds = bounds.Add(uv)
				}
			}
		}
		verts := make([]int, 0, len(vset))
		for v := range vset {
			verts = append(verts, v)
		}
		sort.Ints(verts)

		islands = append(islands, Island{
			ID:        id,
			Submesh:   submesh,
			Triangles: tris,
			Vertices:  verts,
			Bounds:    bounds,
			Color:     ColorFor(id),
		})
	}
	return islands
}

// joinSharedEdges unions triangles that share an edge. Per-vertex UV
// storage means a shared index pair already implies coinciding UV
// endpoints, so no epsilon comparison is needed here.
func joinSharedEdges(m *mesh.Mesh, submesh, triCount int, uf *unionFind) {
	edges := make(map[[2]int]int, triCount*3/2)
	for t := 0; t < triCount; t++ {
		tri := m.Triangle(submesh, t)
		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			if a == b {
				continue // degenerate edge
			}
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if prev, ok := edges[key]; ok {
				uf.union(prev, t)
			} else {
				edges[key] = t
			}
		}
	}
}

// weldNearbyVertices buckets vertex UVs into an eps-sized grid and unions
// the incident triangle fans of any two distinct vertices closer than eps.
// When a weld fires, both fans collapse around what is effectively a single
// UV corner, so every triangle touching either vertex joins the same set.
func weldNearbyVertices(m *mesh.Mesh, vertOrder []int, vertTris map[int][]int, eps float32, uf *unionFind) {
	type cellKey [2]int32
	grid := make(map[cellKey][]int, len(vertOrder))
	keyOf := func(v int) cellKey {
		uv := m.UVs[v]
		return cellKey{int32(floorDiv(uv.X(), eps)), int32(floorDiv(uv.Y(), eps))}
	}

	for _, v := range vertOrder {
		uv := m.UVs[v]
		if !isFinite(uv.X()) || !isFinite(uv.Y()) {
			continue
		}
		grid[keyOf(v)] = append(grid[keyOf(v)], v)
	}

	epsSq := eps * eps
	for _, v := range vertOrder {
		uv := m.UVs[v]
		if !isFinite(uv.X()) || !isFinite(uv.Y()) {
			continue
		}
		center := keyOf(v)
		for dx := int32(-1); dx <= 1; dx++ {
			for dy := int32(-1); dy <= 1; dy++ {
				for _, w := range grid[cellKey{center[0] + dx, center[1] + dy}] {
					if w <= v {
						continue
					}
					d := m.UVs[w].Sub(uv)
					if d.X()*d.X()+d.Y()*d.Y() > epsSq {
						continue
					}
					base := vertTris[v][0]
					for _, t := range vertTris[v][1:] {
						uf.union(base, t)
					}
					for _, t := range vertTris[w] {
						uf.union(base, t)
					}
				}
			}
		}
	}
}

func floorDiv(v, cell float32) int64 {
	q := v / cell
	i := int64(q)
	if q < 0 && float32(i) != q {
		i--
	}
	return i
}

func isFinite(f float32) bool {
	// NaN fails both comparisons; infinities fail the range check.
	return f == f && f >= -1e30 && f <= 1e30
}
