package selection

import (
	"sort"

	"github.com/Faultbox/uvisland/pkg/island"
)

// maskState is the derived mask data: the global vertex set and the
// per-submesh triangle sets.
type maskState struct {
	vertices  map[int]struct{}
	triangles map[int]map[int]struct{}
}

func newMaskState() maskState {
	return maskState{
		vertices:  make(map[int]struct{}),
		triangles: make(map[int]map[int]struct{}),
	}
}

func (mk *maskState) reset() {
	mk.vertices = make(map[int]struct{})
	mk.triangles = make(map[int]map[int]struct{})
}

// add inserts an island's vertices and triangles into the masks.
func (mk *maskState) add(is *island.Island) {
	if is == nil {
		return
	}
	for _, v := range is.Vertices {
		mk.vertices[v] = struct{}{}
	}
	tris := mk.triangles[is.Submesh]
	if tris == nil {
		tris = make(map[int]struct{}, len(is.Triangles))
		mk.triangles[is.Submesh] = tris
	}
	for _, t := range is.Triangles {
		tris[t] = struct{}{}
	}
}

// remove drops an island's triangles outright, but keeps any vertex for
// which stillUsed reports another claim. Vertex indices can be shared
// between islands (and submeshes), so removal must consult the full
// selection state.
func (mk *maskState) remove(is *island.Island, stillUsed func(v int) bool) {
	if is == nil {
		return
	}
	for _, t := range is.Triangles {
		delete(mk.triangles[is.Submesh], t)
	}
	if len(mk.triangles[is.Submesh]) == 0 {
		delete(mk.triangles, is.Submesh)
	}
	for _, v := range is.Vertices {
		if !stillUsed(v) {
			delete(mk.vertices, v)
		}
	}
}

func (mk *maskState) vertexMask() []int {
	if len(mk.vertices) == 0 {
		return nil
	}
	out := make([]int, 0, len(mk.vertices))
	for v := range mk.vertices {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func (mk *maskState) triangleMask(submesh int) []int {
	set := mk.triangles[submesh]
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}
