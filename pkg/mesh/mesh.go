// Package mesh defines the triangle mesh input consumed by the UV island
// analyzer: a mesh-wide vertex position/UV array pair plus per-submesh
// triangle index buffers.
package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNoMesh              = errors.New("no mesh assigned")
	ErrNoUVs               = errors.New("mesh has no UV coordinates")
	ErrSubmeshOutOfRange   = errors.New("submesh index out of range")
	ErrIndexOutOfRange     = errors.New("vertex index out of range")
	ErrPartialTriangle     = errors.New("submesh index count is not a multiple of 3")
	ErrVertexCountMismatch = errors.New("UV count does not match position count")
)

// Submesh is an independently indexed triangle group within a mesh. Indices
// reference the mesh-wide vertex arrays in groups of three.
type Submesh struct {
	Name    string
	Indices []int
}

// Mesh holds shared vertex data and one or more submeshes. Vertex positions
// and UVs are parallel arrays; every submesh indexes into both.
type Mesh struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Submeshes []Submesh
}

// Validate checks the mesh for structural problems. A mesh with zero
// triangles in a submesh is valid; a nil or vertex-less mesh is not.
func (m *Mesh) Validate() error {
	if m == nil || len(m.Positions) == 0 {
		return ErrNoMesh
	}
	if len(m.UVs) == 0 {
		return ErrNoUVs
	}
	if len(m.UVs) != len(m.Positions) {
		return fmt.Errorf("%w: %d UVs, %d positions", ErrVertexCountMismatch, len(m.UVs), len(m.Positions))
	}
	for s, sub := range m.Submeshes {
		if len(sub.Indices)%3 != 0 {
			return fmt.Errorf("submesh %d: %w (%d indices)", s, ErrPartialTriangle, len(sub.Indices))
		}
		for _, idx := range sub.Indices {
			if idx < 0 || idx >= len(m.Positions) {
				return fmt.Errorf("submesh %d: %w (index %d, %d vertices)", s, ErrIndexOutOfRange, idx, len(m.Positions))
			}
		}
	}
	return nil
}

// CheckSubmesh returns an error if the submesh index is out of range.
func (m *Mesh) CheckSubmesh(submesh int) error {
	if submesh < 0 || submesh >= len(m.Submeshes) {
		return fmt.Errorf("%w: %d (mesh has %d submeshes)", ErrSubmeshOutOfRange, submesh, len(m.Submeshes))
	}
	return nil
}

// TriangleCount returns the number of triangles in the given submesh.
func (m *Mesh) TriangleCount(submesh int) int {
	return len(m.Submeshes[submesh].Indices) / 3
}

// Triangle returns the three vertex indices of triangle tri in the given
// submesh. Both indices must be in range; see CheckSubmesh and TriangleCount.
func (m *Mesh) Triangle(submesh, tri int) [3]int {
	idx := m.Submeshes[submesh].Indices
	return [3]int{idx[tri*3], idx[tri*3+1], idx[tri*3+2]}
}

// SanitizeUVs replaces NaN and infinite UV coordinates with the origin so
// they cannot poison bounds or adjacency hashing. Returns the number of
// vertices touched.
func (m *Mesh) SanitizeUVs() int {
	fixed := 0
	for i, uv := range m.UVs {
		if !isFinite(uv.X()) || !isFinite(uv.Y()) {
			m.UVs[i] = mgl32.Vec2{}
			fixed++
		}
	}
	return fixed
}

func isFinite(f float32) bool {
	f64 := float64(f)
	return !gomath.IsNaN(f64) && !gomath.IsInf(f64, 0)
}
