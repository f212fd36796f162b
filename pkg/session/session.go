// Package session wires the analyzer, selection store and view transform
// into one editing session for a single mesh, exposing the surface an
// interactive host drives: analyze, pick, toggle, range-select, masks.
package session

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/uvisland/pkg/island"
	"github.com/Faultbox/uvisland/pkg/mesh"
	"github.com/Faultbox/uvisland/pkg/selection"
	"github.com/Faultbox/uvisland/pkg/view"
)

// Session owns the state of one mesh being edited. All methods are
// synchronous call-and-return; a host wanting analysis off its main thread
// can run SetMesh/Refresh elsewhere and hand the session back, since
// re-analysis is idempotent. A Session is not safe for concurrent use.
type Session struct {
	mesh    *mesh.Mesh
	islands []island.Island

	store *selection.Store
	view  *view.Transform

	params  island.Params
	pickTol float32
	log     *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithParams overrides the analyzer tunables.
func WithParams(p island.Params) Option {
	return func(s *Session) { s.params = p }
}

// WithPickTolerance overrides the hit-test fallback tolerance.
func WithPickTolerance(tol float32) Option {
	return func(s *Session) { s.pickTol = tol }
}

// WithLogger attaches a logger for recovery events (stale selection drops,
// sanitized UVs). Sessions are silent by default.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New returns an empty session. Assign a mesh with SetMesh.
func New(opts ...Option) *Session {
	s := &Session{
		store:   selection.NewStore(),
		view:    view.NewTransform(),
		params:  island.DefaultParams(),
		pickTol: island.DefaultPickTolerance,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetMesh validates and assigns the mesh, sanitizes its UVs, and runs the
// island analysis. Previous selection state is revalidated against the new
// islands.
func (s *Session) SetMesh(m *mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("assigning mesh: %w", err)
	}
	if fixed := m.SanitizeUVs(); fixed > 0 {
		s.log.Warn("sanitized non-finite UV coordinates", zap.Int("vertices", fixed))
	}
	s.mesh = m
	return s.Refresh()
}

// Refresh re-runs the island analysis on the current mesh. Selected island
// IDs that no longer exist are dropped and the masks rebuilt. Calling
// Refresh repeatedly with an unchanged mesh is idempotent.
func (s *Session) Refresh() error {
	if s.mesh == nil {
		return mesh.ErrNoMesh
	}
	islands, err := island.Analyze(s.mesh, s.params)
	if err != nil {
		return fmt.Errorf("analyzing islands: %w", err)
	}
	s.islands = islands
	if dropped := s.store.SetIslands(s.islands, len(s.mesh.Submeshes)); dropped > 0 {
		s.log.Debug("dropped stale island selections", zap.Int("count", dropped))
	}
	s.log.Debug("island analysis complete",
		zap.Int("islands", len(islands)),
		zap.Int("submeshes", len(s.mesh.Submeshes)))
	return nil
}

// Mesh returns the assigned mesh, or nil.
func (s *Session) Mesh() *mesh.Mesh {
	return s.mesh
}

// Islands returns the analyzed islands of one submesh, in ID order.
func (s *Session) Islands(submesh int) []*island.Island {
	return s.store.Islands(submesh)
}

// AllIslands returns every analyzed island across all submeshes.
func (s *Session) AllIslands() []island.Island {
	return s.islands
}

// Store exposes the selection store for direct selection operations.
func (s *Session) Store() *selection.Store {
	return s.store
}

// View exposes the view transform.
func (s *Session) View() *view.Transform {
	return s.view
}

// SetIslandName assigns a custom label to one island. Names do not survive
// re-analysis.
func (s *Session) SetIslandName(submesh, id int, name string) error {
	is, ok := s.store.Island(submesh, id)
	if !ok {
		return fmt.Errorf("%w: %d in submesh %d", selection.ErrUnknownIsland, id, submesh)
	}
	is.CustomName = name
	return nil
}

// PickAt resolves a display-space point (e.g. a pointer position already
// normalized to the preview viewport) to an island of the preview submesh.
func (s *Session) PickAt(display mgl32.Vec2) (submesh, id int, ok bool) {
	if s.mesh == nil {
		return 0, 0, false
	}
	uv := s.view.ToUV(display)
	preview := s.store.PreviewSubmesh()

	// Analyze orders islands by submesh, so the preview submesh's islands
	// form one contiguous run.
	lo, hi := -1, -1
	for i := range s.islands {
		if s.islands[i].Submesh == preview {
			if lo < 0 {
				lo = i
			}
			hi = i + 1
		}
	}
	if lo < 0 {
		return 0, 0, false
	}
	hit := island.Pick(s.mesh, s.islands[lo:hi], uv, s.pickTol)
	if hit == nil {
		return 0, 0, false
	}
	return preview, hit.ID, true
}

// ToggleAt picks at the display-space point and toggles the hit island's
// selection. Reports the toggled island, or ok=false on a miss.
func (s *Session) ToggleAt(display mgl32.Vec2) (submesh, id int, ok bool) {
	submesh, id, ok = s.PickAt(display)
	if !ok {
		return 0, 0, false
	}
	if err := s.store.Toggle(id); err != nil {
		return 0, 0, false
	}
	return submesh, id, true
}

// StartRangeAt begins a range selection at a display-space point.
func (s *Session) StartRangeAt(display mgl32.Vec2) {
	s.store.StartRange(s.view.ToUV(display))
}

// UpdateRangeAt moves the live range corner to a display-space point.
func (s *Session) UpdateRangeAt(display mgl32.Vec2) {
	s.store.UpdateRange(s.view.ToUV(display))
}

// FinishRange applies the range selection per mode.
func (s *Session) FinishRange(mode selection.RangeMode) {
	s.store.FinishRange(mode)
}

// RangeDisplayRect returns the live range rectangle in display space, for
// a host drawing the selection overlay.
func (s *Session) RangeDisplayRect() (island.Rect, bool) {
	r, ok := s.store.RangeRect()
	if !ok {
		return island.Rect{}, false
	}
	return s.view.RectToDisplay(r), true
}

// VertexMask returns the aggregated vertex mask across all submeshes.
func (s *Session) VertexMask() []int {
	return s.store.VertexMask()
}

// TriangleMask returns the triangle mask of one submesh.
func (s *Session) TriangleMask(submesh int) []int {
	return s.store.TriangleMask(submesh)
}
