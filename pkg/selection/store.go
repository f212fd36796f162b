// Package selection tracks per-submesh island selections and maintains the
// derived vertex/triangle masks consumed by deformation.
package selection

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/uvisland/pkg/island"
)

var (
	ErrUnknownIsland     = errors.New("unknown island id")
	ErrSubmeshOutOfRange = errors.New("submesh index out of range")
)

// RangeMode selects how a finished range rectangle is applied to the
// current selection.
type RangeMode int

const (
	// RangeReplace discards the submesh's previous selection.
	RangeReplace RangeMode = iota
	// RangeAdd unions the hits into the existing selection.
	RangeAdd
	// RangeSubtract removes the hits from the existing selection.
	RangeSubtract
)

// Store holds the per-submesh sets of selected island IDs plus the derived
// masks. Editing operations (toggle, range selection) always target the
// current preview submesh; the masks aggregate selections across all
// submeshes. A Store is not safe for concurrent use.
type Store struct {
	islands      map[int][]*island.Island
	byID         map[int]map[int]*island.Island
	submeshCount int

	selected map[int]map[int]struct{}
	preview  int

	mask maskState

	ranging     bool
	rangeAnchor mgl32.Vec2
	rangeCursor mgl32.Vec2
}

// NewStore returns an empty store. Call SetIslands before selecting.
func NewStore() *Store {
	return &Store{
		islands:  make(map[int][]*island.Island),
		byID:     make(map[int]map[int]*island.Island),
		selected: make(map[int]map[int]struct{}),
		mask:     newMaskState(),
	}
}

// SetIslands installs a fresh analysis result. Selected IDs that no longer
// exist are dropped silently (re-analysis is a normal, frequent event) and
// the masks are rebuilt; the count of dropped IDs is returned. Any active
// range selection is cancelled, since its island set changed underneath it.
func (s *Store) SetIslands(islands []island.Island, submeshCount int) int {
	s.islands = make(map[int][]*island.Island, submeshCount)
	s.byID = make(map[int]map[int]*island.Island, submeshCount)
	s.submeshCount = submeshCount
	for i := range islands {
		is := &islands[i]
		s.islands[is.Submesh] = append(s.islands[is.Submesh], is)
		if s.byID[is.Submesh] == nil {
			s.byID[is.Submesh] = make(map[int]*island.Island)
		}
		s.byID[is.Submesh][is.ID] = is
	}

	if s.preview >= submeshCount {
		s.preview = 0
	}
	s.ranging = false

	dropped := 0
	for sm, set := range s.selected {
		for id := range set {
			if _, ok := s.byID[sm][id]; !ok {
				delete(set, id)
				dropped++
			}
		}
		if len(set) == 0 {
			delete(s.selected, sm)
		}
	}
	s.rebuildMask()
	return dropped
}

// Islands returns the analyzed islands of one submesh, in ID order.
func (s *Store) Islands(submesh int) []*island.Island {
	return s.islands[submesh]
}

// Island looks up one island by submesh and ID.
func (s *Store) Island(submesh, id int) (*island.Island, bool) {
	is, ok := s.byID[submesh][id]
	return is, ok
}

// SubmeshCount returns the submesh count installed by SetIslands.
func (s *Store) SubmeshCount() int {
	return s.submeshCount
}

// PreviewSubmesh returns the submesh that editing operations target.
func (s *Store) PreviewSubmesh() int {
	return s.preview
}

// SetPreviewSubmesh switches the editing target.
func (s *Store) SetPreviewSubmesh(submesh int) error {
	if submesh < 0 || submesh >= s.submeshCount {
		return fmt.Errorf("%w: %d of %d", ErrSubmeshOutOfRange, submesh, s.submeshCount)
	}
	s.preview = submesh
	s.ranging = false
	return nil
}

// NextPreviewSubmesh advances the editing target, wrapping around.
func (s *Store) NextPreviewSubmesh() int {
	if s.submeshCount > 0 {
		s.preview = (s.preview + 1) % s.submeshCount
		s.ranging = false
	}
	return s.preview
}

// PreviousPreviewSubmesh steps the editing target back, wrapping around.
func (s *Store) PreviousPreviewSubmesh() int {
	if s.submeshCount > 0 {
		s.preview = (s.preview + s.submeshCount - 1) % s.submeshCount
		s.ranging = false
	}
	return s.preview
}

// Toggle flips one island's membership in the preview submesh's selection.
// Masks are updated incrementally, not rebuilt.
func (s *Store) Toggle(id int) error {
	is, ok := s.byID[s.preview][id]
	if !ok {
		return fmt.Errorf("%w: %d in submesh %d", ErrUnknownIsland, id, s.preview)
	}

	set := s.selected[s.preview]
	if set == nil {
		set = make(map[int]struct{})
		s.selected[s.preview] = set
	}

	if _, on := set[id]; on {
		delete(set, id)
		s.mask.remove(is, s.vertexStillSelected)
	} else {
		set[id] = struct{}{}
		s.mask.add(is)
	}
	return nil
}

// SetSelected replaces one submesh's selection wholesale. IDs that do not
// exist in the current analysis are dropped. Masks are fully rebuilt.
func (s *Store) SetSelected(submesh int, ids []int) error {
	if submesh < 0 || submesh >= s.submeshCount {
		return fmt.Errorf("%w: %d of %d", ErrSubmeshOutOfRange, submesh, s.submeshCount)
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.byID[submesh][id]; ok {
			set[id] = struct{}{}
		}
	}
	if len(set) == 0 {
		delete(s.selected, submesh)
	} else {
		s.selected[submesh] = set
	}
	s.rebuildMask()
	return nil
}

// Clear empties every submesh's selection and the masks.
func (s *Store) Clear() {
	s.selected = make(map[int]map[int]struct{})
	s.mask.reset()
}

// Selected returns the sorted island IDs selected in one submesh.
func (s *Store) Selected(submesh int) []int {
	set := s.selected[submesh]
	if len(set) == 0 {
		return nil
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// IsSelected reports one island's selection state.
func (s *Store) IsSelected(submesh, id int) bool {
	_, ok := s.selected[submesh][id]
	return ok
}

// StartRange begins a rectangular range selection anchored at the given UV
// point.
func (s *Store) StartRange(uv mgl32.Vec2) {
	s.ranging = true
	s.rangeAnchor = uv
	s.rangeCursor = uv
}

// UpdateRange moves the live corner of the range rectangle.
func (s *Store) UpdateRange(uv mgl32.Vec2) {
	if s.ranging {
		s.rangeCursor = uv
	}
}

// RangeRect returns the live, normalized range rectangle and whether a
// range selection is in progress.
func (s *Store) RangeRect() (island.Rect, bool) {
	if !s.ranging {
		return island.Rect{}, false
	}
	return island.RectFromPoints(s.rangeAnchor, s.rangeCursor), true
}

// IsRangeSelecting reports whether a range selection is in progress.
func (s *Store) IsRangeSelecting() bool {
	return s.ranging
}

// CancelRange abandons an in-progress range selection.
func (s *Store) CancelRange() {
	s.ranging = false
}

// FinishRange resolves the range rectangle against the preview submesh's
// islands and applies the hits per mode. Hit testing is a bounds-overlap
// check, not exact triangle containment — a deliberate approximation for
// interactive speed. Masks are fully rebuilt.
func (s *Store) FinishRange(mode RangeMode) {
	if !s.ranging {
		return
	}
	s.ranging = false
	rect := island.RectFromPoints(s.rangeAnchor, s.rangeCursor)

	hits := make(map[int]struct{})
	for _, is := range s.islands[s.preview] {
		if !is.Bounds.IsEmpty() && is.Bounds.Overlaps(rect) {
			hits[is.ID] = struct{}{}
		}
	}

	set := s.selected[s.preview]
	switch mode {
	case RangeReplace:
		set = hits
	case RangeAdd:
		if set == nil {
			set = make(map[int]struct{})
		}
		for id := range hits {
			set[id] = struct{}{}
		}
	case RangeSubtract:
		for id := range hits {
			delete(set, id)
		}
	}
	if len(set) == 0 {
		delete(s.selected, s.preview)
	} else {
		s.selected[s.preview] = set
	}
	s.rebuildMask()
}

// VertexMask returns the sorted, deduplicated mesh vertex indices covered
// by any selected island across all submeshes.
func (s *Store) VertexMask() []int {
	return s.mask.vertexMask()
}

// TriangleMask returns the sorted triangle indices of the selected islands
// in one submesh.
func (s *Store) TriangleMask(submesh int) []int {
	return s.mask.triangleMask(submesh)
}

// rebuildMask recomputes both masks from scratch. This is the ground-truth
// path; the incremental updates in Toggle must stay equivalent to it.
func (s *Store) rebuildMask() {
	s.mask.reset()
	for sm, set := range s.selected {
		for id := range set {
			s.mask.add(s.byID[sm][id])
		}
	}
}

// vertexStillSelected reports whether any currently-selected island, in any
// submesh, still references the vertex. Incremental deselection may only
// drop a vertex from the mask when nothing else claims it.
func (s *Store) vertexStillSelected(v int) bool {
	for sm, set := range s.selected {
		for id := range set {
			if is := s.byID[sm][id]; is != nil && is.ContainsVertex(v) {
				return true
			}
		}
	}
	return false
}
