package island

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/uvisland/pkg/mesh"
)

func analyzeFixture(t *testing.T, m *mesh.Mesh) []Island {
	t.Helper()
	islands, err := Analyze(m, DefaultParams())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return islands
}

func TestPick_InsideIsland(t *testing.T) {
	m := &mesh.Mesh{}
	addQuad(m, 0, 0, 0, 0.2, 0.2)
	addQuad(m, 0, 0.5, 0.5, 0.7, 0.7)
	islands := analyzeFixture(t, m)

	hit := Pick(m, islands, mgl32.Vec2{0.1, 0.1}, 0)
	if hit == nil {
		t.Fatal("expected hit inside first island")
	}
	if hit.ID != 0 {
		t.Errorf("expected island 0, got %d", hit.ID)
	}

	hit = Pick(m, islands, mgl32.Vec2{0.6, 0.6}, 0)
	if hit == nil || hit.ID != 1 {
		t.Fatalf("expected island 1, got %v", hit)
	}
}

func TestPick_FarOutside(t *testing.T) {
	m := &mesh.Mesh{}
	addQuad(m, 0, 0, 0, 0.2, 0.2)
	islands := analyzeFixture(t, m)

	if hit := Pick(m, islands, mgl32.Vec2{0.9, 0.9}, 0); hit != nil {
		t.Errorf("expected no hit far from all islands, got island %d", hit.ID)
	}
}

func TestPick_NearMissFallback(t *testing.T) {
	m := &mesh.Mesh{}
	addQuad(m, 0, 0, 0, 0.2, 0.2)
	islands := analyzeFixture(t, m)

	// 0.005 outside the right edge, within the 0.01 tolerance.
	hit := Pick(m, islands, mgl32.Vec2{0.205, 0.1}, 0.01)
	if hit == nil {
		t.Fatal("expected fallback hit near island edge")
	}

	// 0.05 outside is beyond the tolerance.
	if hit := Pick(m, islands, mgl32.Vec2{0.25, 0.1}, 0.01); hit != nil {
		t.Errorf("expected no hit beyond tolerance, got island %d", hit.ID)
	}
}

func TestPick_FallbackPicksNearest(t *testing.T) {
	m := &mesh.Mesh{}
	addQuad(m, 0, 0, 0, 0.2, 0.2)
	addQuad(m, 0, 0.23, 0, 0.4, 0.2)
	islands := analyzeFixture(t, m)

	// Between the islands, closer to the second.
	hit := Pick(m, islands, mgl32.Vec2{0.222, 0.1}, 0.02)
	if hit == nil {
		t.Fatal("expected fallback hit between islands")
	}
	if hit.ID != 1 {
		t.Errorf("expected nearest island 1, got %d", hit.ID)
	}
}

func TestIsland_ContainsPoint_ConcaveSafe(t *testing.T) {
	// An L-shape: three quads forming a concave island. The notch corner
	// must test outside even though it is inside the bounds.
	m := &mesh.Mesh{}
	addTriangle(m, 0, [3]mgl32.Vec2{{0, 0}, {0.4, 0}, {0, 0.2}})
	addTriangle(m, 0, [3]mgl32.Vec2{{0.4, 0}, {0.4, 0.2}, {0, 0.2}})
	addTriangle(m, 0, [3]mgl32.Vec2{{0, 0.2}, {0.2, 0.2}, {0, 0.4}})
	addTriangle(m, 0, [3]mgl32.Vec2{{0.2, 0.2}, {0.2, 0.4}, {0, 0.4}})
	islands, err := Analyze(m, Params{WeldEpsilon: 1e-6})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if len(islands) != 1 {
		t.Fatalf("expected 1 welded island, got %d", len(islands))
	}
	is := islands[0]

	if !is.ContainsPoint(mgl32.Vec2{0.1, 0.1}, m) {
		t.Error("point in the lower arm should be inside")
	}
	if !is.ContainsPoint(mgl32.Vec2{0.1, 0.3}, m) {
		t.Error("point in the upper arm should be inside")
	}
	if is.ContainsPoint(mgl32.Vec2{0.35, 0.35}, m) {
		t.Error("point in the notch is inside the bounds but outside the island")
	}
}

func TestPointInTriangle(t *testing.T) {
	a := mgl32.Vec2{0, 0}
	b := mgl32.Vec2{1, 0}
	c := mgl32.Vec2{0, 1}

	if !pointInTriangle(mgl32.Vec2{0.25, 0.25}, a, b, c) {
		t.Error("interior point rejected")
	}
	if !pointInTriangle(mgl32.Vec2{0.5, 0.5}, a, b, c) {
		t.Error("edge point rejected")
	}
	if pointInTriangle(mgl32.Vec2{0.6, 0.6}, a, b, c) {
		t.Error("exterior point accepted")
	}
	// Reversed winding must still work.
	if !pointInTriangle(mgl32.Vec2{0.25, 0.25}, c, b, a) {
		t.Error("interior point rejected for reversed winding")
	}
	// Zero-area triangles claim nothing.
	if pointInTriangle(mgl32.Vec2{0.5, 0.5}, a, a, a) {
		t.Error("collapsed triangle accepted a point")
	}
}
