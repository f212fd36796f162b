package island

import (
	"image/color"
	gomath "math"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spaces hues so consecutive island IDs land far apart on the
// color wheel.
const goldenAngle = 137.50776405

// ColorFor derives a stable display color from an island ID. Identical IDs
// always produce identical colors, which keeps visualization (and tests)
// reproducible across re-runs.
func ColorFor(id int) color.NRGBA {
	hue := gomath.Mod(float64(id)*goldenAngle, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsv(hue, 0.65, 0.95).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
