package scroll

import (
	"image/color"

	"github.com/ingyamilmolinar/vscroll/internal/geom"
)

// Bounds is the visible area glyphs are tested against.
type Bounds interface {
	Width() float64
	Height() float64
	// IsOffScreen reports whether the rectangle lies entirely outside the
	// visible area.
	IsOffScreen(minX, minY, maxX, maxY float64) bool
}

// Surface is a Bounds that can also be drawn on.
type Surface interface {
	Bounds
	StrokePath(pts []geom.Vec2, c color.Color, width float64)
	Clear(c color.Color)
}

// Trigger is fired once per leading-edge spawn.
type Trigger interface {
	Play(detuneCents float64)
}

// Random is a uniform source returning values in [min, max).
type Random interface {
	Range(min, max float64) float64
}

// Viewport is a plain rectangle anchored at the origin. It is the Bounds used
// when stepping without drawing.
type Viewport struct {
	W, H float64
}

func (v Viewport) Width() float64  { return v.W }
func (v Viewport) Height() float64 { return v.H }

// IsOffScreen treats a box touching an edge as visible.
func (v Viewport) IsOffScreen(minX, minY, maxX, maxY float64) bool {
	return maxX < 0 || maxY < 0 || minX > v.W || minY > v.H
}
