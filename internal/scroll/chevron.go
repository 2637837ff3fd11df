package scroll

import (
	"image/color"
	"math"

	"github.com/ingyamilmolinar/vscroll/internal/geom"
)

var strokeColor = color.Black

// Chevron is a single "V" glyph. Only Position changes after construction.
type Chevron struct {
	HalfExtent  geom.Vec2
	Position    geom.Vec2
	Rotation    float64
	Path        [3]geom.Vec2
	StrokeWidth float64
}

// NewChevron builds a glyph whose path spans ±width horizontally and ±height
// vertically around position, rotated by rotation radians.
func NewChevron(width, height float64, position geom.Vec2, rotation float64) *Chevron {
	c := &Chevron{
		HalfExtent: geom.V(width, height),
		Position:   position,
		Rotation:   rotation,
		Path: [3]geom.Vec2{
			geom.V(-width, -height),
			geom.V(0, height),
			geom.V(width, -height),
		},
		StrokeWidth: math.Floor(width / 4),
	}
	for i := range c.Path {
		c.Path[i].Rotate(rotation)
	}
	return c
}

// Box returns the axis-aligned bounding box used for visibility tests.
func (c *Chevron) Box() (minX, minY, maxX, maxY float64) {
	return c.Position.X - c.HalfExtent.X,
		c.Position.Y - c.HalfExtent.Y,
		c.Position.X + c.HalfExtent.X,
		c.Position.Y + c.HalfExtent.Y
}

// Points returns the path translated to screen space.
func (c *Chevron) Points() []geom.Vec2 {
	pts := make([]geom.Vec2, len(c.Path))
	for i, p := range c.Path {
		pts[i] = c.Position.Add(p)
	}
	return pts
}

func (c *Chevron) Draw(dst Surface) {
	dst.StrokePath(c.Points(), strokeColor, c.StrokeWidth)
}

func (c *Chevron) IsOffScreen(b Bounds) bool {
	return b.IsOffScreen(c.Box())
}
