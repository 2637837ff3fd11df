package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ingyamilmolinar/vscroll/internal/geom"
	"github.com/ingyamilmolinar/vscroll/internal/scroll"
)

// Surface adapts an ebiten image to scroll.Surface. Bounds are the logical
// canvas size, not the image size.
type Surface struct {
	scroll.Viewport
	img *ebiten.Image

	vs []ebiten.Vertex
	is []uint16
}

func NewSurface(w, h float64) *Surface {
	return &Surface{Viewport: scroll.Viewport{W: w, H: h}}
}

// Target sets the image subsequent draws go to.
func (s *Surface) Target(img *ebiten.Image) { s.img = img }

func (s *Surface) Clear(c color.Color) { fillImage(s.img, c) }

// StrokePath strokes the open polyline pts with mitred joins.
func (s *Surface) StrokePath(pts []geom.Vec2, c color.Color, width float64) {
	if len(pts) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	op := &vector.StrokeOptions{Width: float32(width), LineJoin: vector.LineJoinMiter, MiterLimit: 4}
	s.vs, s.is = path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], op)

	r, g, b, a := c.RGBA()
	for i := range s.vs {
		s.vs[i].SrcX, s.vs[i].SrcY = 1, 1
		s.vs[i].ColorR = float32(r) / 0xffff
		s.vs[i].ColorG = float32(g) / 0xffff
		s.vs[i].ColorB = float32(b) / 0xffff
		s.vs[i].ColorA = float32(a) / 0xffff
	}
	drawTriangles(s.img, s.vs, s.is)
}
