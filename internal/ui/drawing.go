package ui

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// The drawing primitives below are variables so tests can capture draw calls
// without a graphics context.

var drawRect = func(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

var drawTriangles = func(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16) {
	dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

var fillImage = func(dst *ebiten.Image, c color.Color) { dst.Fill(c) }

var debugPrintAt = ebitenutil.DebugPrintAt

var overlayFace = text.NewGoXFace(basicfont.Face7x13)

// drawText prints multi-line overlay text with its top-left corner at x, y.
var drawText = func(dst *ebiten.Image, s string, x, y int) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(colOverlayText)
	op.LineSpacing = 14
	text.Draw(dst, s, overlayFace, op)
}

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

// whitePixel is the source image for solid-colour triangles.
func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSub = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}
