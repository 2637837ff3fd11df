package ui

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/vscroll/internal/audio"
	"github.com/ingyamilmolinar/vscroll/internal/config"
	game_log "github.com/ingyamilmolinar/vscroll/internal/log"
	"github.com/ingyamilmolinar/vscroll/internal/rng"
	"github.com/ingyamilmolinar/vscroll/internal/scene"
	"github.com/ingyamilmolinar/vscroll/internal/scroll"
)

// drawLog records draw calls made through the overridable primitives.
type drawLog struct {
	rects     int
	triangles int
	fills     []color.Color
	texts     []string
	overlay   []string
	vertices  [][]ebiten.Vertex
}

func captureDraws(t *testing.T) *drawLog {
	t.Helper()
	l := &drawLog{}
	oldRect, oldTri, oldFill, oldPrint, oldText := drawRect, drawTriangles, fillImage, debugPrintAt, drawText
	drawRect = func(*ebiten.Image, image.Rectangle, color.Color) { l.rects++ }
	drawTriangles = func(_ *ebiten.Image, vs []ebiten.Vertex, _ []uint16) {
		l.triangles++
		l.vertices = append(l.vertices, append([]ebiten.Vertex(nil), vs...))
	}
	fillImage = func(_ *ebiten.Image, c color.Color) { l.fills = append(l.fills, c) }
	debugPrintAt = func(_ *ebiten.Image, s string, _, _ int) { l.texts = append(l.texts, s) }
	drawText = func(_ *ebiten.Image, s string, _, _ int) { l.overlay = append(l.overlay, s) }
	t.Cleanup(func() {
		drawRect, drawTriangles, fillImage, debugPrintAt, drawText = oldRect, oldTri, oldFill, oldPrint, oldText
	})
	return l
}

// input is a scripted mouse and keyboard.
type input struct {
	x, y int
	left bool
	keys map[ebiten.Key]bool
}

func (in *input) install(t *testing.T) {
	t.Helper()
	restore := SetInputForTest(
		func() (int, int) { return in.x, in.y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && in.left },
		func(k ebiten.Key) bool { return in.keys[k] },
	)
	t.Cleanup(restore)
}

func newTestGame(t *testing.T) (*Game, *audio.Engine) {
	t.Helper()
	cfg := config.Default()
	mix := audio.NewEngine(audio.DefaultSampleRate, cfg.Audio.Gain, game_log.Discard())
	vp := scroll.Viewport{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)}
	calm := func() time.Time { return time.UnixMilli(0) }
	sc, err := scene.New(cfg.Scene, vp, mix, rng.New(11), game_log.Discard(), scene.WithClock(calm))
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg.Window, sc, mix, game_log.Discard(), WithClock(calm)), mix
}
