package ui

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/vscroll/internal/config"
	game_log "github.com/ingyamilmolinar/vscroll/internal/log"
	"github.com/ingyamilmolinar/vscroll/internal/scene"
)

// Mixer is the slice of the audio graph the UI controls.
type Mixer interface {
	SetGain(g float64)
	Gain() float64
	Voices() int
}

const (
	// gain glides to the slider value instead of jumping, so dragging does
	// not click.
	gainFrequency = 12.0
	gainDamping   = 1.0

	sliderWidth  = 120
	sliderHeight = 12
	sliderMargin = 10
)

// Game drives the scene from ebiten's update loop.
type Game struct {
	cfg     config.Window
	scene   *scene.Scene
	mix     Mixer
	logger  *game_log.Logger
	surface *Surface
	gain    *Slider
	now     func() time.Time

	spring           harmonica.Spring
	gainPos, gainVel float64
	gainTarget       float64

	leftPrev bool
	debug    bool
}

type Option func(*Game)

// WithClock sets the clock handed to every scene step.
func WithClock(now func() time.Time) Option { return func(g *Game) { g.now = now } }

func New(cfg config.Window, sc *scene.Scene, mix Mixer, logger *game_log.Logger, opts ...Option) *Game {
	g := &Game{
		cfg:     cfg,
		scene:   sc,
		mix:     mix,
		logger:  logger.Tag("UI"),
		surface: NewSurface(float64(cfg.Width), float64(cfg.Height)),
		gain:    NewSlider("gain", mix.Gain()),
		now:     time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	tps := cfg.TPS
	if tps <= 0 {
		tps = config.DefaultTPS
	}
	g.spring = harmonica.NewSpring(harmonica.FPS(tps), gainFrequency, gainDamping)
	g.gainPos, g.gainTarget = mix.Gain(), mix.Gain()
	g.gain.SetRect(image.Rect(sliderMargin, cfg.Height-sliderMargin-sliderHeight,
		sliderMargin+sliderWidth, cfg.Height-sliderMargin))
	g.gain.OnChange = func(v float64) {
		g.gainTarget = v
		g.logger.Debugf("gain target %.2f", v)
	}
	return g
}

func (g *Game) Update() error {
	mx, my := cursorPosition()
	left := isMouseButtonPressed(ebiten.MouseButtonLeft)
	if !g.gain.Handle(mx, my, left) && left && !g.leftPrev {
		g.reset("click")
	}
	g.leftPrev = left

	if isKeyJustPressed(ebiten.KeyR) {
		g.reset("key")
	}
	if isKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	g.glideGain()
	g.scene.Step(g.scene.Bounds(), g.now())
	return nil
}

func (g *Game) glideGain() {
	if g.gainPos == g.gainTarget && g.gainVel == 0 {
		return
	}
	g.gainPos, g.gainVel = g.spring.Update(g.gainPos, g.gainVel, g.gainTarget)
	if math.Abs(g.gainPos-g.gainTarget) < 1e-4 && math.Abs(g.gainVel) < 1e-3 {
		g.gainPos, g.gainVel = g.gainTarget, 0
	}
	g.mix.SetGain(g.gainPos)
}

func (g *Game) reset(why string) {
	if err := g.scene.Reset(); err != nil {
		g.logger.Errorf("reset (%s): %v", why, err)
		return
	}
	g.logger.Infof("reset (%s)", why)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	g.surface.Clear(colBackground)
	g.scene.Draw(g.surface)
	g.gain.Draw(screen)
	if g.debug {
		st := g.scene.Stats()
		drawRect(screen, image.Rect(0, 0, 140, 52), colOverlayBG)
		drawText(screen, fmt.Sprintf("TPS %.1f\nglyphs %d\nvoices %d",
			actualTPS(), st.Glyphs, g.mix.Voices()), 4, 4)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func (g *Game) Slider() *Slider { return g.gain }

func (g *Game) Debug() bool { return g.debug }
