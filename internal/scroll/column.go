package scroll

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ingyamilmolinar/vscroll/internal/geom"
)

const (
	// DefaultDensity is the spacing between glyph centres in block heights.
	DefaultDensity = 1.5

	// MinBlockWidth is the narrowest column accepted. Below a pixel the fill
	// step stops advancing and the column would hold millions of glyphs.
	MinBlockWidth = 1.0

	excitementRate = 0.0001 // radians per millisecond
)

// ErrInvalidColumn is wrapped by NewColumn for unusable parameters.
var ErrInvalidColumn = errors.New("invalid column")

// Excitement is the slow global oscillation that scales glyph jitter. It is
// zero for half of its period.
func Excitement(now time.Time) float64 {
	return math.Max(0, math.Sin(float64(now.UnixMilli())*excitementRate))
}

// StepResult describes what a single Step did.
type StepResult struct {
	Spawned bool
	Culled  bool
	Guarded bool
	Detune  float64 // cents passed to the trigger when Spawned
}

// Column is one vertical band of glyphs scrolling downward. glyphs[0] is the
// topmost glyph, the last element the bottommost.
type Column struct {
	xCenter     float64
	scrollSpeed float64
	blockWidth  float64
	blockHeight float64
	density     float64
	rotation    float64
	spawnY      float64

	glyphs []*Chevron

	trigger Trigger
	rnd     Random
	now     func() time.Time
}

type ColumnOption func(*Column)

// WithTrigger sets the voice fired on each leading-edge spawn.
func WithTrigger(t Trigger) ColumnOption { return func(c *Column) { c.trigger = t } }

// WithRandom sets the jitter source.
func WithRandom(r Random) ColumnOption { return func(c *Column) { c.rnd = r } }

// WithClock sets the clock used while filling the column at construction.
func WithClock(now func() time.Time) ColumnOption { return func(c *Column) { c.now = now } }

// NewColumn builds a column centred on xCenter and fills it so the glyphs
// cover the visible height of b plus a margin at both ends. Negative speeds
// are clamped to zero.
func NewColumn(b Bounds, xCenter, scrollSpeed, blockWidth float64, opts ...ColumnOption) (*Column, error) {
	for name, v := range map[string]float64{"xCenter": xCenter, "scrollSpeed": scrollSpeed, "blockWidth": blockWidth} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s is %v: %w", name, v, ErrInvalidColumn)
		}
	}
	if blockWidth < MinBlockWidth {
		return nil, fmt.Errorf("blockWidth %v is below %v: %w", blockWidth, MinBlockWidth, ErrInvalidColumn)
	}

	c := &Column{
		xCenter:     xCenter,
		scrollSpeed: math.Max(0, scrollSpeed),
		blockWidth:  blockWidth,
		blockHeight: blockWidth * 3 / 4,
		density:     DefaultDensity,
		rnd:         zeroRandom{},
		now:         time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	c.spawnY = -c.blockHeight*(1+c.density) + 1

	now := c.now()
	limit := b.Height() + c.blockHeight*2
	for y := c.spawnY; y < limit; y += c.blockHeight * c.density {
		c.glyphs = append(c.glyphs, c.spawnAt(y, now))
	}
	return c, nil
}

func (c *Column) spawnAt(y float64, now time.Time) *Chevron {
	s := Excitement(now)
	return NewChevron(
		c.blockWidth+s*c.rnd.Range(-4, 2),
		c.blockHeight+s*c.rnd.Range(-4, 2),
		geom.V(c.xCenter, y),
		c.rotation+s*math.Pi*c.rnd.Range(-0.1, 0.1),
	)
}

// Advance draws the column and then steps it, in that order.
func (c *Column) Advance(dst Surface, now time.Time) StepResult {
	c.Draw(dst)
	return c.Step(dst, now)
}

// Draw renders every glyph.
func (c *Column) Draw(dst Surface) {
	for _, g := range c.glyphs {
		g.Draw(dst)
	}
}

// Step moves every glyph down by the scroll speed, spawns at the leading edge
// once the front glyph is visible and culls the back glyph once it has left
// the screen. The column never ends a step empty.
func (c *Column) Step(b Bounds, now time.Time) StepResult {
	var res StepResult

	for _, g := range c.glyphs {
		g.Position.Y += c.scrollSpeed
	}

	// Only reachable for columns that drain faster than they refill, e.g. an
	// xCenter outside the canvas.
	if len(c.glyphs) == 0 {
		c.unshift(c.spawnAt(c.spawnY, now))
		res.Guarded = true
	}

	if !c.glyphs[0].IsOffScreen(b) {
		g := c.spawnAt(c.spawnY, now)
		c.unshift(g)
		res.Spawned = true
		res.Detune = g.Rotation / math.Pi * 1000
		if c.trigger != nil {
			c.trigger.Play(res.Detune)
		}
	}

	if last := len(c.glyphs) - 1; c.glyphs[last].IsOffScreen(b) {
		c.glyphs[last] = nil
		c.glyphs = c.glyphs[:last]
		res.Culled = true
	}

	if len(c.glyphs) == 0 {
		c.unshift(c.spawnAt(c.spawnY, now))
		res.Guarded = true
	}
	return res
}

func (c *Column) unshift(g *Chevron) {
	c.glyphs = append(c.glyphs, nil)
	copy(c.glyphs[1:], c.glyphs)
	c.glyphs[0] = g
}

func (c *Column) Len() int { return len(c.glyphs) }

// Front returns the topmost glyph.
func (c *Column) Front() *Chevron { return c.glyphs[0] }

// Back returns the bottommost glyph.
func (c *Column) Back() *Chevron { return c.glyphs[len(c.glyphs)-1] }

// Glyphs returns a copy of the glyph order, top to bottom.
func (c *Column) Glyphs() []*Chevron { return append([]*Chevron(nil), c.glyphs...) }

func (c *Column) SpawnY() float64      { return c.spawnY }
func (c *Column) XCenter() float64     { return c.xCenter }
func (c *Column) ScrollSpeed() float64 { return c.scrollSpeed }
func (c *Column) BlockWidth() float64  { return c.blockWidth }
func (c *Column) BlockHeight() float64 { return c.blockHeight }
func (c *Column) Density() float64     { return c.density }

// zeroRandom keeps unseeded columns jitter-free.
type zeroRandom struct{}

func (zeroRandom) Range(min, max float64) float64 { return 0 }
