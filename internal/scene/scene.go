package scene

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/ingyamilmolinar/vscroll/internal/audio"
	"github.com/ingyamilmolinar/vscroll/internal/config"
	game_log "github.com/ingyamilmolinar/vscroll/internal/log"
	"github.com/ingyamilmolinar/vscroll/internal/scroll"
	"github.com/ingyamilmolinar/vscroll/internal/synth"
)

// Random is the uniform source shared by layout, glyph jitter and tones.
type Random interface {
	Range(min, max float64) float64
}

// Stats counts scene activity since the last Reset.
type Stats struct {
	Frames  int64
	Spawns  int64
	Culls   int64
	Guards  int64
	Glyphs  int
	Columns int
}

// Scene owns every column and its tone. Columns are processed left to right.
type Scene struct {
	cfg    config.Scene
	bounds scroll.Bounds
	graph  synth.Graph
	rnd    Random
	now    func() time.Time
	logger *game_log.Logger

	columns []*scroll.Column
	tones   []*synth.Tone
	stats   Stats
}

type Option func(*Scene)

// WithClock sets the clock used while building columns.
func WithClock(now func() time.Time) Option { return func(s *Scene) { s.now = now } }

// New lays out columns across b and binds one tone per column to g.
func New(cfg config.Scene, b scroll.Bounds, g synth.Graph, r Random, logger *game_log.Logger, opts ...Option) (*Scene, error) {
	s := &Scene{
		cfg:    cfg,
		bounds: b,
		graph:  g,
		rnd:    r,
		now:    time.Now,
		logger: logger.Tag("SCENE"),
	}
	for _, o := range opts {
		o(s)
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset throws away every column and tone and builds a fresh layout. Voices
// already playing are left to finish.
func (s *Scene) Reset() error {
	var (
		columns []*scroll.Column
		tones   []*synth.Tone
	)
	w := s.bounds.Width()
	for x := 0.0; x < w; {
		bw := s.rnd.Range(s.cfg.MinBlockWidth, s.cfg.MaxBlockWidth)
		x += bw + s.cfg.Gap

		tone, err := synth.NewTone(s.graph, bw, Pan(x, w), s.rnd)
		if err != nil {
			return fmt.Errorf("column %d tone: %w", len(columns), err)
		}
		col, err := scroll.NewColumn(s.bounds, x, s.rnd.Range(s.cfg.MinSpeed, s.cfg.MaxSpeed), bw,
			scroll.WithRandom(s.rnd),
			scroll.WithTrigger(tone),
			scroll.WithClock(s.now),
		)
		if err != nil {
			return fmt.Errorf("column %d: %w", len(columns), err)
		}
		columns = append(columns, col)
		tones = append(tones, tone)

		x += bw + s.cfg.Gap
	}

	s.columns, s.tones = columns, tones
	s.stats = Stats{Columns: len(columns)}
	s.stats.Glyphs = s.glyphCount()
	s.logger.Infof("reset: %d columns, %d glyphs", len(columns), s.stats.Glyphs)
	return nil
}

// Pan maps a horizontal position to [-1, 1] across width.
func Pan(x, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, 2*x/width-1))
}

// Advance draws and steps every column, one column at a time.
func (s *Scene) Advance(dst scroll.Surface, now time.Time) {
	for _, c := range s.columns {
		s.record(c.Advance(dst, now))
	}
	s.endFrame()
}

// Draw renders every column without moving anything.
func (s *Scene) Draw(dst scroll.Surface) {
	for _, c := range s.columns {
		c.Draw(dst)
	}
}

// Step moves every column one frame.
func (s *Scene) Step(b scroll.Bounds, now time.Time) {
	for _, c := range s.columns {
		s.record(c.Step(b, now))
	}
	s.endFrame()
}

func (s *Scene) record(r scroll.StepResult) {
	if r.Spawned {
		s.stats.Spawns++
	}
	if r.Culled {
		s.stats.Culls++
	}
	if r.Guarded {
		s.stats.Guards++
		s.logger.Debugf("empty column refilled at frame %d", s.stats.Frames)
	}
}

func (s *Scene) endFrame() {
	s.stats.Frames++
	s.stats.Glyphs = s.glyphCount()
}

func (s *Scene) glyphCount() int {
	n := 0
	for _, c := range s.columns {
		n += c.Len()
	}
	return n
}

func (s *Scene) Bounds() scroll.Bounds { return s.bounds }

func (s *Scene) Columns() []*scroll.Column { return append([]*scroll.Column(nil), s.columns...) }

func (s *Scene) Tones() []*synth.Tone { return append([]*synth.Tone(nil), s.tones...) }

func (s *Scene) Stats() Stats { return s.stats }

// DumpWaveforms writes each column's waveform to dir as tone-NN.wav.
func (s *Scene) DumpWaveforms(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dump dir: %w", err)
	}
	for i, t := range s.tones {
		w := t.Waveform()
		path := filepath.Join(dir, fmt.Sprintf("tone-%02d.wav", i))
		if err := audio.WriteWAVFile(path, w.SampleRate, w.Samples); err != nil {
			return fmt.Errorf("dump %s: %w", path, err)
		}
		s.logger.Debugf("dumped %s (%.1fHz, %v)", path, w.Frequency, w.Duration())
	}
	return nil
}
