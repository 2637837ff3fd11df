package scene

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/ingyamilmolinar/vscroll/internal/config"
	"github.com/ingyamilmolinar/vscroll/internal/geom"
	game_log "github.com/ingyamilmolinar/vscroll/internal/log"
	"github.com/ingyamilmolinar/vscroll/internal/rng"
	"github.com/ingyamilmolinar/vscroll/internal/scroll"
)

type captureGraph struct{ voices []beep.Streamer }

func (g *captureGraph) SampleRate() beep.SampleRate { return 44100 }

func (g *captureGraph) Add(s ...beep.Streamer) { g.voices = append(g.voices, s...) }

func calmClock() time.Time { return time.UnixMilli(0) }

func newTestScene(t *testing.T, seed int64) (*Scene, *captureGraph) {
	t.Helper()
	g := &captureGraph{}
	s, err := New(config.Default().Scene, scroll.Viewport{W: 512, H: 512}, g, rng.New(seed),
		game_log.Discard(), WithClock(calmClock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, g
}

func TestLayoutSpansCanvas(t *testing.T) {
	s, _ := newTestScene(t, 1)
	cfg := config.Default().Scene
	cols := s.Columns()
	if len(cols) == 0 {
		t.Fatal("no columns")
	}
	if len(s.Tones()) != len(cols) {
		t.Fatalf("%d tones for %d columns", len(s.Tones()), len(cols))
	}
	first := cols[0]
	if first.XCenter() < cfg.MinBlockWidth+cfg.Gap || first.XCenter() >= cfg.MaxBlockWidth+cfg.Gap {
		t.Fatalf("first column at %v", first.XCenter())
	}
	for i := 1; i < len(cols); i++ {
		prev, cur := cols[i-1], cols[i]
		gap := cur.XCenter() - prev.XCenter()
		if want := prev.BlockWidth() + cur.BlockWidth() + 2*cfg.Gap; gap < want-1e-9 || gap > want+1e-9 {
			t.Fatalf("columns %d,%d are %v apart, want %v", i-1, i, gap, want)
		}
	}
	last := cols[len(cols)-1]
	if last.XCenter()+last.BlockWidth()+cfg.Gap < 512 {
		t.Fatalf("layout stops short at %v", last.XCenter())
	}
	for _, c := range cols {
		if c.ScrollSpeed() < cfg.MinSpeed || c.ScrollSpeed() >= cfg.MaxSpeed {
			t.Fatalf("speed %v outside [%v, %v)", c.ScrollSpeed(), cfg.MinSpeed, cfg.MaxSpeed)
		}
	}
}

func TestPansFollowColumns(t *testing.T) {
	s, _ := newTestScene(t, 2)
	prev := -2.0
	for i, tone := range s.Tones() {
		p := tone.Pan()
		if p < -1 || p > 1 {
			t.Fatalf("tone %d pan %v out of range", i, p)
		}
		if p < prev {
			t.Fatalf("pans not ordered left to right at %d", i)
		}
		prev = p
	}
}

func TestPan(t *testing.T) {
	cases := []struct{ x, w, want float64 }{
		{0, 512, -1},
		{256, 512, 0},
		{512, 512, 1},
		{600, 512, 1},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := Pan(tc.x, tc.w); got != tc.want {
			t.Errorf("Pan(%v, %v) = %v, want %v", tc.x, tc.w, got, tc.want)
		}
	}
}

func TestSpawnsTriggerVoices(t *testing.T) {
	s, g := newTestScene(t, 3)
	vp := scroll.Viewport{W: 512, H: 512}
	for i := 0; i < 600; i++ {
		s.Step(vp, calmClock())
	}
	st := s.Stats()
	if st.Frames != 600 {
		t.Fatalf("frames = %d", st.Frames)
	}
	if st.Spawns == 0 {
		t.Fatal("no spawns in 10 seconds of scrolling")
	}
	if int64(len(g.voices)) != st.Spawns {
		t.Fatalf("%d voices for %d spawns", len(g.voices), st.Spawns)
	}
	var plays int64
	for _, tone := range s.Tones() {
		plays += tone.Plays()
	}
	if plays != st.Spawns {
		t.Fatalf("tones played %d times for %d spawns", plays, st.Spawns)
	}
	for _, c := range s.Columns() {
		if c.Len() < 1 {
			t.Fatal("empty column")
		}
	}
}

type strokeCounter struct {
	scroll.Viewport
	strokes int
}

func (c *strokeCounter) StrokePath([]geom.Vec2, color.Color, float64) { c.strokes++ }

func (c *strokeCounter) Clear(color.Color) {}

func TestAdvanceDrawsEveryGlyph(t *testing.T) {
	s, _ := newTestScene(t, 4)
	dst := &strokeCounter{Viewport: scroll.Viewport{W: 512, H: 512}}
	before := s.Stats().Glyphs
	s.Advance(dst, calmClock())
	if dst.strokes != before {
		t.Fatalf("drew %d strokes for %d glyphs", dst.strokes, before)
	}
	dst.strokes = 0
	s.Draw(dst)
	if dst.strokes != s.Stats().Glyphs {
		t.Fatalf("Draw made %d strokes for %d glyphs", dst.strokes, s.Stats().Glyphs)
	}
}

func TestResetRebuilds(t *testing.T) {
	s, g := newTestScene(t, 5)
	vp := scroll.Viewport{W: 512, H: 512}
	for i := 0; i < 120; i++ {
		s.Step(vp, calmClock())
	}
	oldCols := s.Columns()
	voices := len(g.voices)
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if s.Stats().Frames != 0 || s.Stats().Spawns != 0 {
		t.Fatalf("stats not cleared: %+v", s.Stats())
	}
	for _, c := range s.Columns() {
		for _, old := range oldCols {
			if c == old {
				t.Fatal("reset kept an old column")
			}
		}
	}
	if len(g.voices) != voices {
		t.Fatal("reset touched voices already in the graph")
	}
}

func TestSameSeedSameLayout(t *testing.T) {
	a, _ := newTestScene(t, 77)
	b, _ := newTestScene(t, 77)
	ca, cb := a.Columns(), b.Columns()
	if len(ca) != len(cb) {
		t.Fatalf("column counts differ: %d vs %d", len(ca), len(cb))
	}
	for i := range ca {
		if ca[i].XCenter() != cb[i].XCenter() || ca[i].ScrollSpeed() != cb[i].ScrollSpeed() {
			t.Fatalf("column %d differs", i)
		}
	}
}

func TestDumpWaveforms(t *testing.T) {
	s, _ := newTestScene(t, 6)
	dir := filepath.Join(t.TempDir(), "dump")
	if err := s.DumpWaveforms(dir); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(s.Tones()) {
		t.Fatalf("%d files for %d tones", len(entries), len(s.Tones()))
	}
}
