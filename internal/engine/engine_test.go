package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/ingyamilmolinar/vscroll/internal/audio"
	"github.com/ingyamilmolinar/vscroll/internal/config"
	game_log "github.com/ingyamilmolinar/vscroll/internal/log"
	"github.com/ingyamilmolinar/vscroll/internal/rng"
	"github.com/ingyamilmolinar/vscroll/internal/scene"
	"github.com/ingyamilmolinar/vscroll/internal/scroll"
)

type countingStepper struct {
	mu    sync.Mutex
	times []time.Time
}

func (c *countingStepper) Step(_ scroll.Bounds, now time.Time) {
	c.mu.Lock()
	c.times = append(c.times, now)
	c.mu.Unlock()
}

func (c *countingStepper) Bounds() scroll.Bounds { return scroll.Viewport{W: 64, H: 64} }

func (c *countingStepper) Stats() scene.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return scene.Stats{Frames: int64(len(c.times))}
}

type countingMixer struct {
	sr    beep.SampleRate
	pulls []int
}

func (m *countingMixer) SampleRate() beep.SampleRate { return m.sr }

func (m *countingMixer) Render(n int) [][2]float64 {
	m.pulls = append(m.pulls, n)
	return make([][2]float64, n)
}

func TestRunnerPublishesFrames(t *testing.T) {
	st := &countingStepper{}
	r := NewRunner(context.Background(), st, 500, game_log.Discard())
	defer r.Close()
	timeout := time.After(2 * time.Second)
	var last int64
	for last < 3 {
		select {
		case ev := <-r.Events:
			if ev.Frame <= last {
				t.Fatalf("frame went from %d to %d", last, ev.Frame)
			}
			last = ev.Frame
		case <-timeout:
			t.Fatalf("only %d frames in 2s", last)
		}
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(ctx, &countingStepper{}, 500, game_log.Discard())
	cancel()
	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancel")
	}
	r.Close()
	r.Close()
}

func TestRunnerUsesClock(t *testing.T) {
	fixed := time.UnixMilli(12345)
	st := &countingStepper{}
	r := NewRunner(context.Background(), st, 500, game_log.Discard(),
		WithClock(func() time.Time { return fixed }))
	<-r.Events
	r.Close()
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, tm := range st.times {
		if !tm.Equal(fixed) {
			t.Fatalf("step saw %v, want %v", tm, fixed)
		}
	}
}

func TestRunnerDoesNotBlockWithoutReader(t *testing.T) {
	st := &countingStepper{}
	r := NewRunner(context.Background(), st, 1000, game_log.Discard())
	deadline := time.Now().Add(2 * time.Second)
	for st.Stats().Frames < 40 {
		if time.Now().After(deadline) {
			t.Fatalf("stepping stalled at %d frames with a full event channel", st.Stats().Frames)
		}
		time.Sleep(5 * time.Millisecond)
	}
	r.Close()
}

func TestFrameTime(t *testing.T) {
	if !FrameTime(0).Equal(Epoch) {
		t.Fatalf("frame 0 at %v", FrameTime(0))
	}
	if got := FrameTime(60).Sub(Epoch); got != time.Second {
		t.Fatalf("frame 60 is %v after the epoch", got)
	}
	if FramesFor(2*time.Second) != 120 {
		t.Fatalf("FramesFor(2s) = %d", FramesFor(2*time.Second))
	}
}

func TestRenderOfflinePullsPerFrame(t *testing.T) {
	st := &countingStepper{}
	mix := &countingMixer{sr: 44100}
	out := RenderOffline(st, mix, 60)
	if len(out) != 44100 {
		t.Fatalf("rendered %d samples for one second", len(out))
	}
	for i, n := range mix.pulls {
		if n != 735 {
			t.Fatalf("pull %d = %d samples, want 735", i, n)
		}
	}
	for i, tm := range st.times {
		if !tm.Equal(FrameTime(i)) {
			t.Fatalf("step %d saw %v", i, tm)
		}
	}
}

func TestRenderOfflineUnevenRate(t *testing.T) {
	mix := &countingMixer{sr: 22050}
	out := RenderOffline(&countingStepper{}, mix, 120)
	if len(out) != 44100 {
		t.Fatalf("rendered %d samples for two seconds at 22050", len(out))
	}
	for _, n := range mix.pulls {
		if n != 367 && n != 368 {
			t.Fatalf("pull of %d samples", n)
		}
	}
	if RenderOffline(&countingStepper{}, mix, 0) != nil {
		t.Fatal("zero frames should render nothing")
	}
}

func TestRenderOfflineScene(t *testing.T) {
	mix := audio.NewEngine(audio.DefaultSampleRate, 1, game_log.Discard())
	sc, err := scene.New(config.Default().Scene, scroll.Viewport{W: 256, H: 256}, mix, rng.New(9),
		game_log.Discard(), scene.WithClock(func() time.Time { return Epoch }))
	if err != nil {
		t.Fatal(err)
	}
	out := RenderOffline(sc, mix, 600)
	if len(out) != 10*int(audio.DefaultSampleRate) {
		t.Fatalf("rendered %d samples", len(out))
	}
	if sc.Stats().Spawns == 0 {
		t.Fatal("no spawns in ten seconds")
	}
	loud := false
	for _, s := range out {
		if s[0] != 0 || s[1] != 0 {
			loud = true
			break
		}
	}
	if !loud {
		t.Fatal("offline render is silent")
	}
}
