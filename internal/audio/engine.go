package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	game_log "github.com/ingyamilmolinar/vscroll/internal/log"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)

	// highpassHz removes DC and sub-audio rumble from the master bus.
	highpassHz = 20

	bytesPerFrame = 4 // 16-bit stereo
)

// Engine is the root of the audio graph. Voices added with Add are mixed,
// high-passed and scaled by the master gain. Add may be called from the frame
// loop while the output device reads from another goroutine.
type Engine struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	mix    *beep.Mixer
	volume *effects.Volume
	out    beep.Streamer
	gain   float64
	buf    [][2]float64
	pos    int64
	logger *game_log.Logger

	dev *device
}

// NewEngine builds an engine with the master gain in [0, 1].
func NewEngine(sr beep.SampleRate, gain float64, logger *game_log.Logger) *Engine {
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	e := &Engine{
		sr:     sr,
		mix:    &beep.Mixer{},
		logger: logger.Tag("AUDIO"),
	}
	e.volume = &effects.Volume{Streamer: e.mix, Base: 2}
	e.out = newHighpass(e.volume, highpassHz, sr)
	e.setGainLocked(gain)
	return e
}

func (e *Engine) SampleRate() beep.SampleRate { return e.sr }

// Add schedules voices to start with the next pulled frame.
func (e *Engine) Add(s ...beep.Streamer) {
	e.mu.Lock()
	e.mix.Add(s...)
	n := e.mix.Len()
	e.mu.Unlock()
	e.logger.Debugf("voice added, %d active", n)
}

// Voices returns the number of voices still playing.
func (e *Engine) Voices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mix.Len()
}

// SetGain sets the master gain, clamped to [0, 1]. Zero mutes.
func (e *Engine) SetGain(g float64) {
	e.mu.Lock()
	e.setGainLocked(g)
	e.mu.Unlock()
}

func (e *Engine) setGainLocked(g float64) {
	if math.IsNaN(g) || g < 0 {
		g = 0
	}
	if g > 1 {
		g = 1
	}
	e.gain = g
	if g == 0 {
		e.volume.Silent = true
		e.volume.Volume = 0
		return
	}
	e.volume.Silent = false
	e.volume.Volume = math.Log2(g)
}

func (e *Engine) Gain() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gain
}

// Position returns how many frames have been pulled from the graph.
func (e *Engine) Position() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// Stream fills samples from the graph. It implements beep.Streamer so the
// engine can be rendered offline; it never ends.
func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.streamLocked(samples)
	return len(samples), true
}

func (e *Engine) Err() error { return nil }

func (e *Engine) streamLocked(samples [][2]float64) {
	for len(samples) > 0 {
		n, _ := e.out.Stream(samples)
		if n == 0 {
			for i := range samples {
				samples[i] = [2]float64{}
			}
			n = len(samples)
		}
		samples = samples[n:]
		e.pos += int64(n)
	}
}

// Render pulls the next n frames.
func (e *Engine) Render(n int) [][2]float64 {
	out := make([][2]float64, n)
	e.Stream(out)
	return out
}

// Read implements io.Reader for the output device: interleaved signed 16-bit
// little-endian stereo.
func (e *Engine) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	e.mu.Lock()
	if cap(e.buf) < frames {
		e.buf = make([][2]float64, frames)
	}
	buf := e.buf[:frames]
	e.streamLocked(buf)
	e.mu.Unlock()

	for i, s := range buf {
		for ch := 0; ch < 2; ch++ {
			v := toInt16(s[ch])
			p[i*bytesPerFrame+ch*2] = byte(v)
			p[i*bytesPerFrame+ch*2+1] = byte(v >> 8)
		}
	}
	return frames * bytesPerFrame, nil
}

func toInt16(f float64) int16 {
	if f > 1 {
		f = 1
	} else if f < -1 {
		f = -1
	}
	return int16(f * 32767)
}
