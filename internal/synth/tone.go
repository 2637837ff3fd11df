package synth

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// resampleQuality is the beep resampler quality used for detuned voices.
const resampleQuality = 4

// ErrInvalidTone is wrapped by NewTone for unusable parameters.
var ErrInvalidTone = errors.New("invalid tone")

// Graph is the shared audio destination voices are mixed into.
type Graph interface {
	SampleRate() beep.SampleRate
	Add(s ...beep.Streamer)
}

// Random is a uniform source returning values in [min, max).
type Random interface {
	Range(min, max float64) float64
}

// BaseFrequency maps a block width to a pitch: every 5px of width is an
// octave above 60Hz.
func BaseFrequency(blockWidth, jitter float64) float64 {
	return 60 * math.Pow(2, (blockWidth+jitter)/5)
}

// DetuneRatio converts cents to a playback-rate ratio.
func DetuneRatio(cents float64) float64 {
	return math.Pow(2, cents/1200)
}

// Tone is one column's percussive voice. Its waveform is rendered once and
// every Play starts an independent one-shot copy of it.
type Tone struct {
	graph Graph
	pan   float64
	freq  float64
	wave  *Waveform
	buf   *beep.Buffer
	plays atomic.Int64
}

// NewTone renders the waveform for blockWidth and binds the voice to pan,
// clamped to [-1, 1].
func NewTone(g Graph, blockWidth, pan float64, r Random) (*Tone, error) {
	if g == nil {
		return nil, fmt.Errorf("nil graph: %w", ErrInvalidTone)
	}
	if blockWidth <= 0 || math.IsNaN(blockWidth) || math.IsInf(blockWidth, 0) {
		return nil, fmt.Errorf("blockWidth %v: %w", blockWidth, ErrInvalidTone)
	}
	if math.IsNaN(pan) {
		return nil, fmt.Errorf("pan is NaN: %w", ErrInvalidTone)
	}
	jitter := 0.0
	if r != nil {
		jitter = r.Range(0, 0.01)
	}
	t := &Tone{
		graph: g,
		pan:   math.Max(-1, math.Min(1, pan)),
		freq:  BaseFrequency(blockWidth, jitter),
	}
	t.wave = RenderWaveform(t.freq, g.SampleRate())
	t.buf = t.wave.Buffer()
	return t, nil
}

// Play starts the waveform now, shifted by detuneCents. Calls never block
// and overlapping voices are all kept.
func (t *Tone) Play(detuneCents float64) {
	if t.buf.Len() == 0 {
		return
	}
	t.plays.Add(1)
	t.graph.Add(t.voice(detuneCents))
}

func (t *Tone) voice(detuneCents float64) beep.Streamer {
	var s beep.Streamer = t.buf.Streamer(0, t.buf.Len())
	if ratio := DetuneRatio(detuneCents); ratio != 1 && ratio > 0 && !math.IsInf(ratio, 0) {
		s = beep.ResampleRatio(resampleQuality, ratio, s)
	}
	return &effects.Pan{Streamer: s, Pan: t.pan}
}

func (t *Tone) Pan() float64 { return t.pan }

func (t *Tone) Frequency() float64 { return t.freq }

func (t *Tone) Waveform() *Waveform { return t.wave }

// Plays returns how many voices this tone has started.
func (t *Tone) Plays() int64 { return t.plays.Load() }
