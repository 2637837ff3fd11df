package synth

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	// decaySeconds scales the tail: a tone one decade below 20kHz rings for
	// decaySeconds, two decades for twice that.
	decaySeconds  = 0.12
	ceilingHz     = 20000.0
	amplitude     = 0.01
	phaseFeedback = 0.001
)

// partials are the (multiplier, weight) pairs summed per sample. The last one
// is applied to phase squared, not phase.
var partials = [...]struct{ mul, weight float64 }{
	{1, 0.1},
	{3, 1.0},
	{7, 0.7},
	{11, 0.03},
}

// Waveform is a rendered one-shot tone, identical on both channels.
type Waveform struct {
	SampleRate beep.SampleRate
	Frequency  float64
	Samples    [][2]float64
}

// FrameCount returns how many frames a tone at freq lasts at sr. Tones at or
// above 20kHz have no frames.
func FrameCount(freq float64, sr beep.SampleRate) int {
	if freq <= 0 || freq >= ceilingHz || sr <= 0 {
		return 0
	}
	n := float64(sr) * decaySeconds * math.Log10(ceilingHz/freq)
	// absorb rounding in log10 so exact decades land on whole frames
	return int(math.Floor(n + 1e-9))
}

// Envelope is the cubic fade applied to frame i of n.
func Envelope(i, n int) float64 {
	if n <= 0 || i >= n {
		return 0
	}
	d := float64(n-i) / float64(n)
	return amplitude * d * d * d
}

// RenderWaveform synthesizes the decaying tone for freq.
func RenderWaveform(freq float64, sr beep.SampleRate) *Waveform {
	n := FrameCount(freq, sr)
	w := &Waveform{SampleRate: sr, Frequency: freq, Samples: make([][2]float64, n)}

	step := 2 * math.Pi * freq / float64(sr)
	phase := 0.0
	for i := 0; i < n; i++ {
		var sum float64
		for k, p := range partials {
			arg := p.mul * phase
			if k == len(partials)-1 {
				arg = p.mul * phase * phase
			}
			sum += p.weight * math.Sin(arg)
		}
		v := Envelope(i, n) * sum
		w.Samples[i] = [2]float64{v, v}

		phase += step + phaseFeedback*math.Tanh(math.Mod(phase, 1))
	}
	return w
}

func (w *Waveform) Len() int { return len(w.Samples) }

func (w *Waveform) Duration() time.Duration { return w.SampleRate.D(len(w.Samples)) }

// Streamer plays the waveform once from the start.
func (w *Waveform) Streamer() beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(w.Samples) {
			return 0, false
		}
		n := copy(samples, w.Samples[pos:])
		pos += n
		return n, true
	})
}

// Buffer copies the waveform into a beep.Buffer with two channels at the
// waveform's sample rate.
func (w *Waveform) Buffer() *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: w.SampleRate, NumChannels: 2, Precision: 3})
	buf.Append(w.Streamer())
	return buf
}
