package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// highpass is a one-pole RC high-pass filter applied per channel.
type highpass struct {
	s     beep.Streamer
	alpha float64
	prevX [2]float64
	prevY [2]float64
}

func newHighpass(s beep.Streamer, cutoffHz float64, sr beep.SampleRate) *highpass {
	rc := 1 / (2 * math.Pi * cutoffHz)
	dt := 1 / float64(sr)
	return &highpass{s: s, alpha: rc / (rc + dt)}
}

func (h *highpass) Stream(samples [][2]float64) (int, bool) {
	n, ok := h.s.Stream(samples)
	for i := range samples[:n] {
		for ch := 0; ch < 2; ch++ {
			x := samples[i][ch]
			y := h.alpha * (h.prevY[ch] + x - h.prevX[ch])
			h.prevX[ch], h.prevY[ch] = x, y
			samples[i][ch] = y
		}
	}
	return n, ok
}

func (h *highpass) Err() error { return h.s.Err() }
