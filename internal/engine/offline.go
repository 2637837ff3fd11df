package engine

import (
	"time"

	"github.com/gopxl/beep"
)

// FrameRate is the number of scene frames per second of rendered audio.
const FrameRate = 60

// Epoch is the start of the synthetic clock used for offline rendering.
// Excitement is zero there.
var Epoch = time.UnixMilli(0)

// Mixer is the audio graph pulled by RenderOffline.
type Mixer interface {
	SampleRate() beep.SampleRate
	Render(n int) [][2]float64
}

// FrameTime is the synthetic clock reading for frame i.
func FrameTime(i int) time.Time {
	return Epoch.Add(time.Duration(i) * time.Second / FrameRate)
}

// samplesBefore is the number of samples that precede frame i. Rounding the
// running total keeps rates not divisible by FrameRate from drifting.
func samplesBefore(i int, sr beep.SampleRate) int {
	return (i*int(sr) + FrameRate/2) / FrameRate
}

// RenderOffline steps sc frames times on the synthetic clock, pulling one
// frame's worth of samples from mix after each step.
func RenderOffline(sc Stepper, mix Mixer, frames int) [][2]float64 {
	if frames <= 0 {
		return nil
	}
	sr := mix.SampleRate()
	out := make([][2]float64, 0, samplesBefore(frames, sr))
	b := sc.Bounds()
	for i := 0; i < frames; i++ {
		sc.Step(b, FrameTime(i))
		n := samplesBefore(i+1, sr) - samplesBefore(i, sr)
		out = append(out, mix.Render(n)...)
	}
	return out
}

// FramesFor converts a duration to a whole number of scene frames.
func FramesFor(d time.Duration) int {
	return int(d * FrameRate / time.Second)
}
