package ui

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Slider is a horizontal slider component with a 0..1 value.
type Slider struct {
	r        image.Rectangle
	Value    float64
	Label    string
	OnChange func(float64)
	dragging bool
}

func NewSlider(label string, v float64) *Slider { return &Slider{Label: label, Value: clamp01(v)} }

func (s *Slider) SetRect(r image.Rectangle) { s.r = r }

func (s *Slider) Rect() image.Rectangle { return s.r }

func (s *Slider) Dragging() bool { return s.dragging }

// Handle processes mouse interaction and reports whether the slider consumed
// it.
func (s *Slider) Handle(mx, my int, pressed bool) bool {
	if pressed {
		if s.dragging || image.Pt(mx, my).In(s.r) {
			s.dragging = true
			s.setFromX(mx)
			return true
		}
	} else if s.dragging {
		s.dragging = false
		return true
	}
	return false
}

func (s *Slider) setFromX(mx int) {
	w := s.r.Dx() - 1
	v := 0.0
	if w > 0 {
		v = clamp01(float64(mx-s.r.Min.X) / float64(w))
	}
	if v == s.Value {
		return
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

// Draw renders the slider and its percentage label.
func (s *Slider) Draw(dst *ebiten.Image) {
	trackY := s.r.Min.Y + s.r.Dy()/2 - 2
	drawRect(dst, image.Rect(s.r.Min.X, trackY, s.r.Max.X, trackY+4), colSliderTrack)

	knobX := s.r.Min.X + int(s.Value*float64(s.r.Dx()-1))
	drawRect(dst, image.Rect(knobX-2, s.r.Min.Y, knobX+2, s.r.Max.Y), colSliderKnob)

	debugPrintAt(dst, fmt.Sprintf("%s %d%%", s.Label, int(s.Value*100+0.5)), s.r.Min.X, s.r.Min.Y-15)
}

func clamp01(v float64) float64 {
	switch {
	case v != v || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
