package ui

import "image/color"

var (
	colBackground  = color.White
	colSliderTrack = color.RGBA{200, 200, 200, 255}
	colSliderKnob  = color.RGBA{60, 60, 60, 255}
	colOverlayBG   = color.RGBA{255, 255, 255, 200}
	colOverlayText = color.Black
)
