package model

import (
	"fmt"
	"math"
)

type RGB struct {
	R, G, B int
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Interpolate moves from white (0) towards base (1).
func Interpolate(base, white RGB, intensity float64) RGB {
	return RGB{
		R: channel(base.R, white.R, intensity),
		G: channel(base.G, white.G, intensity),
		B: channel(base.B, white.B, intensity),
	}
}

func channel(base, white int, intensity float64) int {
	v := math.Round(float64(white) - float64(white-base)*intensity)
	return int(math.Max(0, math.Min(255, v)))
}

// Opacity stays in [0.6, 0.9] so empty regions are still drawn.
func Opacity(intensity float64) float64 {
	return math.Round((MinOpacity+intensity*OpacityRange)*1e4) / 1e4
}

// Intensity normalizes a proportion against the largest regional proportion.
func Intensity(proportion, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return proportion / max
}

// Colorize sets color and opacity on every feature of a per-request collection.
func Colorize(fc *FeatureCollection) {
	maxProportion := 0.0
	for _, f := range fc.Features {
		if p := f.TotalProportion(); p > maxProportion {
			maxProportion = p
		}
	}

	for _, f := range fc.Features {
		intensity := Intensity(f.TotalProportion(), maxProportion)
		f.Properties[PropColor] = Interpolate(BaseColor, WhiteColor, intensity).String()
		f.Properties[PropOpacity] = Opacity(intensity)
	}
}
