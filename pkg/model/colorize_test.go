package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
		want      string
	}{
		{"Full", 1, "rgb(60,130,246)"},
		{"Empty", 0, "rgb(255,255,255)"},
		{"Half", 0.5, "rgb(158,193,251)"},
		{"ClampedHigh", 2, "rgb(0,5,237)"},
		{"ClampedLow", -1, "rgb(255,255,255)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(BaseColor, WhiteColor, tt.intensity).String())
		})
	}
}

func TestOpacityBounds(t *testing.T) {
	assert.Equal(t, 0.6, Opacity(0))
	assert.Equal(t, 0.9, Opacity(1))
	assert.Equal(t, 0.75, Opacity(0.5))

	for i := 0; i <= 100; i++ {
		o := Opacity(float64(i) / 100)
		assert.GreaterOrEqual(t, o, 0.6)
		assert.LessOrEqual(t, o, 0.9)
	}
}

func TestIntensity(t *testing.T) {
	assert.Equal(t, 0.0, Intensity(0.3, 0))
	assert.Equal(t, 1.0, Intensity(0.4, 0.4))
	assert.InDelta(t, 0.5, Intensity(0.2, 0.4), 1e-12)
}

func TestColorize_AllZero(t *testing.T) {
	fc := mustDecode(t, testGeoJSON)
	for _, f := range fc.Features {
		f.Properties[PropTotalProportion] = 0.0
	}

	Colorize(fc)

	for _, f := range fc.Features {
		assert.Equal(t, "rgb(255,255,255)", f.Color(), f.Region())
		assert.Equal(t, 0.6, f.Opacity(), f.Region())
	}
}

// The region with the largest total is always drawn at full color.
func TestColorize_MaxRegionIsBaseColor(t *testing.T) {
	fc := mustDecode(t, testGeoJSON)
	totals := map[string]float64{"Europe": 0.05, "Africa": 0.1, "Asia": 0.02}
	for _, f := range fc.Features {
		f.Properties[PropTotalProportion] = totals[f.Region()]
	}

	Colorize(fc)

	assert.Equal(t, "rgb(60,130,246)", featureByRegion(t, fc, "Africa").Color())
	assert.Equal(t, 0.9, featureByRegion(t, fc, "Africa").Opacity())
	assert.Equal(t, 0.75, featureByRegion(t, fc, "Europe").Opacity())
}
