package model

import (
	"fmt"
	"math"
)

// SimpsonDiversity is 1 - sum(p^2).
func SimpsonDiversity(proportions []float64) float64 {
	sumSq := 0.0
	for _, p := range proportions {
		sumSq += p * p
	}
	return roundTo(1-sumSq, 6)
}

// Summarize computes result statistics. components must already be sorted
// in display order; the first one with the highest proportion is dominant.
func Summarize(components []Component, m *ComponentModel, fc *FeatureCollection) Statistics {
	stats := Statistics{
		ComponentCount:     len(components),
		UnmappedComponents: []string{},
	}

	proportions := make([]float64, len(components))
	for i, c := range components {
		proportions[i] = c.Proportion
		stats.TotalProportion += c.Proportion
		if _, ok := m.RegionOf(c.Name); ok {
			stats.MappedProportion += c.Proportion
		} else {
			stats.UnmappedComponents = append(stats.UnmappedComponents, c.Name)
		}
		if i == 0 || c.Proportion > stats.DominantComponent.Proportion {
			stats.DominantComponent = c
		}
	}
	stats.TotalProportion = roundTo(stats.TotalProportion, 9)
	stats.MappedProportion = roundTo(stats.MappedProportion, 9)
	stats.DiversityIndex = SimpsonDiversity(proportions)

	best := 0.0
	for _, f := range fc.Features {
		if p := f.TotalProportion(); p > best {
			best = p
			stats.DominantRegion = f.Region()
		}
	}

	return stats
}

// Palette returns n legend colors: the base palette, then golden angle hues.
func Palette(n int) []string {
	colors := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i < len(BASE_PALETTE) {
			colors = append(colors, BASE_PALETTE[i])
			continue
		}
		hue := math.Mod(float64(i)*137.508, 360)
		saturation := 65 + (i%3)*10
		lightness := 55 + (i%4)*8
		colors = append(colors, fmt.Sprintf("hsl(%s, %d%%, %d%%)", formatFloat(hue), saturation, lightness))
	}
	return colors
}

// Legend assigns palette colors to components in the given order.
func Legend(components []Component) []LegendEntry {
	colors := Palette(len(components))
	legend := make([]LegendEntry, len(components))
	for i, c := range components {
		legend[i] = LegendEntry{Name: c.Name, Color: colors[i]}
	}
	return legend
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", roundTo(v, 3))
}
