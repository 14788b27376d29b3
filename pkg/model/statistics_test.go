package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpsonDiversity(t *testing.T) {
	assert.Equal(t, 0.0, SimpsonDiversity([]float64{1}))
	assert.Equal(t, 0.62, SimpsonDiversity([]float64{0.5, 0.3, 0.2}))
	assert.Equal(t, 0.5, SimpsonDiversity([]float64{0.5, 0.5}))
	assert.Equal(t, 1.0, SimpsonDiversity(nil))
}

func TestPalette(t *testing.T) {
	colors := Palette(14)

	require.Len(t, colors, 14)
	assert.Equal(t, "#3b82f6", colors[0])
	assert.Equal(t, "#eab308", colors[11])
	assert.Equal(t, "hsl(210.096, 65%, 55%)", colors[12])
	assert.Equal(t, "hsl(347.604, 75%, 63%)", colors[13])
	assert.Empty(t, Palette(0))
}

func TestLegend(t *testing.T) {
	legend := Legend([]Component{{"European", 0.6}, {"African", 0.4}})

	assert.Equal(t, []LegendEntry{
		{Name: "European", Color: "#3b82f6"},
		{Name: "African", Color: "#10b981"},
	}, legend)
}

func TestSummarize(t *testing.T) {
	m := continentModel("K3T", 3)
	fc := mustDecode(t, testGeoJSON)
	for _, f := range fc.Features {
		f.Properties[PropTotalProportion] = 0.0
	}
	featureByRegion(t, fc, "Africa").Properties[PropTotalProportion] = 0.4
	featureByRegion(t, fc, "Europe").Properties[PropTotalProportion] = 0.4
	components := []Component{{"African", 0.4}, {"European", 0.4}, {"Martian", 0.2}}

	stats := Summarize(components, &m, fc)

	assert.Equal(t, 3, stats.ComponentCount)
	assert.Equal(t, 1.0, stats.TotalProportion)
	assert.Equal(t, 0.8, stats.MappedProportion)
	assert.Equal(t, []string{"Martian"}, stats.UnmappedComponents)
	assert.Equal(t, Component{"African", 0.4}, stats.DominantComponent)
	assert.Equal(t, 0.64, stats.DiversityIndex)
	// Europe comes first in the collection and wins the tie
	assert.Equal(t, "Europe", stats.DominantRegion)
}

func TestSummarize_NothingMapped(t *testing.T) {
	m := continentModel("K1T", 1)
	fc := mustDecode(t, testGeoJSON)

	stats := Summarize([]Component{{"Martian", 1}}, &m, fc)

	assert.Equal(t, "", stats.DominantRegion)
	assert.Equal(t, 0.0, stats.MappedProportion)
}
