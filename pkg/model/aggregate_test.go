package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	m := continentModel("K4T", 4)
	m.RegionMapping["Iberian"] = "Europe"
	parsed := parsedOf(Component{"European", 0.3}, Component{"Iberian", 0.2}, Component{"Asian", 0.4}, Component{"Martian", 0.1})
	fc := mustDecode(t, testGeoJSON)

	got := Aggregate(parsed, &m, fc)

	// filled in place, no second copy
	require.Same(t, fc, got)
	assert.InDelta(t, 0.5, featureByRegion(t, got, "Europe").TotalProportion(), 1e-12)
	assert.Equal(t, 0.4, featureByRegion(t, got, "Asia").TotalProportion())
	assert.Equal(t, 0.0, featureByRegion(t, got, "Africa").TotalProportion())
	assert.Contains(t, featureByRegion(t, got, "Americas").Properties, PropTotalProportion)
}

func TestProcess_LeavesCachedTemplateUntouched(t *testing.T) {
	proc, store := newTestProcessor(t)

	_, err := proc.Process(context.Background(), "European: 50%\nAfrican: 30%\nAsian: 20%", "")
	require.NoError(t, err)

	fc, ok := store.cache.Get("test.json")
	require.True(t, ok)
	for _, f := range fc.Features {
		assert.NotContains(t, f.Properties, PropTotalProportion)
		assert.NotContains(t, f.Properties, PropOpacity)
	}
}
