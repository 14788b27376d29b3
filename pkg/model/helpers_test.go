package model

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": 1, "properties": {"name": "Europe", "iso": ["FR", "DE"]}, "geometry": {"type": "Polygon", "coordinates": [[[-10,43],[30,43],[30,60],[-10,60],[-10,43]]]}},
    {"type": "Feature", "id": 2, "properties": {"name": "Africa"}, "geometry": {"type": "Polygon", "coordinates": [[[10,-5],[35,-5],[35,15],[10,15],[10,-5]]]}},
    {"type": "Feature", "id": 3, "properties": {"name": "Asia"}, "geometry": {"type": "Polygon", "coordinates": [[[100,20],[145,20],[145,50],[100,50],[100,20]]]}},
    {"type": "Feature", "id": 4, "properties": {"name": "Americas"}, "geometry": {"type": "Polygon", "coordinates": [[[-125,-40],[-60,-40],[-60,55],[-125,55],[-125,-40]]]}}
  ]
}`

// memSource serves geography files from memory and counts reads.
type memSource struct {
	mu    sync.Mutex
	files map[string]string
	fails map[string]int // remaining forced failures per file
	reads map[string]int
}

func newMemSource(files map[string]string) *memSource {
	return &memSource{files: files, fails: map[string]int{}, reads: map[string]int{}}
}

func (s *memSource) Read(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[name]++
	if s.fails[name] > 0 {
		s.fails[name]--
		return nil, fmt.Errorf("read %s: transient failure", name)
	}
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("read %s: no such file", name)
	}
	return []byte(data), nil
}

func (s *memSource) readCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[name]
}

func continentModel(id string, count int) ComponentModel {
	return ComponentModel{
		ID:                     id,
		DisplayName:            id + " - test model",
		ExpectedComponentCount: count,
		GeographyFile:          "test.json",
		RegionMapping: map[string]string{
			"European": "Europe",
			"African":  "Africa",
			"Asian":    "Asia",
		},
	}
}

func newTestStore(t *testing.T) (*GeographyStore, *memSource) {
	t.Helper()
	src := newMemSource(map[string]string{"test.json": testGeoJSON})
	store, err := NewGeographyStore(src, 4)
	require.NoError(t, err)
	return store, src
}

func newTestProcessor(t *testing.T, models ...ComponentModel) (*Processor, *GeographyStore) {
	t.Helper()
	if len(models) == 0 {
		models = []ComponentModel{continentModel("K3T", 3), continentModel("K4T", 4)}
	}
	reg, err := NewRegistry(models...)
	require.NoError(t, err)
	store, _ := newTestStore(t)
	return NewProcessor(reg, store), store
}

func featureByRegion(t *testing.T, fc *FeatureCollection, region string) *Feature {
	t.Helper()
	for _, f := range fc.Features {
		if f.Region() == region {
			return f
		}
	}
	t.Fatalf("region %q not in collection", region)
	return nil
}
