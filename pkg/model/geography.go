// Base geography handling: GeoJSON types, loading and the template cache.

package model

import (
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yumyai/admixmap/logger"
	"go.uber.org/zap"
)

const (
	PropName            = "name"
	PropTotalProportion = "total_proportion"
	PropColor           = "color"
	PropOpacity         = "opacity"
)

type FeatureCollection struct {
	Type     string          `json:"type"`
	BBox     json.RawMessage `json:"bbox,omitempty"`
	Features []*Feature      `json:"features"`
}

// Feature geometry is kept as raw JSON and never touched.
type Feature struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// Region is the region identifier of the feature.
func (f *Feature) Region() string {
	name, _ := f.Properties[PropName].(string)
	return name
}

func (f *Feature) TotalProportion() float64 {
	v, _ := f.Properties[PropTotalProportion].(float64)
	return v
}

func (f *Feature) Color() string {
	v, _ := f.Properties[PropColor].(string)
	return v
}

func (f *Feature) Opacity() float64 {
	v, _ := f.Properties[PropOpacity].(float64)
	return v
}

// Clone returns a deep copy that shares no memory with fc.
func (fc *FeatureCollection) Clone() *FeatureCollection {
	out := &FeatureCollection{
		Type:     fc.Type,
		BBox:     cloneRaw(fc.BBox),
		Features: make([]*Feature, len(fc.Features)),
	}
	for i, f := range fc.Features {
		props := make(map[string]any, len(f.Properties)+3)
		for k, v := range f.Properties {
			props[k] = cloneValue(v)
		}
		out.Features[i] = &Feature{
			Type:       f.Type,
			ID:         cloneRaw(f.ID),
			Properties: props,
			Geometry:   cloneRaw(f.Geometry),
		}
	}
	return out
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}

// cloneValue copies the value shapes produced by encoding/json.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return t
	}
}

// DecodeFeatureCollection parses and checks a base geography document.
// Every feature must carry a string properties.name.
func DecodeFeatureCollection(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("geojson type is %q, want FeatureCollection", fc.Type)
	}
	for i, f := range fc.Features {
		if f == nil {
			return nil, fmt.Errorf("feature %d is null", i)
		}
		if f.Properties == nil {
			f.Properties = make(map[string]any)
		}
		if _, ok := f.Properties[PropName].(string); !ok {
			return nil, fmt.Errorf("feature %d has no string properties.name", i)
		}
	}
	return &fc, nil
}

// GeographySource reads raw geography files by name.
type GeographySource interface {
	Read(name string) ([]byte, error)
}

// CacheObserver is told about every template lookup: "hit", "miss" or "error".
type CacheObserver interface {
	ObserveGeographyCache(result string)
}

// GeographyStore memoizes decoded base geographies. Cached templates are
// never returned directly; callers get a private deep copy.
type GeographyStore struct {
	source   GeographySource
	cache    *lru.Cache[string, *FeatureCollection]
	observer CacheObserver
}

func NewGeographyStore(source GeographySource, size int) (*GeographyStore, error) {
	cache, err := lru.New[string, *FeatureCollection](size)
	if err != nil {
		return nil, fmt.Errorf("create geography cache: %w", err)
	}
	return &GeographyStore{source: source, cache: cache}, nil
}

func (s *GeographyStore) SetObserver(o CacheObserver) {
	s.observer = o
}

func (s *GeographyStore) observe(result string) {
	if s.observer != nil {
		s.observer.ObserveGeographyCache(result)
	}
}

// Template returns a fresh copy of the named base geography.
// A failed load is not cached, the next call reads the file again.
func (s *GeographyStore) Template(name string) (*FeatureCollection, error) {
	if fc, ok := s.cache.Get(name); ok {
		s.observe("hit")
		return fc.Clone(), nil
	}

	data, err := s.source.Read(name)
	if err != nil {
		s.observe("error")
		logger.Error("Cannot read geography", zap.String("file", name), zap.Error(err))
		return nil, wrapError(err, KindGeographyLoad, "The map data for this model is unavailable.")
	}

	fc, err := DecodeFeatureCollection(data)
	if err != nil {
		s.observe("error")
		logger.Error("Cannot parse geography", zap.String("file", name), zap.Error(err))
		return nil, wrapError(err, KindGeographyLoad, "The map data for this model is invalid.")
	}

	s.observe("miss")
	s.cache.Add(name, fc)
	logger.Info("Geography loaded", zap.String("file", name), zap.Int("features", len(fc.Features)))

	return fc.Clone(), nil
}

// Preload loads every named file, returning the first failure.
func (s *GeographyStore) Preload(names ...string) error {
	for _, name := range names {
		if _, err := s.Template(name); err != nil {
			return err
		}
	}
	return nil
}
