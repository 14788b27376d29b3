package model

import (
	"encoding/json"
	"fmt"
)

// One admixture calculator, e.g. K36.
type ComponentModel struct {
	ID                     string            `json:"id"`
	DisplayName            string            `json:"display_name"`
	ExpectedComponentCount int               `json:"expected_component_count"`
	GeographyFile          string            `json:"geography_file"`
	RegionMapping          map[string]string `json:"region_mapping"`
	StrictNames            bool              `json:"strict_names"`
}

// RegionOf returns the region a component maps to, if any.
func (m *ComponentModel) RegionOf(component string) (string, bool) {
	region, ok := m.RegionMapping[component]
	return region, ok
}

// Regions lists the distinct region identifiers of the model.
func (m *ComponentModel) Regions() []string {
	seen := make(map[string]struct{}, len(m.RegionMapping))
	regions := make([]string, 0, len(m.RegionMapping))
	for _, name := range sortedKeys(m.RegionMapping) {
		region := m.RegionMapping[name]
		if _, ok := seen[region]; ok {
			continue
		}
		seen[region] = struct{}{}
		regions = append(regions, region)
	}
	return regions
}

// Component is one named ancestral fraction. It encodes as ["name", 0.5].
type Component struct {
	Name       string
	Proportion float64
}

func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Name, c.Proportion})
}

func (c *Component) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("component: expected [name, proportion], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Name); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &c.Proportion)
}

// ParsedInput is an insertion ordered mapping of component name to proportion.
// Owned by one request.
type ParsedInput struct {
	entries []Component
	index   map[string]int
}

func NewParsedInput() *ParsedInput {
	return &ParsedInput{index: make(map[string]int)}
}

// Set adds a component, or overwrites the value of an existing one in place.
// It reports whether the name was new.
func (p *ParsedInput) Set(name string, proportion float64) bool {
	if i, ok := p.index[name]; ok {
		p.entries[i].Proportion = proportion
		return false
	}
	p.index[name] = len(p.entries)
	p.entries = append(p.entries, Component{Name: name, Proportion: proportion})
	return true
}

func (p *ParsedInput) Get(name string) (float64, bool) {
	i, ok := p.index[name]
	if !ok {
		return 0, false
	}
	return p.entries[i].Proportion, true
}

func (p *ParsedInput) Len() int {
	return len(p.entries)
}

// Components returns a copy in input order.
func (p *ParsedInput) Components() []Component {
	out := make([]Component, len(p.entries))
	copy(out, p.entries)
	return out
}

func (p *ParsedInput) Sum() float64 {
	total := 0.0
	for _, c := range p.entries {
		total += c.Proportion
	}
	return total
}

type LegendEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Statistics struct {
	ComponentCount     int       `json:"componentCount"`
	TotalProportion    float64   `json:"totalProportion"`
	MappedProportion   float64   `json:"mappedProportion"`
	UnmappedComponents []string  `json:"unmappedComponents"`
	DominantComponent  Component `json:"dominantComponent"`
	DiversityIndex     float64   `json:"diversityIndex"`
	DominantRegion     string    `json:"dominantRegion"`
}

type ProcessingResult struct {
	ModelID    string             `json:"modelId"`
	ModelName  string             `json:"modelName"`
	GeoJSON    *FeatureCollection `json:"geojson"`
	Components []Component        `json:"components"`
	Statistics Statistics         `json:"statistics"`
	Legend     []LegendEntry      `json:"legend"`
}
