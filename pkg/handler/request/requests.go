package request

import (
	"sort"

	"github.com/yumyai/admixmap/pkg/model"
)

// Submission of single-individual proportions, "Component: 12.3%" per line.
type ProcessRequest struct {
	Data       string `json:"data"`
	Calculator string `json:"calculator"` // empty for auto detection
}

// Submission of a multi-individual table.
type SamplesRequest struct {
	Data string `json:"data"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ModelInfo struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ComponentCount int      `json:"component_count"`
	Components     []string `json:"components"`
	Regions        []string `json:"regions"`
}

type ModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

func NewModelInfo(m *model.ComponentModel) ModelInfo {
	components := make([]string, 0, len(m.RegionMapping))
	for name := range m.RegionMapping {
		components = append(components, name)
	}
	sort.Strings(components)

	return ModelInfo{
		ID:             m.ID,
		Name:           m.DisplayName,
		ComponentCount: m.ExpectedComponentCount,
		Components:     components,
		Regions:        m.Regions(),
	}
}
