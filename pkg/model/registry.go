package model

import (
	"errors"
	"fmt"
	"strings"
)

// Registry holds the configured component models. It is built once at
// startup and only read afterwards, so it needs no locking.
type Registry struct {
	models []*ComponentModel
	byID   map[string]*ComponentModel
}

// NewRegistry validates the models and freezes them in registration order.
// The models are copied; later changes to the arguments are not observed.
func NewRegistry(models ...ComponentModel) (*Registry, error) {
	reg := &Registry{
		models: make([]*ComponentModel, 0, len(models)),
		byID:   make(map[string]*ComponentModel, len(models)),
	}

	var errs []error
	for i := range models {
		m := copyModel(models[i])
		if err := checkModel(m); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := reg.byID[m.ID]; dup {
			errs = append(errs, fmt.Errorf("model %q registered twice", m.ID))
			continue
		}
		reg.byID[m.ID] = m
		reg.models = append(reg.models, m)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid model configuration: %w", err)
	}
	return reg, nil
}

// DefaultRegistry builds a registry from the built-in model table.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultModels()...)
	if err != nil {
		panic(err)
	}
	return reg
}

func checkModel(m *ComponentModel) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model with empty id")
	}
	if m.ExpectedComponentCount <= 0 {
		return fmt.Errorf("model %q: expected component count must be positive, got %d", m.ID, m.ExpectedComponentCount)
	}
	for name, region := range m.RegionMapping {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(region) == "" {
			return fmt.Errorf("model %q: region mapping %q -> %q has an empty side", m.ID, name, region)
		}
	}
	return nil
}

func copyModel(m ComponentModel) *ComponentModel {
	out := m
	out.RegionMapping = make(map[string]string, len(m.RegionMapping))
	for k, v := range m.RegionMapping {
		out.RegionMapping[k] = v
	}
	if out.DisplayName == "" {
		out.DisplayName = out.ID
	}
	if out.GeographyFile == "" {
		out.GeographyFile = DefaultGeographyFile
	}
	return &out
}

// Get returns the model registered under id.
func (r *Registry) Get(id string) (*ComponentModel, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Models returns the models in registration order.
func (r *Registry) Models() []*ComponentModel {
	out := make([]*ComponentModel, len(r.models))
	copy(out, r.models)
	return out
}

func (r *Registry) IDs() []string {
	ids := make([]string, len(r.models))
	for i, m := range r.models {
		ids[i] = m.ID
	}
	return ids
}

// MatchCount lists every model expecting exactly n components.
func (r *Registry) MatchCount(n int) []string {
	var ids []string
	for _, m := range r.models {
		if m.ExpectedComponentCount == n {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// GeographyFiles lists the distinct geography files referenced by the models.
func (r *Registry) GeographyFiles() []string {
	seen := make(map[string]struct{})
	var files []string
	for _, m := range r.models {
		if _, ok := seen[m.GeographyFile]; ok {
			continue
		}
		seen[m.GeographyFile] = struct{}{}
		files = append(files, m.GeographyFile)
	}
	return files
}
