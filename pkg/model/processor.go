package model

import (
	"context"
	"sort"
	"strings"

	"github.com/yumyai/admixmap/logger"
	"go.uber.org/zap"
)

// TemplateProvider hands out private copies of base geographies.
type TemplateProvider interface {
	Template(name string) (*FeatureCollection, error)
}

// Processor runs the whole admixture pipeline for one submission.
// It holds only read-only collaborators and is safe for concurrent use.
type Processor struct {
	registry  *Registry
	parser    *Parser
	geography TemplateProvider
	opts      ConsistencyOptions
}

type ProcessorOption func(*Processor)

func WithParseMode(mode ParseMode) ProcessorOption {
	return func(p *Processor) { p.parser.Mode = mode }
}

func WithConsistencyOptions(opts ConsistencyOptions) ProcessorOption {
	return func(p *Processor) { p.opts = opts }
}

func NewProcessor(reg *Registry, geography TemplateProvider, options ...ProcessorOption) *Processor {
	p := &Processor{
		registry:  reg,
		parser:    NewParser(reg, ParseLenient),
		geography: geography,
		opts:      DefaultConsistencyOptions(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *Processor) Registry() *Registry {
	return p.registry
}

// Process validates, parses and maps raw text. selected, when non-empty,
// names the calculator and skips detection. Failures never carry a
// partial result.
func (p *Processor) Process(ctx context.Context, raw string, selected string) (*ProcessingResult, error) {
	if !ValidateFormat(raw) {
		logger.Info("Rejected submission", zap.String("stage", "format"))
		return nil, newError(KindFormat, "Invalid data format. Use one 'Component: Percentage%%' entry per line.")
	}

	model, err := p.selectModel(raw, selected)
	if err != nil {
		logger.Info("Rejected submission", zap.String("stage", "model"), zap.Error(err))
		return nil, err
	}
	logger.Debug("Model selected", zap.String("model", model.ID), zap.Bool("explicit", selected != ""))

	parsed, err := p.parser.Parse(raw)
	if err != nil {
		logger.Info("Rejected submission", zap.String("stage", "parse"), zap.Error(err))
		return nil, err
	}

	if err := ValidateConsistency(parsed, model, p.opts); err != nil {
		logger.Info("Rejected submission", zap.String("stage", "consistency"), zap.String("model", model.ID), zap.Error(err))
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Template hands out a private copy, filled in place below.
	geojson, err := p.geography.Template(model.GeographyFile)
	if err != nil {
		return nil, err
	}

	Aggregate(parsed, model, geojson)
	Colorize(geojson)

	components := parsed.Components()
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Proportion > components[j].Proportion
	})

	return &ProcessingResult{
		ModelID:    model.ID,
		ModelName:  model.DisplayName,
		GeoJSON:    geojson,
		Components: components,
		Statistics: Summarize(components, model, geojson),
		Legend:     Legend(components),
	}, nil
}

func (p *Processor) selectModel(raw, selected string) (*ComponentModel, error) {
	selected = strings.TrimSpace(selected)
	if selected != "" {
		m, ok := p.registry.Get(selected)
		if !ok {
			return nil, newError(KindUnknownCalculator,
				"Unknown calculator '%s'. Available: %s.", selected, strings.Join(p.registry.IDs(), ", "))
		}
		return m, nil
	}

	id, err := p.parser.DetectModel(raw)
	if err != nil {
		return nil, err
	}
	m, _ := p.registry.Get(id)
	return m, nil
}
