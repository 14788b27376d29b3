package handler

// DI for all handlers.

import (
	"github.com/yumyai/admixmap/pkg/metrics"
	"github.com/yumyai/admixmap/pkg/model"
)

type AppContext struct {
	Processor *model.Processor
	Metrics   *metrics.Metrics
}

func (app *AppContext) registry() *model.Registry {
	return app.Processor.Registry()
}
