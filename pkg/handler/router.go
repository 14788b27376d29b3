package handler

import (
	"mime"
	"net/http"

	"github.com/yumyai/admixmap/pkg/middle"
)

func NewRouter(app *AppContext, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middle.Route(pattern, h))
	}

	// Error route
	handle("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Main routes
	handle("GET /{$}", app.IndexPage)
	handle("POST /admixture/analysis", app.AnalysisPage)

	// API routes
	handle("POST /admixture/process", app.ProcessHandler)
	handle("POST /admixture/samples", app.SamplesHandler)
	handle("GET /api/v1/health", HealthCheck)
	handle("GET /api/v1/models", app.ModelsHandler)

	if app.Metrics != nil {
		mux.Handle("GET /metrics", middle.Route("GET /metrics", app.Metrics.Handler()))
	}

	if staticDir != "" {
		setupStaticFiles(mux, staticDir)
	}

	return mux
}

func setupStaticFiles(mux *http.ServeMux, dir string) {
	_ = mime.AddExtensionType(".js", "text/javascript")
	_ = mime.AddExtensionType(".css", "text/css")
	fs := http.FileServer(http.Dir(dir))
	mux.Handle("GET /static/", middle.Route("GET /static/", http.StripPrefix("/static/", fs)))
}
