package cli

import (
	"net/http"

	"github.com/spf13/cobra"
	"github.com/yumyai/admixmap/logger"
	"github.com/yumyai/admixmap/pkg/handler"
	"github.com/yumyai/admixmap/pkg/metrics"
	"github.com/yumyai/admixmap/pkg/middle"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	var preload bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info("Start:", zap.String("Version", VERSION))

			m := metrics.New()
			proc, store, err := buildProcessor(cmd.Context(), m)
			if err != nil {
				return err
			}

			if preload {
				if err := store.Preload(proc.Registry().GeographyFiles()...); err != nil {
					logger.Warn("Geography preload failed, will retry on demand", zap.Error(err))
				}
			}

			app := &handler.AppContext{Processor: proc, Metrics: m}
			mux := handler.NewRouter(app, cfg.StaticDir)

			base := logger.L()
			h := middle.Chain(mux,
				middle.RequestIDMiddleware(base),
				middle.LoggingMiddleware(base),
				middle.MetricsMiddleware(m),
			)

			logger.Info("Server starting on", zap.String("addr", cfg.ListenAddr))
			if err := http.ListenAndServe(cfg.ListenAddr, h); err != nil {
				logger.Error("Error starting server:", zap.String("error message", err.Error()))
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&preload, "preload", true, "load every geography file at startup")
	return cmd
}
