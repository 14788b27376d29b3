// Package cli holds the admixmap command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/yumyai/admixmap/internal/config"
	"github.com/yumyai/admixmap/logger"
	mydb "github.com/yumyai/admixmap/pkg/db"
	"github.com/yumyai/admixmap/pkg/metrics"
	"github.com/yumyai/admixmap/pkg/model"
	"go.uber.org/zap"
)

const VERSION = "0.1.0"

var (
	configPath string
	cfg        *config.Config
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "admixmap",
		Short:         "Map admixture calculator results onto world regions",
		Version:       VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envErr := config.LoadEnvFile()

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			level, _ := logger.ParseLevel(cfg.LogLevel)
			if err := logger.InitLogger(level); err != nil {
				return err
			}
			if envErr != nil {
				logger.Warn("No .env found, using local environment", zap.Error(envErr))
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (optional)")

	root.AddCommand(
		newServeCommand(),
		newProcessCommand(),
		newModelsCommand(),
		newSeedCommand(),
	)
	return root
}

func Execute() error {
	defer logger.Sync() // Make sure that the buffered is flushed.
	return NewRootCommand().ExecuteContext(context.Background())
}

// loadRegistry reads the sqlite registry when configured, else the built-in table.
func loadRegistry(ctx context.Context) (*model.Registry, error) {
	if cfg.RegistryDB == "" {
		logger.Info("Using built-in model registry")
		return model.NewRegistry(model.DefaultModels()...)
	}

	db, err := mydb.Open(cfg.RegistryDB)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	reg, err := mydb.LoadRegistry(ctx, db)
	if err != nil {
		return nil, err
	}
	logger.Info("Model registry loaded", zap.String("DB_LOC", cfg.RegistryDB), zap.Strings("models", reg.IDs()))
	return reg, nil
}

// buildProcessor wires registry, geography store and options from config.
// m may be nil.
func buildProcessor(ctx context.Context, m *metrics.Metrics) (*model.Processor, *model.GeographyStore, error) {
	reg, err := loadRegistry(ctx)
	if err != nil {
		return nil, nil, err
	}

	geodb, err := mydb.NewGeographyDB(cfg.GeographyDir)
	if err != nil {
		return nil, nil, err
	}
	if missing := geodb.Missing(reg.GeographyFiles()...); len(missing) > 0 {
		logger.Warn("Geography files missing, affected models will fail", zap.Strings("files", missing))
	}

	store, err := model.NewGeographyStore(geodb, cfg.GeographyCacheSize)
	if err != nil {
		return nil, nil, err
	}
	if m != nil {
		store.SetObserver(m)
	}

	proc := model.NewProcessor(reg, store,
		model.WithParseMode(cfg.Mode()),
		model.WithConsistencyOptions(cfg.ConsistencyOptions()),
	)
	return proc, store, nil
}
