package cli

import (
	"github.com/spf13/cobra"
	"github.com/yumyai/admixmap/logger"
	mydb "github.com/yumyai/admixmap/pkg/db"
	"github.com/yumyai/admixmap/pkg/model"
	"go.uber.org/zap"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <db>",
		Short: "Write the built-in calculators into a sqlite registry database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := mydb.Open(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			models := model.DefaultModels()
			if err := mydb.SeedModels(cmd.Context(), db, models); err != nil {
				return err
			}

			logger.Info("Registry seeded", zap.String("DB_LOC", args[0]), zap.Int("models", len(models)))
			return nil
		},
	}
}
