package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"raja-digital/config"
	"raja-digital/pkg/database"
	applogger "raja-digital/pkg/logger"
)

var flagConfig string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rajactl",
		Short:         "RAJA Digital operator tool",
		Long:          "Database migrations, initial seed data and offline receipt / weekly report rendering.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config.yaml")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newReceiptCmd(),
		newWeeklyCmd(),
	)
	return root
}

// env loaded config, logger and database for commands that need them.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func openEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := database.NewDB(&cfg.Database, logger, cfg.Log.Level == "debug")
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) close() {
	_ = database.Close(e.db)
	_ = e.logger.Sync()
}
