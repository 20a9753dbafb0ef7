package main

import (
	"github.com/spf13/cobra"

	"raja-digital/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	var rollback int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations (or roll back with --rollback N)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			sqlDB, err := e.db.DB()
			if err != nil {
				return err
			}
			if rollback > 0 {
				return database.RollbackMigrations(sqlDB, rollback, e.logger)
			}
			return database.RunMigrations(sqlDB, e.logger)
		},
	}
	cmd.Flags().IntVar(&rollback, "rollback", 0, "number of migrations to roll back")
	return cmd
}
