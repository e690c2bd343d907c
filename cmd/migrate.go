package cmd

import (
	"context"

	"github.com/geekhub/mainframe/mainframe/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and sync the card and achievement catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), setupTimeout)
		defer cancel()

		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			return err
		}

		cat, err := loadCatalog(ctx, cfg)
		if err != nil {
			return err
		}
		if err := syncCatalog(ctx, db, cat); err != nil {
			return err
		}

		logger.LogSystem("Migration completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
