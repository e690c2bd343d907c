package cmd

import (
	"context"
	"fmt"

	"github.com/geekhub/mainframe/mainframe/logger"
	"github.com/spf13/cobra"
)

var confirmReset bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Truncate every application table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmReset {
			return fmt.Errorf("reset deletes all users, cards and stats; pass --yes to continue")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), setupTimeout)
		defer cancel()

		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.ResetAppTables(ctx); err != nil {
			return err
		}
		logger.LogSystem("Application tables reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&confirmReset, "yes", false, "confirm the reset")
	rootCmd.AddCommand(resetCmd)
}
