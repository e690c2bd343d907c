package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/geekhub/mainframe/mainframe"
	"github.com/geekhub/mainframe/mainframe/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"

	configPath string
	cfg        *mainframe.Config
)

var rootCmd = &cobra.Command{
	Use:           "mainframe",
	Short:         "Twitch loyalty engine: progression, cards, gacha and rankings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := mainframe.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		slog.SetDefault(slog.New(logger.NewHandler("Mainframe", cfg.Log.Level)))
		slog.Info("Configuration loaded",
			slog.String("type", "sys"),
			slog.String("path", configPath),
			slog.String("version", version),
			slog.String("commit", commit))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config")
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

// Execute runs the command line and returns the first error.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.LogError("Command failed", err)
	}
	return err
}
