package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/geekhub/mainframe/api"
	"github.com/geekhub/mainframe/internal/domain/achievements"
	"github.com/geekhub/mainframe/internal/domain/actions"
	"github.com/geekhub/mainframe/internal/domain/cards"
	"github.com/geekhub/mainframe/internal/domain/gacha"
	"github.com/geekhub/mainframe/internal/domain/profile"
	"github.com/geekhub/mainframe/internal/domain/progression"
	"github.com/geekhub/mainframe/internal/domain/ranking"
	"github.com/geekhub/mainframe/internal/domain/stats"
	"github.com/geekhub/mainframe/internal/domain/users"
	"github.com/geekhub/mainframe/mainframe/database/repositories"
	"github.com/geekhub/mainframe/mainframe/metrics"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var skipSync bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		setupCtx, cancel := context.WithTimeout(ctx, setupTimeout)
		defer cancel()

		db, err := openDB(setupCtx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(setupCtx); err != nil {
			return err
		}

		cat, err := loadCatalog(setupCtx, cfg)
		if err != nil {
			return err
		}
		if !skipSync {
			if err := syncCatalog(setupCtx, db, cat); err != nil {
				return err
			}
		}

		bunDB := db.BunDB()
		collector := metrics.New()

		cardStore := repositories.NewCardStore(bunDB)
		cardService := cards.NewService(cardStore)
		statService := stats.NewService(repositories.NewStatRepository(bunDB))
		achievementService := achievements.NewService(repositories.NewAchievementRepository(bunDB))
		levels := progression.NewService(repositories.NewUserRepository(bunDB), progression.Config{
			StandardMultiplier: cfg.Progression.StandardMultiplier,
			PremiumMultiplier:  cfg.Progression.PremiumMultiplier,
			GlobalMultiplier:   cfg.Progression.GlobalMultiplier,
		}, cat.Levels)
		profileService := profile.NewService(
			repositories.NewUserStore(bunDB),
			levels,
			cardService,
			statService,
			achievementService,
		)

		actionService := actions.NewService(actions.Deps{
			Users:        users.NewService(repositories.NewUserRepository(bunDB)),
			Cards:        cardService,
			Gacha:        gacha.NewService(cardStore),
			Progression:  levels,
			Stats:        statService,
			Achievements: achievementService,
			Profiles:     profileService,
			Metrics:      collector,
		})
		rankingService := ranking.NewService(repositories.NewReportStore(bunDB))

		app := api.NewApp(api.ServerConfig{
			AllowOrigins: cfg.Web.AllowOrigins,
			Version:      version,
		}, api.NewHandler(actionService, cardService, profileService, rankingService), db, collector)

		addr := net.JoinHostPort(cfg.Web.Host, strconv.Itoa(cfg.Web.Port))
		errCh := make(chan error, 1)
		go func() {
			slog.Info("Starting HTTP server",
				slog.String("type", "sys"),
				slog.String("address", addr))
			errCh <- app.Listen(addr)
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("http server stopped: %w", err)
		case <-ctx.Done():
		}

		slog.Info("Shutting down HTTP server", slog.String("type", "sys"))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("Server shutdown error",
				slog.String("type", "sys"),
				slog.String("error", err.Error()))
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipSync, "skip-sync", false, "do not write the catalog to the store on start")
	rootCmd.AddCommand(serveCmd)
}
