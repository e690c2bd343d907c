package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/geekhub/mainframe/internal/domain/achievements"
	"github.com/geekhub/mainframe/mainframe"
	"github.com/geekhub/mainframe/mainframe/catalog"
	"github.com/geekhub/mainframe/mainframe/database"
	"github.com/geekhub/mainframe/mainframe/database/repositories"
	"github.com/geekhub/mainframe/mainframe/logger"
)

const setupTimeout = 2 * time.Minute

func openDB(ctx context.Context, cfg *mainframe.Config) (*database.DB, error) {
	start := time.Now()
	db, err := database.New(ctx, database.DBConfig{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Database:     cfg.DB.Database,
		PoolSize:     cfg.DB.PoolSize,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxLifetime:  cfg.DB.MaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	logger.LogSystem("Database connected",
		"database", cfg.DB.Database,
		"took", time.Since(start))
	return db, nil
}

func openSource(ctx context.Context, cfg *mainframe.Config) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case "", "embedded":
		return catalog.EmbeddedSource{}, nil
	case "dir":
		if cfg.Catalog.Dir == "" {
			return nil, fmt.Errorf("catalog source dir needs catalog.dir")
		}
		return catalog.DirSource(cfg.Catalog.Dir), nil
	case "spaces":
		return catalog.NewSpacesSource(ctx,
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Spaces.Root,
		)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

func loadCatalog(ctx context.Context, cfg *mainframe.Config) (*catalog.Catalog, error) {
	src, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	logger.LogSystem("Catalog loaded",
		"source", cfg.Catalog.Source,
		"levels", len(cat.Levels),
		"achievements", len(cat.Achievements),
		"cards", len(cat.Cards))
	return cat, nil
}

// syncCatalog upserts cards by id and achievements by sysname and tier, so it
// can run on every start.
func syncCatalog(ctx context.Context, db *database.DB, cat *catalog.Catalog) error {
	if err := repositories.NewCardRepository(db.BunDB()).SyncCatalog(ctx, cat.Cards); err != nil {
		return fmt.Errorf("failed to sync card catalog: %w", err)
	}
	achievementService := achievements.NewService(repositories.NewAchievementRepository(db.BunDB()))
	if err := achievementService.SyncCatalog(ctx, cat.Achievements); err != nil {
		return fmt.Errorf("failed to sync achievement catalog: %w", err)
	}
	return nil
}
