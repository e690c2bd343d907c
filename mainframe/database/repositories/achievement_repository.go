package repositories

import (
	"context"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/uptrace/bun"
)

type AchievementRepository interface {
	// Eligible returns catalog rows for statKey whose threshold the user's
	// stored value has reached and which the user has not unlocked yet,
	// ordered by name then tier.
	Eligible(ctx context.Context, userID int64, statKey string) ([]*models.Achievement, error)
	// Unlock records an unlock and reports whether this call created it.
	Unlock(ctx context.Context, userID, achievementID int64) (bool, error)
	// ListUnlocked returns unlock rows with their catalog entry, newest first.
	ListUnlocked(ctx context.Context, userID int64) ([]*models.UserAchievement, error)
	SyncCatalog(ctx context.Context, achievements []*models.Achievement) error
}

type achievementRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewAchievementRepository(db *bun.DB) AchievementRepository {
	return &achievementRepository{BaseRepository: NewBaseRepository(db), db: db}
}

func (r *achievementRepository) Eligible(ctx context.Context, userID int64, statKey string) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	err := r.Run(ctx, "eligible", "achievement", func(ctx context.Context) error {
		unlocked := r.db.NewSelect().
			Model((*models.UserAchievement)(nil)).
			ColumnExpr("1").
			Where("ua.user_id = ?", userID).
			Where("ua.achievement_id = a.id")

		return r.db.NewSelect().
			Model(&achievements).
			Join("JOIN user_stats AS s ON s.stat_key = a.stat_key AND s.user_id = ?", userID).
			Where("a.stat_key = ?", statKey).
			Where("a.threshold <= s.stat_value").
			Where("NOT EXISTS (?)", unlocked).
			OrderExpr("a.name ASC, a.tier ASC").
			Scan(ctx)
	})
	return achievements, err
}

func (r *achievementRepository) Unlock(ctx context.Context, userID, achievementID int64) (bool, error) {
	var created bool
	err := r.Run(ctx, "unlock", "achievement", func(ctx context.Context) error {
		unlock := &models.UserAchievement{
			UserID:        userID,
			AchievementID: achievementID,
			AchievedAt:    now(),
		}
		res, err := r.db.NewInsert().
			Model(unlock).
			On("CONFLICT (user_id, achievement_id) DO NOTHING").
			Returning("NULL").
			Exec(ctx)
		if err != nil {
			return err
		}
		created, err = affected(res)
		return err
	})
	return created, err
}

func (r *achievementRepository) ListUnlocked(ctx context.Context, userID int64) ([]*models.UserAchievement, error) {
	var unlocks []*models.UserAchievement
	err := r.Run(ctx, "list_unlocked", "achievement", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&unlocks).
			Relation("Achievement").
			Where("ua.user_id = ?", userID).
			OrderExpr("ua.achieved_at DESC, ua.id DESC").
			Scan(ctx)
	})
	return unlocks, err
}

// SyncCatalog upserts achievements by (sysname, tier) and fills in their ids.
func (r *achievementRepository) SyncCatalog(ctx context.Context, achievements []*models.Achievement) error {
	if len(achievements) == 0 {
		return nil
	}
	for _, a := range achievements {
		if a.Sysname == "" || a.StatKey == "" {
			return errs.Validation("achievement.sync_catalog", "achievement needs a sysname and a stat key (got %q/%q)", a.Sysname, a.StatKey)
		}
	}
	return r.Transaction(ctx, "sync_catalog", "achievement", func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&achievements).
			On("CONFLICT (sysname, tier) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("description = EXCLUDED.description").
			Set("stat_key = EXCLUDED.stat_key").
			Set("threshold = EXCLUDED.threshold").
			Exec(ctx)
		return err
	})
}
