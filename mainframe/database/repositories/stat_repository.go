package repositories

import (
	"context"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/uptrace/bun"
)

type StatRepository interface {
	// Upsert writes a stat in one statement. With increment the value is
	// added to the stored one, otherwise it replaces it. The user's
	// last_activity is refreshed in the same transaction.
	Upsert(ctx context.Context, userID int64, key string, value int64, increment bool) error
	GetAll(ctx context.Context, userID int64) ([]*models.Stat, error)
}

type statRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewStatRepository(db *bun.DB) StatRepository {
	return &statRepository{BaseRepository: NewBaseRepository(db), db: db}
}

func (r *statRepository) Upsert(ctx context.Context, userID int64, key string, value int64, increment bool) error {
	return r.Transaction(ctx, "upsert", "stat", func(ctx context.Context, tx bun.Tx) error {
		ts := now()
		res, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("last_activity = ?", ts).
			Set("updated_at = ?", ts).
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if err := requireAffected(res, "stat.upsert", userID, errs.ErrUserNotFound); err != nil {
			return err
		}

		stat := &models.Stat{
			UserID:    userID,
			StatKey:   key,
			StatValue: value,
			UpdatedAt: ts,
		}
		q := tx.NewInsert().
			Model(stat).
			On("CONFLICT (user_id, stat_key) DO UPDATE").
			Set("updated_at = EXCLUDED.updated_at")
		if increment {
			q = q.Set("stat_value = ?TableAlias.stat_value + EXCLUDED.stat_value")
		} else {
			q = q.Set("stat_value = EXCLUDED.stat_value")
		}
		_, err = q.Exec(ctx)
		return err
	})
}

func (r *statRepository) GetAll(ctx context.Context, userID int64) ([]*models.Stat, error) {
	var stats []*models.Stat
	err := r.Run(ctx, "get_all", "stat", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&stats).
			Where("user_id = ?", userID).
			OrderExpr("stat_key ASC").
			Scan(ctx)
	})
	return stats, err
}
