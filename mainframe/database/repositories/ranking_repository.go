package repositories

import (
	"context"
	"time"

	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/uptrace/bun"
)

// RankingRepository serves leaderboards and the cohort counts behind flight
// report percentiles. All reads are lock free.
type RankingRepository interface {
	TopByExp(ctx context.Context, limit int) ([]models.RankEntry, error)
	TopByStat(ctx context.Context, statKey string, limit int) ([]models.RankEntry, error)
	TopByLastCheckin(ctx context.Context, limit int) ([]models.RankEntry, error)
	TopByAchievements(ctx context.Context, limit int) ([]models.RankEntry, error)

	// CountActive counts users whose last_activity is at or after since.
	CountActive(ctx context.Context, since time.Time) (int, error)
	// CountActiveWithMoreExp counts active users with strictly more exp.
	CountActiveWithMoreExp(ctx context.Context, since time.Time, exp float64) (int, error)
	// CountActiveWithHigherStat counts active users whose value for statKey
	// is strictly greater than value.
	CountActiveWithHigherStat(ctx context.Context, since time.Time, statKey string, value int64) (int, error)
}

type rankingRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewRankingRepository(db *bun.DB) RankingRepository {
	return &rankingRepository{BaseRepository: NewBaseRepository(db), db: db}
}

// userColumns selects the user half of a RankEntry. Every board casts its
// score to DOUBLE PRECISION so integer counters scan into RankEntry.Score.
func (r *rankingRepository) userColumns(q *bun.SelectQuery) *bun.SelectQuery {
	return q.ColumnExpr("u.id AS user_id").
		ColumnExpr("u.display_name").
		ColumnExpr("u.avatar").
		ColumnExpr("u.last_checkin")
}

func (r *rankingRepository) TopByExp(ctx context.Context, limit int) ([]models.RankEntry, error) {
	var entries []models.RankEntry
	err := r.Run(ctx, "top_by_exp", "ranking", func(ctx context.Context) error {
		q := r.db.NewSelect().Model((*models.User)(nil))
		return r.userColumns(q).
			ColumnExpr("u.exp AS score").
			OrderExpr("u.exp DESC, u.id ASC").
			Limit(limit).
			Scan(ctx, &entries)
	})
	return entries, err
}

func (r *rankingRepository) TopByStat(ctx context.Context, statKey string, limit int) ([]models.RankEntry, error) {
	var entries []models.RankEntry
	err := r.Run(ctx, "top_by_stat", "ranking", func(ctx context.Context) error {
		q := r.db.NewSelect().Model((*models.User)(nil))
		return r.userColumns(q).
			ColumnExpr("CAST(s.stat_value AS DOUBLE PRECISION) AS score").
			Join("JOIN user_stats AS s ON s.user_id = u.id").
			Where("s.stat_key = ?", statKey).
			OrderExpr("s.stat_value DESC, u.id ASC").
			Limit(limit).
			Scan(ctx, &entries)
	})
	return entries, err
}

func (r *rankingRepository) TopByLastCheckin(ctx context.Context, limit int) ([]models.RankEntry, error) {
	var entries []models.RankEntry
	err := r.Run(ctx, "top_by_last_checkin", "ranking", func(ctx context.Context) error {
		q := r.db.NewSelect().Model((*models.User)(nil))
		return r.userColumns(q).
			ColumnExpr("CAST(0 AS DOUBLE PRECISION) AS score").
			Where("u.last_checkin IS NOT NULL").
			OrderExpr("u.last_checkin DESC, u.id ASC").
			Limit(limit).
			Scan(ctx, &entries)
	})
	return entries, err
}

func (r *rankingRepository) TopByAchievements(ctx context.Context, limit int) ([]models.RankEntry, error) {
	var entries []models.RankEntry
	err := r.Run(ctx, "top_by_achievements", "ranking", func(ctx context.Context) error {
		q := r.db.NewSelect().Model((*models.User)(nil))
		return r.userColumns(q).
			ColumnExpr("CAST(COUNT(ua.id) AS DOUBLE PRECISION) AS score").
			Join("JOIN user_achievements AS ua ON ua.user_id = u.id").
			GroupExpr("u.id, u.display_name, u.avatar, u.last_checkin").
			OrderExpr("COUNT(ua.id) DESC, u.id ASC").
			Limit(limit).
			Scan(ctx, &entries)
	})
	return entries, err
}

func (r *rankingRepository) CountActive(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.Run(ctx, "count_active", "ranking", func(ctx context.Context) error {
		var err error
		n, err = r.db.NewSelect().
			Model((*models.User)(nil)).
			Where("u.last_activity >= ?", since).
			Count(ctx)
		return err
	})
	return n, err
}

func (r *rankingRepository) CountActiveWithMoreExp(ctx context.Context, since time.Time, exp float64) (int, error) {
	var n int
	err := r.Run(ctx, "count_active_more_exp", "ranking", func(ctx context.Context) error {
		var err error
		n, err = r.db.NewSelect().
			Model((*models.User)(nil)).
			Where("u.last_activity >= ?", since).
			Where("u.exp > ?", exp).
			Count(ctx)
		return err
	})
	return n, err
}

func (r *rankingRepository) CountActiveWithHigherStat(ctx context.Context, since time.Time, statKey string, value int64) (int, error) {
	var n int
	err := r.Run(ctx, "count_active_higher_stat", "ranking", func(ctx context.Context) error {
		var err error
		n, err = r.db.NewSelect().
			Model((*models.User)(nil)).
			Join("JOIN user_stats AS s ON s.user_id = u.id").
			Where("u.last_activity >= ?", since).
			Where("s.stat_key = ?", statKey).
			Where("s.stat_value > ?", value).
			Count(ctx)
		return err
	})
	return n, err
}

// ReportStore backs the ranking engine: leaderboards plus the user and stat
// reads a flight report needs.
type ReportStore struct {
	RankingRepository
	UserRepository
	StatRepository
}

func NewReportStore(db *bun.DB) ReportStore {
	return ReportStore{
		RankingRepository: NewRankingRepository(db),
		UserRepository:    NewUserRepository(db),
		StatRepository:    NewStatRepository(db),
	}
}
