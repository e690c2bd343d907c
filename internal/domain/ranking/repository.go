package ranking

import (
	"context"
	"time"

	"github.com/geekhub/mainframe/mainframe/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	TopByExp(ctx context.Context, limit int) ([]models.RankEntry, error)
	TopByStat(ctx context.Context, statKey string, limit int) ([]models.RankEntry, error)
	TopByLastCheckin(ctx context.Context, limit int) ([]models.RankEntry, error)
	TopByAchievements(ctx context.Context, limit int) ([]models.RankEntry, error)

	CountActive(ctx context.Context, since time.Time) (int, error)
	CountActiveWithMoreExp(ctx context.Context, since time.Time, exp float64) (int, error)
	CountActiveWithHigherStat(ctx context.Context, since time.Time, statKey string, value int64) (int, error)

	GetByDisplayName(ctx context.Context, displayName string) (*models.User, error)
	GetAll(ctx context.Context, userID int64) ([]*models.Stat, error)
}
