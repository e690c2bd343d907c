package achievements

import (
	"context"

	"github.com/geekhub/mainframe/mainframe/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	Eligible(ctx context.Context, userID int64, statKey string) ([]*models.Achievement, error)
	Unlock(ctx context.Context, userID, achievementID int64) (bool, error)
	ListUnlocked(ctx context.Context, userID int64) ([]*models.UserAchievement, error)
	SyncCatalog(ctx context.Context, achievements []*models.Achievement) error
}
