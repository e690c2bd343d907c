package profile

import (
	"context"

	"github.com/geekhub/mainframe/mainframe/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByTwitchID(ctx context.Context, twitchID string) (*models.User, error)
	GetTeamNumber(ctx context.Context, userID int64) (int, bool, error)
}
