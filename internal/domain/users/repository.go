package users

import (
	"context"

	"github.com/geekhub/mainframe/mainframe/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	ResolveOrCreate(ctx context.Context, identity models.Identity) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByTwitchID(ctx context.Context, twitchID string) (*models.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*models.User, error)
	Touch(ctx context.Context, userID int64, field models.ActivityField) error
	SetSubMonths(ctx context.Context, userID int64, months int) error
}
