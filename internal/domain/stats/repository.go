package stats

import (
	"context"

	"github.com/geekhub/mainframe/mainframe/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	Upsert(ctx context.Context, userID int64, key string, value int64, increment bool) error
	GetAll(ctx context.Context, userID int64) ([]*models.Stat, error)
}
