package gacha

import (
	"context"

	"github.com/geekhub/mainframe/mainframe/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	GetPullable(ctx context.Context, includePremium bool) ([]*models.Card, error)
	Issue(ctx context.Context, userID, cardID int64) (bool, error)
}
