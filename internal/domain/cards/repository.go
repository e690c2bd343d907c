package cards

import (
	"context"

	"github.com/geekhub/mainframe/mainframe/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// Repository covers the catalog reads and the ownership writes the
// collection engine needs.
type Repository interface {
	GetAll(ctx context.Context) ([]*models.Card, error)
	GetPullable(ctx context.Context, includePremium bool) ([]*models.Card, error)

	ListOwned(ctx context.Context, userID int64) ([]*models.UserCard, error)
	IssueStarter(ctx context.Context, userID, cardID int64) (*models.UserCard, bool, error)
	IssueAsDefault(ctx context.Context, userID, cardID int64) (*models.UserCard, bool, error)
	SetDefault(ctx context.Context, userID, userCardID int64) (*models.UserCard, error)
}
