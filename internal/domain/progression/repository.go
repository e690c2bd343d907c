package progression

import "context"

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	AddExperience(ctx context.Context, userID int64, amount float64) error
}
