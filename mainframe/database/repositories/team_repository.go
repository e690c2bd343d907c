package repositories

import (
	"context"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/uptrace/bun"
)

type TeamRepository interface {
	// GetTeamNumber returns the user's first team assignment. ok is false
	// when the user is not on a team.
	GetTeamNumber(ctx context.Context, userID int64) (number int, ok bool, err error)
}

type teamRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewTeamRepository(db *bun.DB) TeamRepository {
	return &teamRepository{BaseRepository: NewBaseRepository(db), db: db}
}

func (r *teamRepository) GetTeamNumber(ctx context.Context, userID int64) (int, bool, error) {
	member := new(models.TeamMember)
	err := r.Run(ctx, "get_team_number", "team", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(member).
			Where("user_id = ?", userID).
			OrderExpr("id ASC").
			Limit(1).
			Scan(ctx)
	})
	if errs.Is(err, errs.KindNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return member.TeamNumber, true, nil
}

// UserStore joins user and team lookups for the profile aggregator.
type UserStore struct {
	UserRepository
	TeamRepository
}

func NewUserStore(db *bun.DB) UserStore {
	return UserStore{
		UserRepository: NewUserRepository(db),
		TeamRepository: NewTeamRepository(db),
	}
}
