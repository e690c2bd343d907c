package stats

import (
	"context"
	"strings"

	"github.com/geekhub/mainframe/internal/domain/errs"
)

type Service interface {
	UpdateStat(ctx context.Context, userID int64, key string, value int64, increment bool) error
	ReadStats(ctx context.Context, userID int64) (map[string]int64, error)
}

type service struct {
	repository Repository
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
	}
}

// UpdateStat sets or increments one counter. The store applies it as a
// single upsert so concurrent increments never overwrite each other.
func (s *service) UpdateStat(ctx context.Context, userID int64, key string, value int64, increment bool) error {
	const op = "stats.update_stat"
	key = strings.TrimSpace(key)
	if key == "" {
		return errs.Validation(op, "stat key is required")
	}

	if err := s.repository.Upsert(ctx, userID, key, value, increment); err != nil {
		return errs.Wrap(op, userID, err)
	}
	return nil
}

func (s *service) ReadStats(ctx context.Context, userID int64) (map[string]int64, error) {
	rows, err := s.repository.GetAll(ctx, userID)
	if err != nil {
		return nil, errs.Wrap("stats.read_stats", userID, err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.StatKey] = row.StatValue
	}
	return out, nil
}
