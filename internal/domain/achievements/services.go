package achievements

import (
	"context"
	"sort"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
)

type Service interface {
	CheckAndAward(ctx context.Context, userID int64, statKey string) ([]string, error)
	ListUnlocked(ctx context.Context, userID int64) ([]Unlocked, error)
	SyncCatalog(ctx context.Context, catalog []*models.Achievement) error
}

type service struct {
	repository Repository
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
	}
}

// CheckAndAward unlocks every achievement the user's current stat value
// qualifies for and returns the ones this call unlocked as "<name> <tier>".
// The unique (user, achievement) constraint settles concurrent calls, so a
// racing caller reports nothing for rows it did not insert.
func (s *service) CheckAndAward(ctx context.Context, userID int64, statKey string) ([]string, error) {
	const op = "achievements.check_and_award"
	if statKey == "" {
		return nil, errs.Validation(op, "stat key is required")
	}

	eligible, err := s.repository.Eligible(ctx, userID, statKey)
	if err != nil {
		return nil, errs.Wrap(op, userID, err)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Name != eligible[j].Name {
			return eligible[i].Name < eligible[j].Name
		}
		return eligible[i].Tier < eligible[j].Tier
	})

	awarded := make([]string, 0, len(eligible))
	for _, a := range eligible {
		created, err := s.repository.Unlock(ctx, userID, a.ID)
		if err != nil {
			return nil, errs.Wrap(op, userID, err)
		}
		if created {
			awarded = append(awarded, a.Label())
		}
	}
	return awarded, nil
}

// ListUnlocked collapses unlocks to the highest tier per sysname, newest
// first.
func (s *service) ListUnlocked(ctx context.Context, userID int64) ([]Unlocked, error) {
	rows, err := s.repository.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, errs.Wrap("achievements.list_unlocked", userID, err)
	}

	best := make(map[string]Unlocked, len(rows))
	for _, row := range rows {
		if row.Achievement == nil {
			continue
		}
		a := row.Achievement
		cur, ok := best[a.Sysname]
		if !ok || a.Tier > cur.Tier {
			best[a.Sysname] = Unlocked{
				Sysname:     a.Sysname,
				Name:        a.Name,
				Description: a.Description,
				Tier:        a.Tier,
				AchievedAt:  row.AchievedAt,
			}
		}
	}

	out := make([]Unlocked, 0, len(best))
	for _, u := range best {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AchievedAt.Equal(out[j].AchievedAt) {
			return out[i].AchievedAt.After(out[j].AchievedAt)
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Tier > out[j].Tier
	})
	return out, nil
}

func (s *service) SyncCatalog(ctx context.Context, catalog []*models.Achievement) error {
	if err := s.repository.SyncCatalog(ctx, catalog); err != nil {
		return errs.Wrap("achievements.sync_catalog", 0, err)
	}
	return nil
}
