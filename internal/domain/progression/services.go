package progression

import (
	"context"
	"math"
	"sort"

	"github.com/geekhub/mainframe/internal/domain/errs"
)

type Service interface {
	DeriveLevel(exp float64) Standing
	AwardExperience(ctx context.Context, userID int64, isPremium bool, base float64) (float64, error)
	Levels() []Level
}

type service struct {
	repository Repository
	config     Config
	levels     []Level
}

// NewService sorts a copy of levels by threshold; callers may pass the table
// in any order.
func NewService(repository Repository, config Config, levels []Level) *service {
	sorted := make([]Level, len(levels))
	copy(sorted, levels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Exp < sorted[j].Exp
	})

	return &service{
		repository: repository,
		config:     config,
		levels:     sorted,
	}
}

func (s *service) Levels() []Level {
	out := make([]Level, len(s.levels))
	copy(out, s.levels)
	return out
}

func (s *service) DeriveLevel(exp float64) Standing {
	if len(s.levels) == 0 {
		return Standing{}
	}

	current := -1
	for i, l := range s.levels {
		if l.Exp > exp {
			break
		}
		current = i
	}

	// Below the first threshold: first level, progress towards it from zero.
	if current < 0 {
		first := s.levels[0]
		return Standing{
			Level:    first.Level,
			Title:    first.Title,
			Progress: percent(exp, 0, first.Exp),
		}
	}

	cur := s.levels[current]
	standing := Standing{Level: cur.Level, Title: cur.Title, Progress: 100}
	if current+1 < len(s.levels) {
		standing.Progress = percent(exp, cur.Exp, s.levels[current+1].Exp)
	}
	return standing
}

func percent(exp, from, to float64) int {
	if to <= from {
		return 0
	}
	p := math.Floor(100 * (exp - from) / (to - from))
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > 100:
		return 100
	}
	return int(p)
}

// AwardExperience adds the multiplied amount and returns it. The store does
// the addition, so concurrent awards to one user all land.
func (s *service) AwardExperience(ctx context.Context, userID int64, isPremium bool, base float64) (float64, error) {
	const op = "progression.award_experience"
	if base < 0 || math.IsNaN(base) || math.IsInf(base, 0) {
		return 0, errs.Validation(op, "experience base must be a non-negative number, got %v", base)
	}

	multiplier := s.config.StandardMultiplier
	if isPremium {
		multiplier = s.config.PremiumMultiplier
	}
	amount := base * multiplier * s.config.GlobalMultiplier

	if err := s.repository.AddExperience(ctx, userID, amount); err != nil {
		return 0, errs.Wrap(op, userID, err)
	}
	return amount, nil
}
