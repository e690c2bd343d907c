package profile

import (
	"context"
	"strings"

	"github.com/geekhub/mainframe/internal/domain/achievements"
	"github.com/geekhub/mainframe/internal/domain/cards"
	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/internal/domain/progression"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"golang.org/x/sync/errgroup"
)

type (
	LevelDeriver interface {
		DeriveLevel(exp float64) progression.Standing
	}
	CardLister interface {
		ListCards(ctx context.Context, userID int64) (cards.Collection, error)
	}
	StatReader interface {
		ReadStats(ctx context.Context, userID int64) (map[string]int64, error)
	}
	AchievementLister interface {
		ListUnlocked(ctx context.Context, userID int64) ([]achievements.Unlocked, error)
	}
)

type Service interface {
	Build(ctx context.Context, user *models.User) (*Profile, error)
	BuildByID(ctx context.Context, userID int64) (*Profile, error)
	BuildByTwitchID(ctx context.Context, twitchID string) (*Profile, error)
}

type service struct {
	repository   Repository
	levels       LevelDeriver
	cards        CardLister
	stats        StatReader
	achievements AchievementLister
}

func NewService(repository Repository, levels LevelDeriver, cards CardLister, stats StatReader, achievements AchievementLister) *service {
	return &service{
		repository:   repository,
		levels:       levels,
		cards:        cards,
		stats:        stats,
		achievements: achievements,
	}
}

// Build reads the user's cards, stats, achievements and team concurrently.
// It never writes. An empty collection or a missing team is a valid
// snapshot; a store failure in any read fails the build.
func (s *service) Build(ctx context.Context, user *models.User) (*Profile, error) {
	const op = "profile.build"
	if user == nil {
		return nil, errs.Validation(op, "user is required")
	}

	standing := s.levels.DeriveLevel(user.Exp)
	p := &Profile{
		User:     user,
		Level:    standing.Level,
		Title:    standing.Title,
		Progress: standing.Progress,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		col, err := s.cards.ListCards(gctx, user.ID)
		if err != nil {
			return err
		}
		p.Cards, p.DefaultCard = col.Cards, col.Default
		return nil
	})
	g.Go(func() error {
		stats, err := s.stats.ReadStats(gctx, user.ID)
		if err != nil {
			return err
		}
		p.Stats = stats
		return nil
	})
	g.Go(func() error {
		unlocked, err := s.achievements.ListUnlocked(gctx, user.ID)
		if err != nil {
			return err
		}
		p.Achievements = unlocked
		return nil
	})
	g.Go(func() error {
		number, ok, err := s.repository.GetTeamNumber(gctx, user.ID)
		if err != nil {
			return err
		}
		if name := models.TeamName(number); ok && name != "" {
			p.Team = &name
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Wrap(op, user.ID, err)
	}

	if p.Cards == nil {
		p.Cards = []cards.Card{}
	}
	if p.Stats == nil {
		p.Stats = map[string]int64{}
	}
	if p.Achievements == nil {
		p.Achievements = []achievements.Unlocked{}
	}
	return p, nil
}

func (s *service) BuildByID(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		return nil, errs.Wrap("profile.build_by_id", userID, err)
	}
	return s.Build(ctx, user)
}

func (s *service) BuildByTwitchID(ctx context.Context, twitchID string) (*Profile, error) {
	const op = "profile.build_by_twitch_id"
	twitchID = strings.TrimSpace(twitchID)
	if twitchID == "" {
		return nil, errs.Validation(op, "twitch id is required")
	}

	user, err := s.repository.GetByTwitchID(ctx, twitchID)
	if err != nil {
		return nil, errs.Wrap(op, 0, err)
	}
	return s.Build(ctx, user)
}
