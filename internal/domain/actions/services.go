package actions

import (
	"context"
	"time"

	"github.com/geekhub/mainframe/internal/domain/achievements"
	"github.com/geekhub/mainframe/internal/domain/cards"
	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/internal/domain/gacha"
	"github.com/geekhub/mainframe/internal/domain/profile"
	"github.com/geekhub/mainframe/internal/domain/progression"
	"github.com/geekhub/mainframe/internal/domain/stats"
	"github.com/geekhub/mainframe/internal/domain/users"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/geekhub/mainframe/mainframe/logger"
	"github.com/geekhub/mainframe/mainframe/metrics"
)

const checkInExp = 1

// Deps are the engines the inbound actions are composed from.
type Deps struct {
	Users        users.Service
	Cards        cards.Service
	Gacha        gacha.Service
	Progression  progression.Service
	Stats        stats.Service
	Achievements achievements.Service
	Profiles     profile.Service
	Metrics      *metrics.Collector
}

type Service interface {
	Login(ctx context.Context, caller Caller) (*profile.Profile, error)
	CheckIn(ctx context.Context, caller Caller, checkinCount int64) (*CheckInResult, error)
	Gacha(ctx context.Context, caller Caller) (*GachaResult, error)
	ChangeCard(ctx context.Context, caller Caller, sysname string) (cards.Card, error)
	GetCards(ctx context.Context, caller Caller) (cards.Collection, error)
	SendAction(ctx context.Context, req SendActionRequest) ([]string, error)
}

type service struct {
	users        users.Service
	cards        cards.Service
	gacha        gacha.Service
	progression  progression.Service
	stats        stats.Service
	achievements achievements.Service
	profiles     profile.Service
	metrics      *metrics.Collector
}

func NewService(deps Deps) *service {
	return &service{
		users:        deps.Users,
		cards:        deps.Cards,
		gacha:        deps.Gacha,
		progression:  deps.Progression,
		stats:        deps.Stats,
		achievements: deps.Achievements,
		profiles:     deps.Profiles,
		metrics:      deps.Metrics,
	}
}

func (s *service) observe(name string, start time.Time, err error) {
	logger.LogCommand(name, time.Since(start), err)
	s.metrics.ObserveAction(name, err)
}

// Login refreshes the caller's identity without touching their premium
// flag, makes sure they hold a card and returns their full profile.
func (s *service) Login(ctx context.Context, caller Caller) (p *profile.Profile, err error) {
	defer func(start time.Time) { s.observe("login", start, err) }(time.Now())

	user, err := s.users.ResolveOrCreate(ctx, caller.identity(nil))
	if err != nil {
		return nil, err
	}
	if _, err = s.cards.Load(ctx, user.ID, user.IsPremium); err != nil {
		return nil, err
	}
	if err = s.users.Touch(ctx, user.ID, models.LastLogin); err != nil {
		return nil, err
	}

	user, err = s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.profiles.Build(ctx, user)
}

// CheckIn records a stream check-in: one experience point, the caller's
// check-in count and any achievements it unlocks.
func (s *service) CheckIn(ctx context.Context, caller Caller, checkinCount int64) (res *CheckInResult, err error) {
	defer func(start time.Time) { s.observe("check_in", start, err) }(time.Now())

	if checkinCount < 0 {
		return nil, errs.Validation("actions.check_in", "checkin count must not be negative")
	}

	premium := caller.IsPremium()
	user, err := s.users.ResolveOrCreate(ctx, caller.identity(&premium))
	if err != nil {
		return nil, err
	}
	col, err := s.cards.Load(ctx, user.ID, premium)
	if err != nil {
		return nil, err
	}

	awarded, err := s.progression.AwardExperience(ctx, user.ID, premium, checkInExp)
	if err != nil {
		return nil, err
	}
	if err = s.stats.UpdateStat(ctx, user.ID, models.StatCheckinCount, checkinCount, false); err != nil {
		return nil, err
	}
	if err = s.users.Touch(ctx, user.ID, models.LastCheckin); err != nil {
		return nil, err
	}
	unlocked, err := s.achievements.CheckAndAward(ctx, user.ID, models.StatCheckinCount)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveAchievements(len(unlocked))

	return &CheckInResult{
		User:         user,
		Level:        s.progression.DeriveLevel(user.Exp + awarded).Level,
		IsPremium:    premium,
		DefaultCard:  col.Default,
		Achievements: unlocked,
	}, nil
}

// Gacha draws one card for the caller and resolves it against their
// collection. Every draw counts as a pull; only issued cards count as a
// success.
func (s *service) Gacha(ctx context.Context, caller Caller) (res *GachaResult, err error) {
	defer func(start time.Time) { s.observe("gacha", start, err) }(time.Now())

	premium := caller.IsPremium()
	user, err := s.users.ResolveOrCreate(ctx, caller.identity(&premium))
	if err != nil {
		return nil, err
	}
	col, err := s.cards.Load(ctx, user.ID, premium)
	if err != nil {
		return nil, err
	}

	card, err := s.gacha.Pull(ctx, premium)
	if err != nil {
		return nil, err
	}
	outcome, err := s.gacha.ResolvePull(ctx, user.ID, card)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePull(outcome.Kind.String())

	res = &GachaResult{User: user, Outcome: outcome, DefaultCard: col.Default}
	if err = s.stats.UpdateStat(ctx, user.ID, models.StatGachaPulls, 1, true); err != nil {
		return nil, err
	}
	if !outcome.IsNew() {
		return res, nil
	}

	if err = s.stats.UpdateStat(ctx, user.ID, models.StatGachaPullsSuccess, 1, true); err != nil {
		return nil, err
	}
	res.Achievements, err = s.achievements.CheckAndAward(ctx, user.ID, models.StatGachaPullsSuccess)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveAchievements(len(res.Achievements))
	return res, nil
}

func (s *service) ChangeCard(ctx context.Context, caller Caller, sysname string) (card cards.Card, err error) {
	defer func(start time.Time) { s.observe("change_card", start, err) }(time.Now())

	user, err := s.users.ResolveOrCreate(ctx, caller.identity(nil))
	if err != nil {
		return cards.Card{}, err
	}
	if _, err = s.cards.Load(ctx, user.ID, user.IsPremium); err != nil {
		return cards.Card{}, err
	}
	return s.cards.SetActiveCardByName(ctx, user.ID, sysname)
}

func (s *service) GetCards(ctx context.Context, caller Caller) (col cards.Collection, err error) {
	defer func(start time.Time) { s.observe("get_cards", start, err) }(time.Now())

	user, err := s.users.ResolveOrCreate(ctx, caller.identity(nil))
	if err != nil {
		return cards.Collection{}, err
	}
	return s.cards.Load(ctx, user.ID, user.IsPremium)
}

// SendAction applies an experience award and a list of stat writes. Each
// step commits on its own; the first failure stops the remaining steps and
// leaves the earlier ones in place. sub_months is stored on the user rather
// than as a stat.
func (s *service) SendAction(ctx context.Context, req SendActionRequest) (unlocked []string, err error) {
	defer func(start time.Time) { s.observe("send_action", start, err) }(time.Now())

	user, err := s.users.ResolveOrCreate(ctx, req.identity(nil))
	if err != nil {
		return nil, err
	}

	if req.Exp != 0 {
		if _, err = s.progression.AwardExperience(ctx, user.ID, req.IsPremium(), req.Exp); err != nil {
			return nil, err
		}
	}

	unlocked = []string{}
	for _, change := range req.Stats {
		if change.Key == models.StatSubMonths {
			if err = s.users.SetSubMonths(ctx, user.ID, int(change.Value)); err != nil {
				return nil, err
			}
			continue
		}

		if err = s.stats.UpdateStat(ctx, user.ID, change.Key, change.Value, change.Increment); err != nil {
			return nil, err
		}
		var awarded []string
		awarded, err = s.achievements.CheckAndAward(ctx, user.ID, change.Key)
		if err != nil {
			return nil, err
		}
		unlocked = append(unlocked, awarded...)
	}
	s.metrics.ObserveAchievements(len(unlocked))
	return unlocked, nil
}
