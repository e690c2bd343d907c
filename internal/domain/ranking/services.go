package ranking

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultLimit = 5
	MaxLimit     = 100

	// ActiveWindow is how recent last_activity must be for a user to count
	// towards report percentiles.
	ActiveWindow = 28 * 24 * time.Hour

	parallelCohortQueries = 3
)

var (
	chaosStats  = []string{models.StatShutdownPC, models.StatBonksRedeem, models.StatGhostCalls, models.StatBeanRedeems}
	helperStats = []string{models.StatHydrateRedeem, models.StatIncomingRaid}
)

type Service interface {
	GetRanking(ctx context.Context, rankType Type, limit int) ([]Entry, error)
	GetFlightReport(ctx context.Context, displayName string) (*FlightReport, error)
}

type service struct {
	repository Repository
	now        func() time.Time
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func NewService(repository Repository, opts ...Option) *service {
	s := &service{
		repository: repository,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetRanking returns up to limit rows of a leaderboard. Zero means the
// default; values above MaxLimit are capped. Ties keep the lower user id
// first.
func (s *service) GetRanking(ctx context.Context, rankType Type, limit int) ([]Entry, error) {
	const op = "ranking.get_ranking"
	if !rankType.Valid() {
		return nil, errs.Validation(op, "unknown ranking type %q", rankType)
	}
	switch {
	case limit < 0:
		return nil, errs.Validation(op, "limit must not be negative")
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	var (
		rows []models.RankEntry
		err  error
	)
	switch rankType {
	case TypeExp:
		rows, err = s.repository.TopByExp(ctx, limit)
	case TypeSpender:
		rows, err = s.repository.TopByStat(ctx, models.StatPointsSpend, limit)
	case TypeRedeems:
		rows, err = s.repository.TopByStat(ctx, models.StatRedeemsCount, limit)
	case TypeCheckinsLast:
		rows, err = s.repository.TopByLastCheckin(ctx, limit)
	case TypeCheckins:
		rows, err = s.repository.TopByStat(ctx, models.StatCheckinCount, limit)
	case TypeAchievements:
		rows, err = s.repository.TopByAchievements(ctx, limit)
	}
	if err != nil {
		return nil, errs.Wrap(op, 0, err)
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = Entry{Rank: i + 1, RankEntry: row}
	}
	return entries, nil
}

// GetFlightReport summarizes one user. Percentiles are measured against
// users active within ActiveWindow, whether or not the subject is one of
// them.
func (s *service) GetFlightReport(ctx context.Context, displayName string) (*FlightReport, error) {
	const op = "ranking.get_flight_report"
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, errs.Validation(op, "user name is required")
	}

	user, err := s.repository.GetByDisplayName(ctx, displayName)
	if errs.Is(err, errs.KindNotFound) {
		return nil, errs.NotFound(op, 0, errs.ErrReportNotFound)
	}
	if err != nil {
		return nil, errs.Wrap(op, 0, err)
	}

	rows, err := s.repository.GetAll(ctx, user.ID)
	if err != nil {
		return nil, errs.Wrap(op, user.ID, err)
	}
	stats := make(map[string]int64, len(rows))
	for _, row := range rows {
		stats[row.StatKey] = row.StatValue
	}

	now := s.now().UTC()
	since := now.Add(-ActiveWindow)

	report := &FlightReport{
		UserID:         user.ID,
		DisplayName:    user.DisplayName,
		Avatar:         user.Avatar,
		Exp:            user.Exp,
		IsPremium:      user.IsPremium,
		SubMonths:      user.SubMonths,
		RegDate:        user.RegDate,
		LastCheckin:    user.LastCheckin,
		LastActivity:   user.LastActivity,
		DaysAsMember:   daysBetween(user.RegDate, now),
		Checkins:       stats[models.StatCheckinCount],
		PointsSpent:    stats[models.StatPointsSpend],
		TotalRedeems:   stats[models.StatRedeemsCount],
		GachaPulls:     stats[models.StatGachaPulls],
		GachaSuccess:   stats[models.StatGachaPullsSuccess],
		FortuneCookies: stats[models.StatFortuneCookie],
		Bonks:          stats[models.StatBonksRedeem],
		SongRequests:   stats[models.StatSongRequests],
		RaidsBrought:   stats[models.StatIncomingRaid],
		Beans:          stats[models.StatBeanRedeems],
		ChaosScore:     sum(stats, chaosStats),
		HelperScore:    sum(stats, helperStats),
	}
	if report.GachaPulls > 0 {
		rate := round1(float64(report.GachaSuccess) * 100 / float64(report.GachaPulls))
		report.GachaSuccessRate = &rate
	}

	var moreExp, moreCheckins, morePoints, moreRedeems int

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(parallelCohortQueries)
	count := func(dst *int, fn func(ctx context.Context) (int, error)) {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			n, err := fn(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	higherStat := func(key string) func(ctx context.Context) (int, error) {
		return func(ctx context.Context) (int, error) {
			return s.repository.CountActiveWithHigherStat(ctx, since, key, stats[key])
		}
	}

	count(&report.TotalActiveUsers, func(ctx context.Context) (int, error) {
		return s.repository.CountActive(ctx, since)
	})
	count(&moreExp, func(ctx context.Context) (int, error) {
		return s.repository.CountActiveWithMoreExp(ctx, since, user.Exp)
	})
	count(&moreCheckins, higherStat(models.StatCheckinCount))
	count(&morePoints, higherStat(models.StatPointsSpend))
	count(&moreRedeems, higherStat(models.StatRedeemsCount))

	if err := g.Wait(); err != nil {
		return nil, errs.Wrap(op, user.ID, err)
	}

	report.ExpRank = moreExp + 1
	report.ExpPercentile = percentile(moreExp, report.TotalActiveUsers)
	report.CheckinsPercentile = percentile(moreCheckins, report.TotalActiveUsers)
	report.PointsPercentile = percentile(morePoints, report.TotalActiveUsers)
	report.RedeemsPercentile = percentile(moreRedeems, report.TotalActiveUsers)
	return report, nil
}

func percentile(ahead, cohort int) float64 {
	if cohort <= 0 {
		return 0
	}
	return round1(float64(ahead) * 100 / float64(cohort))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func sum(stats map[string]int64, keys []string) int64 {
	var total int64
	for _, k := range keys {
		total += stats[k]
	}
	return total
}

// daysBetween counts calendar day boundaries crossed in UTC.
func daysBetween(from, to time.Time) int {
	if from.IsZero() {
		return 0
	}
	start := from.UTC().Truncate(24 * time.Hour)
	end := to.UTC().Truncate(24 * time.Hour)
	days := int(end.Sub(start) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}
