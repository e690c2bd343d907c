package actions

import (
	"context"
	"testing"

	"github.com/geekhub/mainframe/internal/domain/achievements"
	"github.com/geekhub/mainframe/internal/domain/cards"
	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/internal/domain/gacha"
	"github.com/geekhub/mainframe/internal/domain/profile"
	"github.com/geekhub/mainframe/internal/domain/progression"
	"github.com/geekhub/mainframe/internal/domain/stats"
	"github.com/geekhub/mainframe/internal/domain/users"
	"github.com/geekhub/mainframe/mainframe/database/dbtest"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/geekhub/mainframe/mainframe/database/repositories"
	"github.com/geekhub/mainframe/mainframe/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

const sentinelRoll = 15

type harness struct {
	db      *bun.DB
	actions *service
	stats   stats.Service
	// roll is the next gacha draw in [0, 20): below 10 is GX-01, the rest
	// is the try again entry.
	roll int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	db := dbtest.New(t)
	dbtest.SeedCards(t, db,
		&models.Card{ID: models.StandardStarterCardID, CatalogNo: "ST-01", Name: "Boarding Pass", Sysname: "boarding-pass"},
		&models.Card{ID: models.PremiumStarterCardID, CatalogNo: "SP-00", Name: "First Class", Sysname: "first-class", IsPremium: true},
		&models.Card{ID: 3, CatalogNo: "GX-01", Name: "Golden Jet", Sysname: "GX-01", Weight: 10},
		&models.Card{ID: 6, CatalogNo: "XX-00", Name: "Try Again", Sysname: models.SentinelSysname, Weight: 10},
	)

	h := &harness{db: db}
	cardStore := repositories.NewCardStore(db)
	cardService := cards.NewService(cardStore)
	statService := stats.NewService(repositories.NewStatRepository(db))
	achievementService := achievements.NewService(repositories.NewAchievementRepository(db))
	levels := progression.NewService(repositories.NewUserRepository(db), progression.DefaultConfig(), []progression.Level{
		{Level: 1, Title: "Passenger", Exp: 0},
		{Level: 2, Title: "Frequent Flyer", Exp: 5},
	})
	require.NoError(t, achievementService.SyncCatalog(ctx, []*models.Achievement{
		{Sysname: "regular", Name: "Regular", Tier: 1, StatKey: models.StatCheckinCount, Threshold: 1},
		{Sysname: "collector", Name: "Collector", Tier: 1, StatKey: models.StatGachaPullsSuccess, Threshold: 1},
		{Sysname: "big-spender", Name: "Big Spender", Tier: 1, StatKey: models.StatPointsSpend, Threshold: 100},
	}))

	h.stats = statService
	h.actions = NewService(Deps{
		Users:        users.NewService(repositories.NewUserRepository(db)),
		Cards:        cardService,
		Gacha:        gacha.NewService(cardStore, gacha.WithRand(func(n int) int { return h.roll % n })),
		Progression:  levels,
		Stats:        statService,
		Achievements: achievementService,
		Profiles: profile.NewService(
			repositories.NewUserStore(db),
			levels,
			cardService,
			statService,
			achievementService,
		),
		Metrics: metrics.New(),
	})
	return h
}

func (h *harness) stat(t *testing.T, userID int64, key string) int64 {
	t.Helper()
	values, err := h.stats.ReadStats(context.Background(), userID)
	require.NoError(t, err)
	return values[key]
}

func defaultCount(t *testing.T, db *bun.DB, userID int64) int {
	t.Helper()
	n, err := db.NewSelect().Model((*models.UserCard)(nil)).
		Where("user_id = ?", userID).
		Where("is_default = ?", true).
		Count(context.Background())
	require.NoError(t, err)
	return n
}

var viewer = Caller{TwitchID: "100", DisplayName: "viewer", Avatar: "v.png"}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	p, err := h.actions.Login(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, "viewer", p.DisplayName)
	assert.Equal(t, 1, p.Level)
	require.Len(t, p.Cards, 1)
	require.NotNil(t, p.DefaultCard)
	assert.Equal(t, "boarding-pass", p.DefaultCard.Sysname)
	assert.False(t, p.LastLogin.IsZero())
	assert.Nil(t, p.Team)

	_, err = h.actions.Login(context.Background(), Caller{DisplayName: "nobody"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	premium := Caller{TwitchID: "200", DisplayName: "vip", Roles: []string{"VIP"}}

	res, err := h.actions.CheckIn(ctx, premium, 1)
	require.NoError(t, err)
	assert.True(t, res.IsPremium)
	require.NotNil(t, res.DefaultCard)
	assert.Equal(t, "first-class", res.DefaultCard.Sysname)
	assert.Equal(t, []string{"Regular 1"}, res.Achievements)
	assert.Equal(t, int64(1), h.stat(t, res.User.ID, models.StatCheckinCount))

	again, err := h.actions.CheckIn(ctx, premium, 1)
	require.NoError(t, err)
	assert.Empty(t, again.Achievements)

	user := new(models.User)
	require.NoError(t, h.db.NewSelect().Model(user).Where("id = ?", res.User.ID).Scan(ctx))
	assert.InDelta(t, 2*1.15, user.Exp, 1e-9)
	assert.True(t, user.IsPremium)
	assert.False(t, user.LastCheckin.IsZero())
	assert.Equal(t, 1, defaultCount(t, h.db, user.ID))

	_, err = h.actions.CheckIn(ctx, premium, -1)
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestGacha(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.roll = 0
	first, err := h.actions.Gacha(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, gacha.Issued, first.Outcome.Kind)
	assert.Equal(t, "GX-01", first.Outcome.Card.Sysname)
	assert.Equal(t, []string{"Collector 1"}, first.Achievements)
	require.NotNil(t, first.DefaultCard)
	assert.Equal(t, "boarding-pass", first.DefaultCard.Sysname, "a pull keeps the active card")

	second, err := h.actions.Gacha(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, gacha.Duplicate, second.Outcome.Kind)
	assert.Empty(t, second.Achievements)

	h.roll = sentinelRoll
	third, err := h.actions.Gacha(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, gacha.Sentinel, third.Outcome.Kind)

	userID := first.User.ID
	assert.Equal(t, int64(3), h.stat(t, userID, models.StatGachaPulls))
	assert.Equal(t, int64(1), h.stat(t, userID, models.StatGachaPullsSuccess))

	col, err := h.actions.GetCards(ctx, viewer)
	require.NoError(t, err)
	assert.Len(t, col.Cards, 2)
	assert.Equal(t, 1, defaultCount(t, h.db, userID))
}

func TestChangeCard(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.roll = 0
	_, err := h.actions.Gacha(ctx, viewer)
	require.NoError(t, err)

	card, err := h.actions.ChangeCard(ctx, viewer, "gx-01")
	require.NoError(t, err)
	assert.Equal(t, "GX-01", card.Sysname)
	assert.True(t, card.IsDefault)

	_, err = h.actions.ChangeCard(ctx, viewer, "GX-01")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindConflict))

	_, err = h.actions.ChangeCard(ctx, viewer, "boarding")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindNotFound))
	var notOwned *cards.NotOwnedError
	require.ErrorAs(t, err, &notOwned)
	assert.Contains(t, notOwned.Suggestions, "boarding-pass")

	col, err := h.actions.GetCards(ctx, viewer)
	require.NoError(t, err)
	require.NotNil(t, col.Default)
	assert.Equal(t, "GX-01", col.Default.Sysname)
}

func TestSendAction(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	unlocked, err := h.actions.SendAction(ctx, SendActionRequest{
		Caller: viewer,
		Exp:    10,
		Stats: []StatChange{
			{Key: models.StatSubMonths, Value: 4},
			{Key: models.StatPointsSpend, Value: 60, Increment: true},
			{Key: models.StatPointsSpend, Value: 60, Increment: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Big Spender 1"}, unlocked)

	user := new(models.User)
	require.NoError(t, h.db.NewSelect().Model(user).Where("twitch_id = ?", viewer.TwitchID).Scan(ctx))
	assert.Equal(t, 4, user.SubMonths)
	assert.InDelta(t, 10.0, user.Exp, 1e-9)
	assert.Equal(t, int64(120), h.stat(t, user.ID, models.StatPointsSpend))

	_, err = h.actions.SendAction(ctx, SendActionRequest{
		Caller: viewer,
		Stats: []StatChange{
			{Key: models.StatRedeemsCount, Value: 1, Increment: true},
			{Key: " ", Value: 1},
			{Key: models.StatFortuneCookie, Value: 1, Increment: true},
		},
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindValidation))
	assert.Equal(t, int64(1), h.stat(t, user.ID, models.StatRedeemsCount), "earlier steps stay applied")
	assert.Zero(t, h.stat(t, user.ID, models.StatFortuneCookie), "later steps are skipped")

	_, err = h.actions.SendAction(ctx, SendActionRequest{Caller: viewer, Exp: -3})
	assert.True(t, errs.Is(err, errs.KindValidation))
}
