package repositories

import (
	"context"
	"testing"

	"github.com/geekhub/mainframe/mainframe/database/dbtest"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAchievements() []*models.Achievement {
	return []*models.Achievement{
		{Sysname: "regular", Name: "Regular", Tier: 1, StatKey: models.StatCheckinCount, Threshold: 1},
		{Sysname: "regular", Name: "Regular", Tier: 2, StatKey: models.StatCheckinCount, Threshold: 5},
		{Sysname: "regular", Name: "Regular", Tier: 3, StatKey: models.StatCheckinCount, Threshold: 50},
		{Sysname: "big-spender", Name: "Big Spender", Tier: 1, StatKey: models.StatPointsSpend, Threshold: 1000},
	}
}

func TestAchievementRepository_EligibleAndUnlock(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewAchievementRepository(db)
	stats := NewStatRepository(db)
	require.NoError(t, repo.SyncCatalog(ctx, testAchievements()))
	user := dbtest.SeedUser(t, db, &models.User{DisplayName: "achiever"})

	eligible, err := repo.Eligible(ctx, user.ID, models.StatCheckinCount)
	require.NoError(t, err)
	assert.Empty(t, eligible, "missing stat is not eligible")

	require.NoError(t, stats.Upsert(ctx, user.ID, models.StatCheckinCount, 6, false))
	eligible, err = repo.Eligible(ctx, user.ID, models.StatCheckinCount)
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, "Regular 1", eligible[0].Label())
	assert.Equal(t, "Regular 2", eligible[1].Label())

	for _, a := range eligible {
		created, err := repo.Unlock(ctx, user.ID, a.ID)
		require.NoError(t, err)
		assert.True(t, created)
	}
	created, err := repo.Unlock(ctx, user.ID, eligible[0].ID)
	require.NoError(t, err)
	assert.False(t, created, "second unlock is a no-op")

	eligible, err = repo.Eligible(ctx, user.ID, models.StatCheckinCount)
	require.NoError(t, err)
	assert.Empty(t, eligible)

	unlocked, err := repo.ListUnlocked(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 2)
	for _, ua := range unlocked {
		require.NotNil(t, ua.Achievement)
		assert.Equal(t, "regular", ua.Achievement.Sysname)
	}
}

func TestAchievementRepository_SyncCatalogIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewAchievementRepository(db)

	require.NoError(t, repo.SyncCatalog(ctx, testAchievements()))
	updated := testAchievements()
	updated[0].Threshold = 2
	require.NoError(t, repo.SyncCatalog(ctx, updated))

	var rows []*models.Achievement
	require.NoError(t, db.NewSelect().Model(&rows).OrderExpr("sysname, tier").Scan(ctx))
	require.Len(t, rows, 4)
	for _, a := range rows {
		if a.Sysname == "regular" && a.Tier == 1 {
			assert.Equal(t, int64(2), a.Threshold)
		}
	}

	err := repo.SyncCatalog(ctx, []*models.Achievement{{Name: "broken"}})
	assert.Error(t, err)
}
