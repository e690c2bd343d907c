package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/dbtest"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statValues(t *testing.T, repo StatRepository, userID int64) map[string]int64 {
	t.Helper()
	stats, err := repo.GetAll(context.Background(), userID)
	require.NoError(t, err)
	out := make(map[string]int64, len(stats))
	for _, s := range stats {
		out[s.StatKey] = s.StatValue
	}
	return out
}

func TestStatRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewStatRepository(db)
	user := dbtest.SeedUser(t, db, &models.User{DisplayName: "counter"})

	const n, v = 7, 3
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Upsert(ctx, user.ID, models.StatPointsSpend, v, true))
	}
	require.NoError(t, repo.Upsert(ctx, user.ID, models.StatCheckinCount, 10, false))
	require.NoError(t, repo.Upsert(ctx, user.ID, models.StatCheckinCount, 4, false))

	got := statValues(t, repo, user.ID)
	assert.Equal(t, int64(n*v), got[models.StatPointsSpend])
	assert.Equal(t, int64(4), got[models.StatCheckinCount])
	assert.Len(t, got, 2)

	err := repo.Upsert(ctx, user.ID+1, models.StatPointsSpend, 1, true)
	assert.True(t, errs.Is(err, errs.KindNotFound))
	assert.Empty(t, statValues(t, repo, user.ID+1))
}

func TestStatRepository_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewStatRepository(db)
	user := dbtest.SeedUser(t, db, &models.User{DisplayName: "spammer"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Upsert(ctx, user.ID, models.StatRedeemsCount, 1, true))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(20), statValues(t, repo, user.ID)[models.StatRedeemsCount])
}
