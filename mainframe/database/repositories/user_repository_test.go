package repositories

import (
	"context"
	"testing"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/dbtest"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestUserRepository_ResolveOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(dbtest.New(t))

	created, err := repo.ResolveOrCreate(ctx, models.Identity{TwitchID: "42", DisplayName: "pilot", Avatar: "a.png"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "pilot", created.DisplayName)
	assert.Equal(t, "a.png", created.Avatar)
	assert.False(t, created.IsPremium)
	assert.Zero(t, created.Exp)
	assert.False(t, created.RegDate.IsZero())

	again, err := repo.ResolveOrCreate(ctx, models.Identity{TwitchID: "42", DisplayName: "pilot_renamed", Premium: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "pilot_renamed", again.DisplayName)
	assert.Equal(t, "a.png", again.Avatar, "empty avatar keeps the stored one")
	assert.True(t, again.IsPremium)

	sticky, err := repo.ResolveOrCreate(ctx, models.Identity{TwitchID: "42", DisplayName: "pilot_renamed"})
	require.NoError(t, err)
	assert.True(t, sticky.IsPremium, "premium only changes when supplied")

	cleared, err := repo.ResolveOrCreate(ctx, models.Identity{TwitchID: "42", DisplayName: "pilot_renamed", Avatar: "b.png", Premium: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, cleared.IsPremium)
	assert.Equal(t, "b.png", cleared.Avatar)
}

func TestUserRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	user := dbtest.SeedUser(t, db, &models.User{TwitchID: "7", DisplayName: "navigator"})

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "navigator", byID.DisplayName)

	byTwitch, err := repo.GetByTwitchID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byTwitch.ID)

	byName, err := repo.GetByDisplayName(ctx, "navigator")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.GetByDisplayName(ctx, "nobody")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindNotFound))
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestUserRepository_AddExperience(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	user := dbtest.SeedUser(t, db, &models.User{DisplayName: "climber"})

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.AddExperience(ctx, user.ID, 1.15))
	}

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.6, got.Exp, 1e-9)
	assert.False(t, got.LastActivity.IsZero())

	err = repo.AddExperience(ctx, user.ID+100, 1)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestUserRepository_TouchAndSubMonths(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	user := dbtest.SeedUser(t, db, &models.User{DisplayName: "lurker"})

	require.NoError(t, repo.Touch(ctx, user.ID, models.LastCheckin))
	require.NoError(t, repo.SetSubMonths(ctx, user.ID, 12))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.LastCheckin.IsZero())
	assert.True(t, got.LastLogin.IsZero())
	assert.Equal(t, 12, got.SubMonths)

	err = repo.Touch(ctx, 9999, models.LastLogin)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}
