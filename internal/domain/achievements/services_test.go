package achievements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geekhub/mainframe/internal/domain/achievements/mock"
	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/internal/domain/stats"
	"github.com/geekhub/mainframe/mainframe/database/dbtest"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/geekhub/mainframe/mainframe/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_service_CheckAndAward(t *testing.T) {
	regular1 := &models.Achievement{ID: 1, Sysname: "regular", Name: "Regular", Tier: 1}
	regular2 := &models.Achievement{ID: 2, Sysname: "regular", Name: "Regular", Tier: 2}
	early := &models.Achievement{ID: 3, Sysname: "early-bird", Name: "Early Bird", Tier: 1}

	tests := []struct {
		name     string
		setup    func(repo *mock.MockRepository)
		want     []string
		wantKind errs.Kind
	}{
		{
			name: "nothing eligible",
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().Eligible(gomock.Any(), int64(5), models.StatCheckinCount).Return(nil, nil)
			},
			want: []string{},
		},
		{
			name: "sorted by name then tier",
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().Eligible(gomock.Any(), int64(5), models.StatCheckinCount).
					Return([]*models.Achievement{regular2, early, regular1}, nil)
				gomock.InOrder(
					repo.EXPECT().Unlock(gomock.Any(), int64(5), int64(3)).Return(true, nil),
					repo.EXPECT().Unlock(gomock.Any(), int64(5), int64(1)).Return(true, nil),
					repo.EXPECT().Unlock(gomock.Any(), int64(5), int64(2)).Return(true, nil),
				)
			},
			want: []string{"Early Bird 1", "Regular 1", "Regular 2"},
		},
		{
			name: "lost race is not reported",
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().Eligible(gomock.Any(), int64(5), models.StatCheckinCount).
					Return([]*models.Achievement{regular1, regular2}, nil)
				repo.EXPECT().Unlock(gomock.Any(), int64(5), int64(1)).Return(false, nil)
				repo.EXPECT().Unlock(gomock.Any(), int64(5), int64(2)).Return(true, nil)
			},
			want: []string{"Regular 2"},
		},
		{
			name: "store error propagates",
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().Eligible(gomock.Any(), int64(5), models.StatCheckinCount).
					Return(nil, errs.E(errs.KindTransient, "achievement.eligible", 0, errors.New("broken pipe")))
			},
			wantKind: errs.KindTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			tt.setup(repo)
			s := NewService(repo)

			got, err := s.CheckAndAward(context.Background(), 5, models.StatCheckinCount)
			if tt.wantKind != errs.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, errs.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_service_ListUnlocked(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().ListUnlocked(gomock.Any(), int64(1)).Return([]*models.UserAchievement{
		{AchievedAt: base.Add(3 * time.Hour), Achievement: &models.Achievement{Sysname: "regular", Name: "Regular", Tier: 2}},
		{AchievedAt: base.Add(2 * time.Hour), Achievement: &models.Achievement{Sysname: "spender", Name: "Spender", Tier: 1}},
		{AchievedAt: base, Achievement: &models.Achievement{Sysname: "regular", Name: "Regular", Tier: 1}},
	}, nil)
	s := NewService(repo)

	got, err := s.ListUnlocked(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Unlocked{Sysname: "regular", Name: "Regular", Tier: 2, AchievedAt: base.Add(3 * time.Hour)}, got[0])
	assert.Equal(t, "spender", got[1].Sysname)
}

func Test_service_CheckAndAward_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := repositories.NewAchievementRepository(db)
	require.NoError(t, repo.SyncCatalog(ctx, []*models.Achievement{
		{Sysname: "regular", Name: "Regular", Tier: 1, StatKey: models.StatCheckinCount, Threshold: 1},
		{Sysname: "regular", Name: "Regular", Tier: 2, StatKey: models.StatCheckinCount, Threshold: 3},
	}))
	user := dbtest.SeedUser(t, db, &models.User{DisplayName: "repeat"})
	statService := stats.NewService(repositories.NewStatRepository(db))
	s := NewService(repo)

	require.NoError(t, statService.UpdateStat(ctx, user.ID, models.StatCheckinCount, 3, false))

	first, err := s.CheckAndAward(ctx, user.ID, models.StatCheckinCount)
	require.NoError(t, err)
	assert.Equal(t, []string{"Regular 1", "Regular 2"}, first)

	second, err := s.CheckAndAward(ctx, user.ID, models.StatCheckinCount)
	require.NoError(t, err)
	assert.Empty(t, second)

	unlocked, err := s.ListUnlocked(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, 2, unlocked[0].Tier)
}
