package cards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geekhub/mainframe/internal/domain/cards/mock"
	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/dbtest"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/geekhub/mainframe/mainframe/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/mock/gomock"
)

var (
	standardStarter = &models.Card{ID: models.StandardStarterCardID, CatalogNo: "ST-01", Name: "Boarding Pass", Sysname: "boarding-pass"}
	premiumStarter  = &models.Card{ID: models.PremiumStarterCardID, CatalogNo: "SP-00", Name: "First Class", Sysname: "first-class", IsPremium: true}
	goldenJet       = &models.Card{ID: 3, CatalogNo: "GX-01", Name: "Golden Jet", Sysname: "GX-01", Weight: 5}
	paperPlane      = &models.Card{ID: 4, CatalogNo: "CM-01", Name: "Paper Plane", Sysname: "common-1", Weight: 50}
	promoJet        = &models.Card{ID: 5, CatalogNo: "RP-02", Name: "Promo Jet", Sysname: "promo-jet", Weight: 10}
	tryAgain        = &models.Card{ID: 6, CatalogNo: "XX-00", Name: "Try Again", Sysname: models.SentinelSysname, Weight: 100}
)

func owned(id int64, card *models.Card, isDefault bool) *models.UserCard {
	return &models.UserCard{ID: id, UserID: 1, CardID: card.ID, IsDefault: isDefault, Card: card, ObtainedAt: time.Unix(id, 0)}
}

func sysnamesOf(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Sysname
	}
	return out
}

func Test_service_ListCards_Order(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().ListOwned(gomock.Any(), int64(1)).Return([]*models.UserCard{
		owned(10, paperPlane, false),
		owned(11, standardStarter, true),
		owned(12, promoJet, false),
		owned(13, goldenJet, false),
		owned(14, premiumStarter, false),
	}, nil)
	s := NewService(repo)

	got, err := s.ListCards(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"first-class", "GX-01", "promo-jet", "common-1", "boarding-pass"}, sysnamesOf(got.Cards))
	require.NotNil(t, got.Default)
	assert.Equal(t, "boarding-pass", got.Default.Sysname)
}

func Test_service_Load(t *testing.T) {
	tests := []struct {
		name        string
		premium     bool
		setup       func(repo *mock.MockRepository)
		wantCards   []string
		wantDefault string
	}{
		{
			name: "new standard user gets the standard starter",
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().ListOwned(gomock.Any(), int64(1)).Return(nil, nil)
				repo.EXPECT().IssueStarter(gomock.Any(), int64(1), models.StandardStarterCardID).
					Return(owned(20, standardStarter, true), true, nil)
			},
			wantCards:   []string{"boarding-pass"},
			wantDefault: "boarding-pass",
		},
		{
			name:    "new premium user gets the premium starter only",
			premium: true,
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().ListOwned(gomock.Any(), int64(1)).Return(nil, nil)
				repo.EXPECT().IssueStarter(gomock.Any(), int64(1), models.PremiumStarterCardID).
					Return(owned(20, premiumStarter, true), true, nil)
			},
			wantCards:   []string{"first-class"},
			wantDefault: "first-class",
		},
		{
			name:    "existing user turning premium switches to the premium card",
			premium: true,
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().ListOwned(gomock.Any(), int64(1)).
					Return([]*models.UserCard{owned(20, standardStarter, true), owned(21, goldenJet, false)}, nil)
				repo.EXPECT().IssueAsDefault(gomock.Any(), int64(1), models.PremiumStarterCardID).
					Return(owned(22, premiumStarter, true), true, nil)
			},
			wantCards:   []string{"first-class", "GX-01", "boarding-pass"},
			wantDefault: "first-class",
		},
		{
			name:    "premium user who owns the premium card is untouched",
			premium: true,
			setup: func(repo *mock.MockRepository) {
				repo.EXPECT().ListOwned(gomock.Any(), int64(1)).
					Return([]*models.UserCard{owned(20, premiumStarter, false), owned(21, goldenJet, true)}, nil)
			},
			wantCards:   []string{"first-class", "GX-01"},
			wantDefault: "GX-01",
		},
		{
			name: "lost starter race reads the winner's state",
			setup: func(repo *mock.MockRepository) {
				gomock.InOrder(
					repo.EXPECT().ListOwned(gomock.Any(), int64(1)).Return(nil, nil),
					repo.EXPECT().IssueStarter(gomock.Any(), int64(1), models.StandardStarterCardID).Return(nil, false, nil),
					repo.EXPECT().ListOwned(gomock.Any(), int64(1)).Return([]*models.UserCard{owned(20, standardStarter, true)}, nil),
				)
			},
			wantCards:   []string{"boarding-pass"},
			wantDefault: "boarding-pass",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			tt.setup(repo)
			s := NewService(repo)

			got, err := s.Load(context.Background(), 1, tt.premium)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCards, sysnamesOf(got.Cards))
			require.NotNil(t, got.Default)
			assert.Equal(t, tt.wantDefault, got.Default.Sysname)

			defaults := 0
			for _, c := range got.Cards {
				if c.IsDefault {
					defaults++
				}
			}
			assert.Equal(t, 1, defaults)
		})
	}
}

func Test_service_Load_PropagatesStoreErrors(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().ListOwned(gomock.Any(), int64(1)).
		Return(nil, errs.E(errs.KindTransient, "user_card.list_owned", 0, errors.New("EOF")))
	s := NewService(repo)

	_, err := s.Load(context.Background(), 1, false)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindTransient))
}

func Test_service_SetActiveCardByName(t *testing.T) {
	collection := []*models.UserCard{
		owned(30, standardStarter, true),
		owned(31, goldenJet, false),
		owned(32, paperPlane, false),
	}

	t.Run("switches", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().ListOwned(gomock.Any(), int64(1)).Return(collection, nil)
		repo.EXPECT().SetDefault(gomock.Any(), int64(1), int64(31)).Return(owned(31, goldenJet, true), nil)
		s := NewService(repo)

		got, err := s.SetActiveCardByName(context.Background(), 1, "GX-01")
		require.NoError(t, err)
		assert.Equal(t, "GX-01", got.Sysname)
		assert.True(t, got.IsDefault)
	})

	t.Run("already active", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().ListOwned(gomock.Any(), int64(1)).Return(collection, nil)
		s := NewService(repo)

		_, err := s.SetActiveCardByName(context.Background(), 1, "boarding-pass")
		assert.True(t, errs.Is(err, errs.KindConflict))
		assert.ErrorIs(t, err, errs.ErrAlreadyActive)
	})

	t.Run("not owned suggests close names", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().ListOwned(gomock.Any(), int64(1)).Return(collection, nil)
		s := NewService(repo)

		_, err := s.SetActiveCardByName(context.Background(), 1, "comon")
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.KindNotFound))
		assert.ErrorIs(t, err, errs.ErrCardNotOwned)

		var notOwned *NotOwnedError
		require.ErrorAs(t, err, &notOwned)
		assert.Contains(t, notOwned.Suggestions, "common-1")
	})

	t.Run("empty name", func(t *testing.T) {
		s := NewService(mock.NewMockRepository(gomock.NewController(t)))
		_, err := s.SetActiveCardByName(context.Background(), 1, " ")
		assert.True(t, errs.Is(err, errs.KindValidation))
	})
}

func Test_service_CatalogAndAvailable(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().GetAll(gomock.Any()).Return([]*models.Card{standardStarter, premiumStarter, goldenJet, paperPlane, tryAgain}, nil)
	repo.EXPECT().GetPullable(gomock.Any(), true).Return([]*models.Card{goldenJet, paperPlane, tryAgain}, nil)
	s := NewService(repo)

	catalog, err := s.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 4)
	assert.Equal(t, "first-class", catalog[0].Sysname)

	available, err := s.Available(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, "GX-01", available[0].Sysname)
	assert.Equal(t, "common-1", available[1].Sysname)
}

func seedStore(t *testing.T) (*bun.DB, *models.User) {
	t.Helper()
	db := dbtest.New(t)
	dbtest.SeedCards(t, db,
		&models.Card{ID: standardStarter.ID, CatalogNo: standardStarter.CatalogNo, Name: standardStarter.Name, Sysname: standardStarter.Sysname},
		&models.Card{ID: premiumStarter.ID, CatalogNo: premiumStarter.CatalogNo, Name: premiumStarter.Name, Sysname: premiumStarter.Sysname, IsPremium: true},
		&models.Card{ID: goldenJet.ID, CatalogNo: goldenJet.CatalogNo, Name: goldenJet.Name, Sysname: goldenJet.Sysname, Weight: 5},
		&models.Card{ID: paperPlane.ID, CatalogNo: paperPlane.CatalogNo, Name: paperPlane.Name, Sysname: paperPlane.Sysname, Weight: 50},
	)
	user := dbtest.SeedUser(t, db, &models.User{DisplayName: "flyer"})
	return db, user
}

func Test_service_SingleDefaultAcrossOperations(t *testing.T) {
	ctx := context.Background()
	db, user := seedStore(t)
	store := repositories.NewCardStore(db)
	s := NewService(store)

	assertOneDefault := func(t *testing.T) Collection {
		t.Helper()
		col, err := s.ListCards(ctx, user.ID)
		require.NoError(t, err)
		defaults := 0
		for _, c := range col.Cards {
			if c.IsDefault {
				defaults++
			}
		}
		require.Equal(t, 1, defaults)
		return col
	}

	col, err := s.Load(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"boarding-pass"}, sysnamesOf(col.Cards))
	assertOneDefault(t)

	_, err = s.EnsureFirstCard(ctx, user.ID, true)
	require.NoError(t, err)
	assertOneDefault(t)

	for _, id := range []int64{goldenJet.ID, paperPlane.ID} {
		_, err := store.Issue(ctx, user.ID, id)
		require.NoError(t, err)
	}
	col = assertOneDefault(t)
	assert.Equal(t, []string{"GX-01", "common-1", "boarding-pass"}, sysnamesOf(col.Cards), "GX-01 sorts before common-1")

	_, err = s.SetActiveCardByName(ctx, user.ID, "common-1")
	require.NoError(t, err)
	col = assertOneDefault(t)
	assert.Equal(t, "common-1", col.Default.Sysname)

	loaded, err := s.Load(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "first-class", loaded.Default.Sysname)
	col = assertOneDefault(t)
	assert.Equal(t, "first-class", col.Default.Sysname)
	assert.Equal(t, sysnamesOf(loaded.Cards), sysnamesOf(col.Cards))

	// Unknown ownership rows fail and keep the current default.
	_, err = s.SetActiveCard(ctx, user.ID, 9999)
	assert.True(t, errs.Is(err, errs.KindNotFound))
	col = assertOneDefault(t)
	assert.Equal(t, "first-class", col.Default.Sysname)

	_, err = s.SetActiveCard(ctx, user.ID, col.Default.UserCardID)
	assert.True(t, errs.Is(err, errs.KindConflict))
	assertOneDefault(t)
}
