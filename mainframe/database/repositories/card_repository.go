package repositories

import (
	"context"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/uptrace/bun"
)

// CardRepository reads the card catalog. The catalog is written only by
// SyncCatalog.
type CardRepository interface {
	GetAll(ctx context.Context) ([]*models.Card, error)
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	GetPullable(ctx context.Context, includePremium bool) ([]*models.Card, error)
	SyncCatalog(ctx context.Context, cards []*models.Card) error
}

type cardRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{BaseRepository: NewBaseRepository(db), db: db}
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.Run(ctx, "get_all", "card", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&cards).
			OrderExpr("id ASC").
			Scan(ctx)
	})
	return cards, err
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	card := new(models.Card)
	err := r.Run(ctx, "get_by_id", "card", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(card).
			Where("id = ?", id).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetPullable returns the cards with a positive gacha weight. The standard
// pool leaves premium cards out.
func (r *cardRepository) GetPullable(ctx context.Context, includePremium bool) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.Run(ctx, "get_pullable", "card", func(ctx context.Context) error {
		q := r.db.NewSelect().
			Model(&cards).
			Where("weight > 0")
		if !includePremium {
			q = q.Where("is_premium = ?", false)
		}
		return q.OrderExpr("id ASC").Scan(ctx)
	})
	return cards, err
}

// SyncCatalog upserts the catalog by id. Cards missing from the input are
// kept because users may still own them.
func (r *cardRepository) SyncCatalog(ctx context.Context, cards []*models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	for _, c := range cards {
		if c.ID <= 0 || c.Sysname == "" {
			return errs.Validation("card.sync_catalog", "catalog card needs an id and a sysname (got id=%d sysname=%q)", c.ID, c.Sysname)
		}
	}
	return r.Transaction(ctx, "sync_catalog", "card", func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&cards).
			On("CONFLICT (id) DO UPDATE").
			Set("catalog_no = EXCLUDED.catalog_no").
			Set("name = EXCLUDED.name").
			Set("sysname = EXCLUDED.sysname").
			Set("description = EXCLUDED.description").
			Set("is_premium = EXCLUDED.is_premium").
			Set("weight = EXCLUDED.weight").
			Exec(ctx)
		return err
	})
}

// CardStore joins the catalog and ownership repositories for the card and
// gacha engines.
type CardStore struct {
	CardRepository
	UserCardRepository
}

func NewCardStore(db *bun.DB) CardStore {
	return CardStore{
		CardRepository:     NewCardRepository(db),
		UserCardRepository: NewUserCardRepository(db),
	}
}
