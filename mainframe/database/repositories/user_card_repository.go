package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/uptrace/bun"
)

type UserCardRepository interface {
	// ListOwned returns the user's ownership rows with their catalog card.
	ListOwned(ctx context.Context, userID int64) ([]*models.UserCard, error)
	// IssueStarter gives the card as default when the user owns nothing yet.
	// It reports false and changes nothing when the user already owns a card.
	IssueStarter(ctx context.Context, userID, cardID int64) (*models.UserCard, bool, error)
	// IssueAsDefault moves the default flag to a newly issued card. It
	// reports false and changes nothing when the card is already owned.
	IssueAsDefault(ctx context.Context, userID, cardID int64) (*models.UserCard, bool, error)
	// SetDefault makes an owned row the user's only default.
	SetDefault(ctx context.Context, userID, userCardID int64) (*models.UserCard, error)
	// Issue adds a card without touching the default. It reports false when
	// the card was already owned.
	Issue(ctx context.Context, userID, cardID int64) (bool, error)
}

type userCardRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewUserCardRepository(db *bun.DB) UserCardRepository {
	return &userCardRepository{BaseRepository: NewBaseRepository(db), db: db}
}

func (r *userCardRepository) ListOwned(ctx context.Context, userID int64) ([]*models.UserCard, error) {
	var userCards []*models.UserCard
	err := r.Run(ctx, "list_owned", "user_card", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&userCards).
			Relation("Card").
			Where("uc.user_id = ?", userID).
			OrderExpr("uc.id ASC").
			Scan(ctx)
	})
	return userCards, err
}

func (r *userCardRepository) IssueStarter(ctx context.Context, userID, cardID int64) (*models.UserCard, bool, error) {
	var (
		issued *models.UserCard
		ok     bool
	)
	err := r.Transaction(ctx, "issue_starter", "user_card", func(ctx context.Context, tx bun.Tx) error {
		issued, ok = nil, false
		if err := lockUser(ctx, tx, userID); err != nil {
			return err
		}

		owned, err := tx.NewSelect().
			Model((*models.UserCard)(nil)).
			Where("user_id = ?", userID).
			Count(ctx)
		if err != nil {
			return err
		}
		if owned > 0 {
			return nil
		}

		issued, err = insertOwned(ctx, tx, userID, cardID, true)
		ok = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return issued, ok, nil
}

func (r *userCardRepository) IssueAsDefault(ctx context.Context, userID, cardID int64) (*models.UserCard, bool, error) {
	var (
		issued *models.UserCard
		ok     bool
	)
	err := r.Transaction(ctx, "issue_as_default", "user_card", func(ctx context.Context, tx bun.Tx) error {
		issued, ok = nil, false
		if err := lockUser(ctx, tx, userID); err != nil {
			return err
		}

		exists, err := tx.NewSelect().
			Model((*models.UserCard)(nil)).
			Where("user_id = ?", userID).
			Where("card_id = ?", cardID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		if err := clearDefault(ctx, tx, userID); err != nil {
			return err
		}
		issued, err = insertOwned(ctx, tx, userID, cardID, true)
		ok = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return issued, ok, nil
}

func (r *userCardRepository) SetDefault(ctx context.Context, userID, userCardID int64) (*models.UserCard, error) {
	target := new(models.UserCard)
	err := r.Transaction(ctx, "set_default", "user_card", func(ctx context.Context, tx bun.Tx) error {
		if err := lockUser(ctx, tx, userID); err != nil {
			return err
		}

		err := tx.NewSelect().
			Model(target).
			Relation("Card").
			Where("uc.id = ?", userCardID).
			Where("uc.user_id = ?", userID).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NotFound("user_card.set_default", userID, errs.ErrCardNotOwned)
		}
		if err != nil {
			return err
		}
		if target.IsDefault {
			return errs.Conflict("user_card.set_default", userID, errs.ErrAlreadyActive)
		}

		if err := clearDefault(ctx, tx, userID); err != nil {
			return err
		}
		_, err = tx.NewUpdate().
			Model((*models.UserCard)(nil)).
			Set("is_default = ?", true).
			Where("id = ?", target.ID).
			Exec(ctx)
		if err != nil {
			return err
		}
		target.IsDefault = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

func (r *userCardRepository) Issue(ctx context.Context, userID, cardID int64) (bool, error) {
	var issued bool
	err := r.Run(ctx, "issue", "user_card", func(ctx context.Context) error {
		userCard := &models.UserCard{
			UserID:     userID,
			CardID:     cardID,
			ObtainedAt: now(),
		}
		res, err := r.db.NewInsert().
			Model(userCard).
			On("CONFLICT (user_id, card_id) DO NOTHING").
			Returning("NULL").
			Exec(ctx)
		if err != nil {
			return err
		}
		issued, err = affected(res)
		return err
	})
	return issued, err
}

func clearDefault(ctx context.Context, tx bun.Tx, userID int64) error {
	_, err := tx.NewUpdate().
		Model((*models.UserCard)(nil)).
		Set("is_default = ?", false).
		Where("user_id = ?", userID).
		Where("is_default = ?", true).
		Exec(ctx)
	return err
}

func insertOwned(ctx context.Context, tx bun.Tx, userID, cardID int64, isDefault bool) (*models.UserCard, error) {
	userCard := &models.UserCard{
		UserID:     userID,
		CardID:     cardID,
		IsDefault:  isDefault,
		ObtainedAt: now(),
	}
	if _, err := tx.NewInsert().Model(userCard).Exec(ctx); err != nil {
		return nil, err
	}
	card := new(models.Card)
	if err := tx.NewSelect().Model(card).Where("id = ?", cardID).Scan(ctx); err != nil {
		return nil, err
	}
	userCard.Card = card
	return userCard, nil
}
