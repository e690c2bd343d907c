package repositories

import (
	"context"
	"log/slog"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	ResolveOrCreate(ctx context.Context, identity models.Identity) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByTwitchID(ctx context.Context, twitchID string) (*models.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*models.User, error)
	Touch(ctx context.Context, userID int64, field models.ActivityField) error
	AddExperience(ctx context.Context, userID int64, amount float64) error
	SetSubMonths(ctx context.Context, userID int64, months int) error
}

type userRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db), db: db}
}

// ResolveOrCreate inserts the user on first contact and then applies the
// identity fields. Both statements run in one transaction, so concurrent
// first contacts for the same twitch id end with a single row.
func (r *userRepository) ResolveOrCreate(ctx context.Context, identity models.Identity) (*models.User, error) {
	user := new(models.User)
	err := r.Transaction(ctx, "resolve_or_create", "user", func(ctx context.Context, tx bun.Tx) error {
		ts := now()
		fresh := &models.User{
			TwitchID:     identity.TwitchID,
			DisplayName:  identity.DisplayName,
			Avatar:       identity.Avatar,
			IsPremium:    identity.Premium != nil && *identity.Premium,
			RegDate:      ts,
			LastActivity: ts,
			CreatedAt:    ts,
			UpdatedAt:    ts,
		}
		res, err := tx.NewInsert().
			Model(fresh).
			On("CONFLICT (twitch_id) DO NOTHING").
			Returning("NULL").
			Exec(ctx)
		if err != nil {
			return err
		}
		if created, _ := affected(res); created {
			slog.Info("Registered new user",
				slog.String("type", "db"),
				slog.String("twitch_id", identity.TwitchID),
				slog.String("display_name", identity.DisplayName))
		}

		q := tx.NewUpdate().
			Model(user).
			Set("display_name = ?", identity.DisplayName).
			Set("last_activity = ?", ts).
			Set("updated_at = ?", ts).
			Where("twitch_id = ?", identity.TwitchID).
			Returning("*")
		if identity.Avatar != "" {
			q = q.Set("avatar = ?", identity.Avatar)
		}
		if identity.Premium != nil {
			q = q.Set("is_premium = ?", *identity.Premium)
		}
		_, err = q.Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "get_by_id", "id = ?", id)
}

func (r *userRepository) GetByTwitchID(ctx context.Context, twitchID string) (*models.User, error) {
	return r.getOne(ctx, "get_by_twitch_id", "twitch_id = ?", twitchID)
}

// GetByDisplayName matches the exact display name. Names are not unique, so
// the oldest account wins.
func (r *userRepository) GetByDisplayName(ctx context.Context, displayName string) (*models.User, error) {
	return r.getOne(ctx, "get_by_display_name", "display_name = ?", displayName)
}

func (r *userRepository) getOne(ctx context.Context, operation, where string, arg any) (*models.User, error) {
	user := new(models.User)
	err := r.Run(ctx, operation, "user", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(user).
			Where(where, arg).
			OrderExpr("id ASC").
			Limit(1).
			Scan(ctx)
	})
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return nil, errs.NotFound("user."+operation, 0, errs.ErrUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

// Touch stamps one of the activity timestamps with the current time.
func (r *userRepository) Touch(ctx context.Context, userID int64, field models.ActivityField) error {
	return r.Run(ctx, "touch", "user", func(ctx context.Context) error {
		ts := now()
		q := r.db.NewUpdate().
			Model((*models.User)(nil)).
			Set("? = ?", bun.Ident(field.Column()), ts).
			Set("updated_at = ?", ts).
			Where("id = ?", userID)
		if field != models.LastActivity {
			q = q.Set("last_activity = ?", ts)
		}
		res, err := q.Exec(ctx)
		if err != nil {
			return err
		}
		return requireAffected(res, "user.touch", userID, errs.ErrUserNotFound)
	})
}

// AddExperience increments exp in the store so concurrent awards never lose
// an update.
func (r *userRepository) AddExperience(ctx context.Context, userID int64, amount float64) error {
	return r.Run(ctx, "add_experience", "user", func(ctx context.Context) error {
		ts := now()
		res, err := r.db.NewUpdate().
			Model((*models.User)(nil)).
			Set("exp = exp + ?", amount).
			Set("last_activity = ?", ts).
			Set("updated_at = ?", ts).
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return err
		}
		return requireAffected(res, "user.add_experience", userID, errs.ErrUserNotFound)
	})
}

func (r *userRepository) SetSubMonths(ctx context.Context, userID int64, months int) error {
	return r.Run(ctx, "set_sub_months", "user", func(ctx context.Context) error {
		ts := now()
		res, err := r.db.NewUpdate().
			Model((*models.User)(nil)).
			Set("sub_months = ?", months).
			Set("last_activity = ?", ts).
			Set("updated_at = ?", ts).
			Where("id = ?", userID).
			Exec(ctx)
		if err != nil {
			return err
		}
		return requireAffected(res, "user.set_sub_months", userID, errs.ErrUserNotFound)
	})
}
