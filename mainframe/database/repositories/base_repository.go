package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/uptrace/bun"
)

// BaseRepository provides common repository functionality
type BaseRepository struct {
	db             *bun.DB
	defaultTimeout time.Duration
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *bun.DB) *BaseRepository {
	return &BaseRepository{
		db:             db,
		defaultTimeout: database.DefaultQueryTimeout,
	}
}

// WithTimeout creates a context with the default timeout
func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// Run executes query under the default timeout. A transient failure is
// retried once on a fresh connection before the error is classified.
func (br *BaseRepository) Run(ctx context.Context, operation, entity string, query func(context.Context) error) error {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	err := query(timeoutCtx)
	if database.IsTransient(err) && timeoutCtx.Err() == nil {
		slog.Warn("Transient store failure, retrying once",
			slog.String("type", "db"),
			slog.String("operation", operation),
			slog.String("entity", entity),
			slog.Any("error", err))
		err = query(timeoutCtx)
	}
	return br.HandleError(operation, entity, err)
}

// Transaction executes fn within a database transaction. The whole
// transaction is retried once when it fails on a transient error.
func (br *BaseRepository) Transaction(ctx context.Context, operation, entity string, fn func(context.Context, bun.Tx) error) error {
	return br.Run(ctx, operation, entity, func(ctx context.Context) error {
		return br.db.RunInTx(ctx, nil, fn)
	})
}

// HandleError standardizes error handling across repositories
func (br *BaseRepository) HandleError(operation, entity string, err error) error {
	if err == nil {
		return nil
	}

	op := entity + "." + operation
	var classified *errs.Error
	switch {
	case errors.As(err, &classified):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return errs.NotFound(op, 0, fmt.Errorf("%s not found: %w", entity, err))
	case database.IsUniqueViolation(err):
		return errs.E(errs.KindInvariant, op, 0, err)
	case database.IsTransient(err):
		return errs.E(errs.KindTransient, op, 0, err)
	default:
		return errs.E(errs.KindUnknown, op, 0, err)
	}
}

// lockUser takes the row lock on a user for the rest of the transaction.
// Every transaction that reshapes a user's card collection starts here, so
// they run one at a time per user.
func lockUser(ctx context.Context, tx bun.Tx, userID int64) error {
	res, err := tx.NewUpdate().
		Model((*models.User)(nil)).
		Set("updated_at = ?", now()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "users.lock", userID, errs.ErrUserNotFound)
}

// requireAffected turns a zero row count into a NOT_FOUND error.
func requireAffected(res sql.Result, op string, userID int64, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound(op, userID, notFound)
	}
	return nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// now is the timestamp stored by every write. Kept in UTC so Postgres and
// SQLite compare it the same way.
func now() time.Time {
	return time.Now().UTC()
}
