// Package dbtest opens throwaway in-memory stores with the engine schema for
// repository and integration tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/geekhub/mainframe/mainframe/database"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

// New returns a bun handle over a private in-memory SQLite database with the
// schema applied. The database is closed when the test ends.
func New(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.AddQueryHook(database.QueryLogHook{})
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.CreateSchema(context.Background(), db))
	return db
}

// SeedCards inserts catalog cards.
func SeedCards(t testing.TB, db *bun.DB, cards ...*models.Card) {
	t.Helper()
	if len(cards) == 0 {
		return
	}
	_, err := db.NewInsert().Model(&cards).Exec(context.Background())
	require.NoError(t, err)
}

// SeedAchievements inserts catalog achievements and fills in their ids.
func SeedAchievements(t testing.TB, db *bun.DB, achievements ...*models.Achievement) {
	t.Helper()
	if len(achievements) == 0 {
		return
	}
	_, err := db.NewInsert().Model(&achievements).Exec(context.Background())
	require.NoError(t, err)
}

// SeedUser inserts a user with sensible defaults for unset fields.
func SeedUser(t testing.TB, db *bun.DB, user *models.User) *models.User {
	t.Helper()
	if user.TwitchID == "" {
		user.TwitchID = "tw-" + user.DisplayName
	}
	if user.RegDate.IsZero() {
		user.RegDate = Now()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.RegDate
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.RegDate
	}
	_, err := db.NewInsert().Model(user).Exec(context.Background())
	require.NoError(t, err)
	return user
}
