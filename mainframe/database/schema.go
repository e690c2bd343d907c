package database

import (
	"context"
	"fmt"

	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/uptrace/bun"
)

// appTables lists the tables owned by the engine, in truncate order.
var appTables = []string{
	"user_achievements",
	"user_stats",
	"user_cards",
	"tourney",
	"users",
	"achievements",
	"cards",
}

// Create tables in dependency order: catalogs first, then users and the rows
// they own.
var schemaModels = []any{
	(*models.Card)(nil),
	(*models.Achievement)(nil),
	(*models.User)(nil),
	(*models.UserCard)(nil),
	(*models.Stat)(nil),
	(*models.UserAchievement)(nil),
	(*models.TeamMember)(nil),
}

var schemaIndexes = []string{
	// At most one default card per user.
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_cards_one_default ON user_cards(user_id) WHERE is_default;",
	"CREATE INDEX IF NOT EXISTS idx_user_cards_user_id ON user_cards(user_id);",
	"CREATE INDEX IF NOT EXISTS idx_user_stats_key_value ON user_stats(stat_key, stat_value);",
	"CREATE INDEX IF NOT EXISTS idx_user_achievements_user_id ON user_achievements(user_id);",
	"CREATE INDEX IF NOT EXISTS idx_achievements_stat_key ON achievements(stat_key, threshold);",
	"CREATE INDEX IF NOT EXISTS idx_users_display_name ON users(display_name);",
	"CREATE INDEX IF NOT EXISTS idx_users_last_activity ON users(last_activity);",
	"CREATE INDEX IF NOT EXISTS idx_tourney_user_id ON tourney(user_id);",
}

// CreateSchema creates every engine table and index. The statements are
// idempotent and portable between Postgres and SQLite.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, model := range schemaModels {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, idx := range schemaIndexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
