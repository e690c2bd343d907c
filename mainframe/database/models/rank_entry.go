package models

import "time"

// RankEntry is one leaderboard row. Score holds the ranked value; for the
// recent check-in board the order comes from LastCheckin instead.
type RankEntry struct {
	UserID      int64     `bun:"user_id" json:"user_id"`
	DisplayName string    `bun:"display_name" json:"twitch_display_name"`
	Avatar      string    `bun:"avatar" json:"twitch_avatar"`
	Score       float64   `bun:"score" json:"score"`
	LastCheckin time.Time `bun:"last_checkin,nullzero" json:"last_checkin,omitempty"`
}
