package ranking

import (
	"time"

	"github.com/geekhub/mainframe/mainframe/database/models"
)

// Type names a leaderboard.
type Type string

const (
	TypeExp          Type = "exp"
	TypeSpender      Type = "spender"
	TypeRedeems      Type = "redeems"
	TypeCheckinsLast Type = "checkins_last"
	TypeCheckins     Type = "checkins"
	TypeAchievements Type = "achievements"
)

// Types lists every leaderboard in display order.
var Types = []Type{TypeExp, TypeSpender, TypeRedeems, TypeCheckinsLast, TypeCheckins, TypeAchievements}

func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Entry is a leaderboard row with its 1-based position.
type Entry struct {
	Rank int `json:"rank"`
	models.RankEntry
}

// FlightReport is the personal summary shown by the flight-report command.
// Percentiles are the share of the active cohort strictly ahead of the user,
// so lower is better.
type FlightReport struct {
	UserID       int64     `json:"id"`
	DisplayName  string    `json:"twitch_display_name"`
	Avatar       string    `json:"twitch_avatar"`
	Exp          float64   `json:"exp"`
	IsPremium    bool      `json:"is_premium"`
	SubMonths    int       `json:"sub_months"`
	RegDate      time.Time `json:"reg_date"`
	LastCheckin  time.Time `json:"last_checkin"`
	LastActivity time.Time `json:"last_activity"`
	DaysAsMember int       `json:"days_as_member"`

	ExpRank          int     `json:"exp_rank"`
	ExpPercentile    float64 `json:"exp_percentile"`
	TotalActiveUsers int     `json:"total_active_users"`

	Checkins       int64 `json:"checkins"`
	PointsSpent    int64 `json:"points_spent"`
	TotalRedeems   int64 `json:"total_redeems"`
	GachaPulls     int64 `json:"gacha_pulls"`
	GachaSuccess   int64 `json:"gacha_success"`
	FortuneCookies int64 `json:"fortune_cookies"`
	Bonks          int64 `json:"bonks"`
	SongRequests   int64 `json:"song_requests"`
	RaidsBrought   int64 `json:"raids_brought"`
	Beans          int64 `json:"beans"`

	CheckinsPercentile float64 `json:"checkins_percentile"`
	PointsPercentile   float64 `json:"points_percentile"`
	RedeemsPercentile  float64 `json:"redeems_percentile"`

	ChaosScore  int64 `json:"chaos_score"`
	HelperScore int64 `json:"helper_score"`
	// GachaSuccessRate is a percentage, nil until the user has pulled.
	GachaSuccessRate *float64 `json:"gacha_success_rate"`
}
