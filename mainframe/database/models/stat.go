package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Well known stat keys written by actions and read by reports.
const (
	StatCheckinCount      = "checkin_count"
	StatPointsSpend       = "points_spend"
	StatRedeemsCount      = "redeems_count"
	StatGachaPulls        = "card_gacha_pulls"
	StatGachaPullsSuccess = "card_gacha_pulls_success"
	StatFortuneCookie     = "fortune_cookie"
	StatBonksRedeem       = "bonks_redeem"
	StatSongRequests      = "song_requests"
	StatIncomingRaid      = "incoming_raid"
	StatBeanRedeems       = "bean_redeems"
	StatShutdownPC        = "shutdown_pc"
	StatGhostCalls        = "ghost_calls"
	StatHydrateRedeem     = "hydrate_redeem"

	// StatSubMonths is accepted by the send-action flow but stored on the user.
	StatSubMonths = "sub_months"
)

type Stat struct {
	bun.BaseModel `bun:"table:user_stats,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id,notnull,unique:user_stats_user_key"`
	StatKey   string    `bun:"stat_key,notnull,unique:user_stats_user_key"`
	StatValue int64     `bun:"stat_value,notnull,default:0"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
