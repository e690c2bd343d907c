package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	TwitchID     string    `bun:"twitch_id,notnull,unique" json:"twitch_id"`
	DisplayName  string    `bun:"display_name,notnull" json:"twitch_display_name"`
	Avatar       string    `bun:"avatar,notnull,default:''" json:"twitch_avatar"`
	Exp          float64   `bun:"exp,notnull,default:0" json:"exp"`
	IsPremium    bool      `bun:"is_premium,notnull,default:false" json:"is_premium"`
	SubMonths    int       `bun:"sub_months,notnull,default:0" json:"sub_months"`
	LastLogin    time.Time `bun:"last_login,nullzero" json:"last_login"`
	LastCheckin  time.Time `bun:"last_checkin,nullzero" json:"last_checkin"`
	LastActivity time.Time `bun:"last_activity,nullzero" json:"last_activity"`
	RegDate      time.Time `bun:"reg_date,notnull" json:"reg_date"`

	CreatedAt time.Time `bun:"created_at,notnull" json:"-"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"-"`
}

// Identity is what an inbound action knows about the caller.
type Identity struct {
	TwitchID    string
	DisplayName string
	Avatar      string
	// Premium is left untouched when nil.
	Premium *bool
}

// ActivityField names one of the user timestamps that actions refresh.
type ActivityField int

const (
	LastActivity ActivityField = iota
	LastLogin
	LastCheckin
)

// Column returns the users column backing the field.
func (f ActivityField) Column() string {
	switch f {
	case LastLogin:
		return "last_login"
	case LastCheckin:
		return "last_checkin"
	default:
		return "last_activity"
	}
}
