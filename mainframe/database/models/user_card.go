package models

import (
	"time"

	"github.com/uptrace/bun"
)

type UserCard struct {
	bun.BaseModel `bun:"table:user_cards,alias:uc"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID     int64     `bun:"user_id,notnull,unique:user_cards_user_card" json:"user_id"`
	CardID     int64     `bun:"card_id,notnull,unique:user_cards_user_card" json:"card_id"`
	IsDefault  bool      `bun:"is_default,notnull,default:false" json:"is_default"`
	ObtainedAt time.Time `bun:"obtained_at,notnull" json:"obtained_at"`

	Card *Card `bun:"rel:belongs-to,join:card_id=id" json:"card,omitempty"`
}
