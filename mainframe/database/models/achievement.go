package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type Achievement struct {
	bun.BaseModel `bun:"table:achievements,alias:a"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id" yaml:"-"`
	Sysname     string `bun:"sysname,notnull,unique:achievements_sysname_tier" json:"sysname" yaml:"sysname"`
	Name        string `bun:"name,notnull" json:"name" yaml:"name"`
	Description string `bun:"description,notnull" json:"description" yaml:"description"`
	Tier        int    `bun:"tier,notnull,unique:achievements_sysname_tier" json:"tier" yaml:"tier"`
	StatKey     string `bun:"stat_key,notnull" json:"stat_key" yaml:"stat_key"`
	Threshold   int64  `bun:"threshold,notnull" json:"threshold" yaml:"threshold"`
}

// Label is the "<name> <tier>" form used in award messages.
func (a *Achievement) Label() string {
	return fmt.Sprintf("%s %d", a.Name, a.Tier)
}

type UserAchievement struct {
	bun.BaseModel `bun:"table:user_achievements,alias:ua"`

	ID            int64     `bun:"id,pk,autoincrement"`
	UserID        int64     `bun:"user_id,notnull,unique:user_achievements_user_achievement"`
	AchievementID int64     `bun:"achievement_id,notnull,unique:user_achievements_user_achievement"`
	AchievedAt    time.Time `bun:"achieved_at,notnull"`

	Achievement *Achievement `bun:"rel:belongs-to,join:achievement_id=id"`
}
