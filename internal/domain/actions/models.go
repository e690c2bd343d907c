package actions

import (
	"github.com/geekhub/mainframe/internal/domain/cards"
	"github.com/geekhub/mainframe/internal/domain/gacha"
	"github.com/geekhub/mainframe/internal/domain/users"
	"github.com/geekhub/mainframe/mainframe/database/models"
)

// Caller is the viewer an inbound action is performed for.
type Caller struct {
	TwitchID    string   `json:"twitch_id"`
	DisplayName string   `json:"twitch_display_name"`
	Avatar      string   `json:"twitch_avatar"`
	Roles       []string `json:"twitch_roles"`
}

// IsPremium reports whether the caller's chat roles grant premium.
func (c Caller) IsPremium() bool {
	return users.IsPremiumRoles(c.Roles)
}

func (c Caller) identity(premium *bool) models.Identity {
	return models.Identity{
		TwitchID:    c.TwitchID,
		DisplayName: c.DisplayName,
		Avatar:      c.Avatar,
		Premium:     premium,
	}
}

type CheckInResult struct {
	User         *models.User
	Level        int
	IsPremium    bool
	DefaultCard  *cards.Card
	Achievements []string
}

type GachaResult struct {
	User    *models.User
	Outcome gacha.Outcome
	// DefaultCard is the active card, which a pull never changes.
	DefaultCard  *cards.Card
	Achievements []string
}

// StatChange is one stat write in a send-action request.
type StatChange struct {
	Key       string `json:"stat_name"`
	Value     int64  `json:"value"`
	Increment bool   `json:"increment"`
}

type SendActionRequest struct {
	Caller
	Exp   float64      `json:"exp"`
	Stats []StatChange `json:"stats"`
}
