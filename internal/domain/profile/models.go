package profile

import (
	"github.com/geekhub/mainframe/internal/domain/achievements"
	"github.com/geekhub/mainframe/internal/domain/cards"
	"github.com/geekhub/mainframe/mainframe/database/models"
)

// Profile is the full snapshot the widget renders for one user.
type Profile struct {
	*models.User

	Level        int                     `json:"level"`
	Title        string                  `json:"title"`
	Progress     int                     `json:"levelProgress"`
	Cards        []cards.Card            `json:"cards"`
	DefaultCard  *cards.Card             `json:"card_default"`
	Stats        map[string]int64        `json:"stats"`
	Achievements []achievements.Unlocked `json:"achievements"`
	// Team is nil when the user has no tournament assignment.
	Team *string `json:"team"`
}
