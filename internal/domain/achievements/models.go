package achievements

import "time"

// Unlocked is the highest tier a user holds of one achievement.
type Unlocked struct {
	Sysname     string    `json:"sysname"`
	Name        string    `json:"achievement_name"`
	Description string    `json:"achievement_description"`
	Tier        int       `json:"achievement_tier"`
	AchievedAt  time.Time `json:"achieved_at"`
}
