package models

import "github.com/uptrace/bun"

// TeamMember is a tournament assignment written by the tournament tooling.
// The engine only reads it.
type TeamMember struct {
	bun.BaseModel `bun:"table:tourney,alias:t"`

	ID         int64 `bun:"id,pk,autoincrement"`
	UserID     int64 `bun:"user_id,notnull"`
	TeamNumber int   `bun:"team_number,notnull"`
}

var teamNames = map[int]string{
	1: "Afterburner",
	2: "Concorde",
	3: "Stratos",
}

// TeamName returns the display name for a team number, or "" for numbers
// outside 1..3.
func TeamName(number int) string {
	return teamNames[number]
}
