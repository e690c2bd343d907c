// Package catalog loads the static reference data: the level table, the
// achievement catalog and the card catalog with its gacha weights.
package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/geekhub/mainframe/internal/domain/progression"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"gopkg.in/yaml.v3"
)

const (
	LevelsFile       = "levels.yaml"
	AchievementsFile = "achievements.yaml"
	CardsFile        = "cards.yaml"
)

// Source opens catalog files by name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type Catalog struct {
	Levels       []progression.Level
	Achievements []*models.Achievement
	Cards        []*models.Card
}

type levelsFile struct {
	Levels []progression.Level `yaml:"levels"`
}

type achievementsFile struct {
	Achievements []*models.Achievement `yaml:"achievements"`
}

type cardsFile struct {
	Cards []*models.Card `yaml:"cards"`
}

// Load reads and validates all three catalog files from src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	var (
		levels       levelsFile
		achievements achievementsFile
		cards        cardsFile
	)
	if err := decode(ctx, src, LevelsFile, &levels); err != nil {
		return nil, err
	}
	if err := decode(ctx, src, AchievementsFile, &achievements); err != nil {
		return nil, err
	}
	if err := decode(ctx, src, CardsFile, &cards); err != nil {
		return nil, err
	}

	c := &Catalog{
		Levels:       levels.Levels,
		Achievements: achievements.Achievements,
		Cards:        cards.Cards,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(ctx context.Context, src Source, name string, out any) error {
	r, err := src.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer r.Close()

	if err := yaml.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Validate checks the invariants the engines rely on: a non-empty level
// table, unique card ids and sysnames, both starter cards, and unique
// achievement tiers.
func (c *Catalog) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("%s: level table is empty", LevelsFile)
	}
	seenLevel := make(map[int]bool, len(c.Levels))
	for _, l := range c.Levels {
		if l.Exp < 0 {
			return fmt.Errorf("%s: level %d has a negative threshold", LevelsFile, l.Level)
		}
		if seenLevel[l.Level] {
			return fmt.Errorf("%s: level %d is listed twice", LevelsFile, l.Level)
		}
		seenLevel[l.Level] = true
	}

	ids := make(map[int64]bool, len(c.Cards))
	sysnames := make(map[string]bool, len(c.Cards))
	for _, card := range c.Cards {
		switch {
		case card.ID <= 0:
			return fmt.Errorf("%s: card %q has no id", CardsFile, card.Sysname)
		case card.Sysname == "":
			return fmt.Errorf("%s: card %d has no sysname", CardsFile, card.ID)
		case card.Weight < 0:
			return fmt.Errorf("%s: card %s has a negative weight", CardsFile, card.Sysname)
		case ids[card.ID]:
			return fmt.Errorf("%s: card id %d is listed twice", CardsFile, card.ID)
		case sysnames[card.Sysname]:
			return fmt.Errorf("%s: sysname %s is listed twice", CardsFile, card.Sysname)
		}
		ids[card.ID] = true
		sysnames[card.Sysname] = true
	}
	for _, id := range []int64{models.StandardStarterCardID, models.PremiumStarterCardID} {
		if !ids[id] {
			return fmt.Errorf("%s: starter card %d is missing", CardsFile, id)
		}
	}

	tiers := make(map[string]bool, len(c.Achievements))
	for _, a := range c.Achievements {
		key := fmt.Sprintf("%s/%d", a.Sysname, a.Tier)
		switch {
		case a.Sysname == "" || a.StatKey == "":
			return fmt.Errorf("%s: achievement %q needs a sysname and a stat key", AchievementsFile, a.Name)
		case a.Threshold < 0:
			return fmt.Errorf("%s: achievement %s has a negative threshold", AchievementsFile, key)
		case tiers[key]:
			return fmt.Errorf("%s: achievement %s is listed twice", AchievementsFile, key)
		}
		tiers[key] = true
	}
	return nil
}
