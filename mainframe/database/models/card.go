package models

import (
	"strings"

	"github.com/uptrace/bun"
)

const (
	StandardStarterCardID int64 = 1
	PremiumStarterCardID  int64 = 2

	// SentinelSysname marks the "try again" catalog entry. It is drawable but
	// never owned.
	SentinelSysname = "try-again"
)

var (
	rareCatalogPrefixes      = []string{"GX", "EX", "SP"}
	rarePromoCatalogPrefixes = []string{"RG", "RP"}
)

// Card is a catalog entry. Its columns carry no defaults: catalog rows are
// inserted in bulk and every value must be written as given.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID          int64  `bun:"id,pk" json:"id" yaml:"id"`
	CatalogNo   string `bun:"catalog_no,notnull" json:"catalog_no" yaml:"catalog_no"`
	Name        string `bun:"name,notnull" json:"name" yaml:"name"`
	Sysname     string `bun:"sysname,notnull,unique" json:"sysname" yaml:"sysname"`
	Description string `bun:"description,notnull" json:"description" yaml:"description"`
	IsPremium   bool   `bun:"is_premium,notnull" json:"is_premium" yaml:"premium"`
	Weight      int    `bun:"weight,notnull" json:"-" yaml:"weight"`
}

func (c *Card) IsSentinel() bool {
	return c.Sysname == SentinelSysname
}

// Pullable reports whether the card takes part in gacha draws.
func (c *Card) Pullable() bool {
	return c.Weight > 0
}

// Tier is the display priority derived from the catalog number prefix:
// 1 for rare prefixes, 2 for rare promos, 3 for everything else.
func (c *Card) Tier() int {
	prefix := strings.ToUpper(c.CatalogNo)
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	for _, p := range rareCatalogPrefixes {
		if prefix == p {
			return 1
		}
	}
	for _, p := range rarePromoCatalogPrefixes {
		if prefix == p {
			return 2
		}
	}
	return 3
}

// DisplayTitle prefixes premium cards the way chat responses show them.
func (c *Card) DisplayTitle() string {
	if c.IsPremium {
		return "Premium " + c.Name
	}
	return c.Name
}
