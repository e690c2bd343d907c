package cards

import (
	"sort"
	"time"

	"github.com/geekhub/mainframe/mainframe/database/models"
)

// Card is an owned card as shown to the user.
type Card struct {
	UserCardID  int64     `json:"user_card_id"`
	CardID      int64     `json:"card_id"`
	CatalogNo   string    `json:"catalog_no"`
	Name        string    `json:"name"`
	Sysname     string    `json:"sysname"`
	Description string    `json:"description"`
	IsPremium   bool      `json:"is_premium"`
	IsDefault   bool      `json:"is_default"`
	Tier        int       `json:"tier"`
	ObtainedAt  time.Time `json:"obtained_at"`
}

// Title is the name chat responses use, prefixed for premium cards.
func (c Card) Title() string {
	if c.IsPremium {
		return "Premium " + c.Name
	}
	return c.Name
}

// Collection is a user's cards in display order plus the active one.
type Collection struct {
	Cards   []Card `json:"cards"`
	Default *Card  `json:"default"`
}

// Owns reports whether the collection holds the catalog card.
func (c Collection) Owns(cardID int64) bool {
	for _, card := range c.Cards {
		if card.CardID == cardID {
			return true
		}
	}
	return false
}

// CatalogEntry is a catalog card without ownership data.
type CatalogEntry struct {
	ID          int64  `json:"id"`
	CatalogNo   string `json:"catalog_no"`
	Name        string `json:"name"`
	Sysname     string `json:"sysname"`
	Description string `json:"description"`
	IsPremium   bool   `json:"is_premium"`
	Tier        int    `json:"tier"`
}

func fromUserCard(uc *models.UserCard) Card {
	card := Card{
		UserCardID: uc.ID,
		CardID:     uc.CardID,
		IsDefault:  uc.IsDefault,
		ObtainedAt: uc.ObtainedAt,
		Tier:       3,
	}
	if uc.Card != nil {
		card.CatalogNo = uc.Card.CatalogNo
		card.Name = uc.Card.Name
		card.Sysname = uc.Card.Sysname
		card.Description = uc.Card.Description
		card.IsPremium = uc.Card.IsPremium
		card.Tier = uc.Card.Tier()
	}
	return card
}

func fromCatalog(c *models.Card) CatalogEntry {
	return CatalogEntry{
		ID:          c.ID,
		CatalogNo:   c.CatalogNo,
		Name:        c.Name,
		Sysname:     c.Sysname,
		Description: c.Description,
		IsPremium:   c.IsPremium,
		Tier:        c.Tier(),
	}
}

// newCollection sorts the rows for display and picks out the default.
func newCollection(rows []*models.UserCard) Collection {
	cards := make([]Card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, fromUserCard(row))
	}
	return collectionOf(cards)
}

func collectionOf(cards []Card) Collection {
	SortCards(cards)
	col := Collection{Cards: cards}
	for i := range cards {
		if cards[i].IsDefault {
			d := cards[i]
			col.Default = &d
			break
		}
	}
	return col
}

// SortCards orders cards by tier, premium first, then catalog number and
// name.
func SortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.IsPremium != b.IsPremium {
			return a.IsPremium
		}
		if a.CatalogNo != b.CatalogNo {
			return a.CatalogNo < b.CatalogNo
		}
		return a.Name < b.Name
	})
}

func sortCatalog(entries []CatalogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.IsPremium != b.IsPremium {
			return a.IsPremium
		}
		if a.CatalogNo != b.CatalogNo {
			return a.CatalogNo < b.CatalogNo
		}
		return a.Name < b.Name
	})
}
