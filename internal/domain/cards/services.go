package cards

import (
	"context"
	"strings"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

type Service interface {
	ListCards(ctx context.Context, userID int64) (Collection, error)
	EnsureFirstCard(ctx context.Context, userID int64, isPremium bool) (*Card, error)
	ReconcilePremiumCard(ctx context.Context, userID int64, isPremium bool) (*Card, error)
	Load(ctx context.Context, userID int64, isPremium bool) (Collection, error)
	SetActiveCard(ctx context.Context, userID, userCardID int64) (Card, error)
	SetActiveCardByName(ctx context.Context, userID int64, sysname string) (Card, error)
	Catalog(ctx context.Context) ([]CatalogEntry, error)
	Available(ctx context.Context) ([]CatalogEntry, error)
}

type service struct {
	repository Repository
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
	}
}

func (s *service) ListCards(ctx context.Context, userID int64) (Collection, error) {
	rows, err := s.repository.ListOwned(ctx, userID)
	if err != nil {
		return Collection{}, errs.Wrap("cards.list_cards", userID, err)
	}
	return newCollection(rows), nil
}

// EnsureFirstCard issues the starter card as default when the user owns no
// cards. It returns the issued card, or nil when the user already had one.
func (s *service) EnsureFirstCard(ctx context.Context, userID int64, isPremium bool) (*Card, error) {
	cardID := models.StandardStarterCardID
	if isPremium {
		cardID = models.PremiumStarterCardID
	}

	row, issued, err := s.repository.IssueStarter(ctx, userID, cardID)
	if err != nil {
		return nil, errs.Wrap("cards.ensure_first_card", userID, err)
	}
	if !issued {
		return nil, nil
	}
	card := fromUserCard(row)
	return &card, nil
}

// ReconcilePremiumCard gives a premium user the premium starter card as the
// new default when they do not own it yet. It returns the issued card, or nil
// when nothing changed.
func (s *service) ReconcilePremiumCard(ctx context.Context, userID int64, isPremium bool) (*Card, error) {
	if !isPremium {
		return nil, nil
	}

	row, issued, err := s.repository.IssueAsDefault(ctx, userID, models.PremiumStarterCardID)
	if err != nil {
		return nil, errs.Wrap("cards.reconcile_premium_card", userID, err)
	}
	if !issued {
		return nil, nil
	}
	card := fromUserCard(row)
	return &card, nil
}

// Load lists the user's cards and applies first-card and premium-card
// issuance. State changed by issuance is folded into the returned collection
// instead of being read back.
func (s *service) Load(ctx context.Context, userID int64, isPremium bool) (Collection, error) {
	col, err := s.ListCards(ctx, userID)
	if err != nil {
		return Collection{}, err
	}

	if len(col.Cards) == 0 {
		first, err := s.EnsureFirstCard(ctx, userID, isPremium)
		if err != nil {
			return Collection{}, err
		}
		if first == nil {
			// A concurrent action issued the starter between our read and
			// the locked check.
			if col, err = s.ListCards(ctx, userID); err != nil {
				return Collection{}, err
			}
		} else {
			col = collectionOf([]Card{*first})
		}
	}

	if !isPremium || col.Owns(models.PremiumStarterCardID) {
		return col, nil
	}

	premium, err := s.ReconcilePremiumCard(ctx, userID, isPremium)
	if err != nil {
		return Collection{}, err
	}
	if premium == nil {
		return s.ListCards(ctx, userID)
	}

	cards := make([]Card, 0, len(col.Cards)+1)
	for _, c := range col.Cards {
		c.IsDefault = false
		cards = append(cards, c)
	}
	return collectionOf(append(cards, *premium)), nil
}

// SetActiveCard moves the default flag to an owned card. Unknown rows are
// NOT_FOUND and the current default is CONFLICT; neither mutates anything.
func (s *service) SetActiveCard(ctx context.Context, userID, userCardID int64) (Card, error) {
	row, err := s.repository.SetDefault(ctx, userID, userCardID)
	if err != nil {
		return Card{}, errs.Wrap("cards.set_active_card", userID, err)
	}
	return fromUserCard(row), nil
}

// SetActiveCardByName switches to the owned card with the given sysname.
// When nothing matches, the NOT_FOUND error carries close owned sysnames.
func (s *service) SetActiveCardByName(ctx context.Context, userID int64, sysname string) (Card, error) {
	const op = "cards.set_active_card_by_name"
	sysname = strings.TrimSpace(sysname)
	if sysname == "" {
		return Card{}, errs.Validation(op, "card name is required")
	}

	col, err := s.ListCards(ctx, userID)
	if err != nil {
		return Card{}, err
	}

	target := findBySysname(col.Cards, sysname)
	if target == nil {
		return Card{}, errs.NotFound(op, userID, &NotOwnedError{
			Sysname:     sysname,
			Suggestions: suggest(col.Cards, sysname),
		})
	}
	if target.IsDefault {
		return Card{}, errs.Conflict(op, userID, errs.ErrAlreadyActive)
	}

	return s.SetActiveCard(ctx, userID, target.UserCardID)
}

func findBySysname(cards []Card, sysname string) *Card {
	for i := range cards {
		if cards[i].Sysname == sysname {
			return &cards[i]
		}
	}
	for i := range cards {
		if strings.EqualFold(cards[i].Sysname, sysname) {
			return &cards[i]
		}
	}
	return nil
}

type sysnames []Card

func (c sysnames) String(i int) string { return strings.ToLower(c[i].Sysname) }
func (c sysnames) Len() int            { return len(c) }

func suggest(cards []Card, query string) []string {
	matches := fuzzy.FindFrom(strings.ToLower(query), sysnames(cards))
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, cards[m.Index].Sysname)
	}
	return out
}

func (s *service) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, errs.Wrap("cards.catalog", 0, err)
	}

	entries := make([]CatalogEntry, 0, len(rows))
	for _, row := range rows {
		if row.IsSentinel() {
			continue
		}
		entries = append(entries, fromCatalog(row))
	}
	sortCatalog(entries)
	return entries, nil
}

// Available lists the cards a premium pull can produce, without the try
// again entry.
func (s *service) Available(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := s.repository.GetPullable(ctx, true)
	if err != nil {
		return nil, errs.Wrap("cards.available", 0, err)
	}

	entries := make([]CatalogEntry, 0, len(rows))
	for _, row := range rows {
		if row.IsSentinel() {
			continue
		}
		entries = append(entries, fromCatalog(row))
	}
	sortCatalog(entries)
	return entries, nil
}
