package users

import (
	"context"
	"strings"

	"github.com/geekhub/mainframe/internal/domain/errs"
	"github.com/geekhub/mainframe/mainframe/database/models"
)

// PremiumRoles are the chat roles that make a viewer premium.
var PremiumRoles = []string{"VIP", "Subscriber", "Artist", "Moderator"}

// IsPremiumRoles reports whether any of the roles grants premium.
func IsPremiumRoles(roles []string) bool {
	for _, role := range roles {
		for _, premium := range PremiumRoles {
			if role == premium {
				return true
			}
		}
	}
	return false
}

type Service interface {
	ResolveOrCreate(ctx context.Context, identity models.Identity) (*models.User, error)
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	GetByTwitchID(ctx context.Context, twitchID string) (*models.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*models.User, error)
	Touch(ctx context.Context, userID int64, field models.ActivityField) error
	SetSubMonths(ctx context.Context, userID int64, months int) error
}

type service struct {
	repository Repository
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
	}
}

// ResolveOrCreate returns the user for a twitch id, registering them on
// first contact. The avatar is only replaced by a non-empty value and the
// premium flag only when the identity carries one.
func (s *service) ResolveOrCreate(ctx context.Context, identity models.Identity) (*models.User, error) {
	const op = "users.resolve_or_create"
	identity.TwitchID = strings.TrimSpace(identity.TwitchID)
	identity.DisplayName = strings.TrimSpace(identity.DisplayName)
	identity.Avatar = strings.TrimSpace(identity.Avatar)
	if identity.TwitchID == "" || identity.DisplayName == "" {
		return nil, errs.Validation(op, "twitch id and display name are required")
	}

	user, err := s.repository.ResolveOrCreate(ctx, identity)
	if err != nil {
		return nil, errs.Wrap(op, 0, err)
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, errs.Validation("users.get_by_id", "user id is required")
	}
	user, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		return nil, errs.Wrap("users.get_by_id", userID, err)
	}
	return user, nil
}

func (s *service) GetByTwitchID(ctx context.Context, twitchID string) (*models.User, error) {
	twitchID = strings.TrimSpace(twitchID)
	if twitchID == "" {
		return nil, errs.Validation("users.get_by_twitch_id", "twitch id is required")
	}
	user, err := s.repository.GetByTwitchID(ctx, twitchID)
	if err != nil {
		return nil, errs.Wrap("users.get_by_twitch_id", 0, err)
	}
	return user, nil
}

func (s *service) GetByDisplayName(ctx context.Context, displayName string) (*models.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, errs.Validation("users.get_by_display_name", "display name is required")
	}
	user, err := s.repository.GetByDisplayName(ctx, displayName)
	if err != nil {
		return nil, errs.Wrap("users.get_by_display_name", 0, err)
	}
	return user, nil
}

func (s *service) Touch(ctx context.Context, userID int64, field models.ActivityField) error {
	if err := s.repository.Touch(ctx, userID, field); err != nil {
		return errs.Wrap("users.touch", userID, err)
	}
	return nil
}

func (s *service) SetSubMonths(ctx context.Context, userID int64, months int) error {
	const op = "users.set_sub_months"
	if months < 0 {
		return errs.Validation(op, "sub months must not be negative")
	}
	if err := s.repository.SetSubMonths(ctx, userID, months); err != nil {
		return errs.Wrap(op, userID, err)
	}
	return nil
}
