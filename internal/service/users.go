package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"messenger/internal/domain"
	"messenger/internal/dto"
	"messenger/internal/store"
)

// SignIn resolves a user by phone, creating the account on first contact.
// For an existing user the stored name and status stay authoritative; only
// the presence fields are refreshed.
func (s *Service) SignIn(ctx context.Context, phone, name string) (dto.UserView, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if phone == "" {
		return dto.UserView{}, fmt.Errorf("%w: phone is required", ErrInvalidRequest)
	}

	existing, err := s.store.Users().GetByPhone(ctx, phone)
	switch {
	case err == nil:
		now := s.now().UTC()
		if err := s.store.Users().TouchPresence(ctx, existing.ID, now); err != nil {
			return dto.UserView{}, err
		}
		existing.Online = true
		existing.LastSeen = &now
		return userView(existing), nil
	case errors.Is(err, store.ErrRecordNotFound):
		user := &domain.User{
			Phone:  phone,
			Name:   name,
			Online: true,
		}
		if user.Name == "" {
			user.Name = placeholderName(phone)
		}
		if err := s.store.Users().Create(ctx, user); err != nil {
			return dto.UserView{}, err
		}
		return userView(user), nil
	default:
		return dto.UserView{}, err
	}
}

// SearchByPhone is an exact-match public lookup.
func (s *Service) SearchByPhone(ctx context.Context, phone string) (dto.UserView, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return dto.UserView{}, fmt.Errorf("%w: phone is required", ErrInvalidRequest)
	}
	user, err := s.store.Users().GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.UserView{}, ErrUserNotFound
		}
		return dto.UserView{}, err
	}
	return userView(user), nil
}

// placeholderName derives a default display name from the phone's last four
// digits.
func placeholderName(phone string) string {
	tail := phone
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return "User " + tail
}
