package service

import (
	"context"
	"errors"
	"fmt"

	"messenger/internal/domain"
	"messenger/internal/dto"
	"messenger/internal/store"

	"github.com/google/uuid"
)

func (s *Service) ListContacts(ctx context.Context, ownerID uuid.UUID) ([]dto.UserView, error) {
	users, err := s.store.Contacts().ListUsers(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserView, 0, len(users))
	for i := range users {
		out = append(out, userView(&users[i]))
	}
	return out, nil
}

// AddContact records the directed edge owner -> contact. Adding an existing
// contact is a silent success.
func (s *Service) AddContact(ctx context.Context, ownerID uuid.UUID, contactID string) error {
	cid, err := parseContactID(contactID)
	if err != nil {
		return err
	}
	if cid == ownerID {
		return fmt.Errorf("%w: cannot add yourself as a contact", ErrInvalidRequest)
	}
	if _, err := s.store.Users().GetByID(ctx, cid); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.store.Contacts().Add(ctx, domain.Contact{OwnerID: ownerID, ContactID: cid})
}

// RemoveContact deletes the directed edge. Removing an absent contact is a
// silent success.
func (s *Service) RemoveContact(ctx context.Context, ownerID uuid.UUID, contactID string) error {
	cid, err := parseContactID(contactID)
	if err != nil {
		return err
	}
	return s.store.Contacts().Remove(ctx, ownerID, cid)
}

func parseContactID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: contact_id is required", ErrInvalidRequest)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid contact_id", ErrInvalidRequest)
	}
	return id, nil
}
