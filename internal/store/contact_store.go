package store

import (
	"context"

	"messenger/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactStore struct{ db *gorm.DB }

func (s *Store) Contacts() *ContactStore { return &ContactStore{db: s.DB} }

// Add inserts the directed edge. A duplicate add is a no-op.
func (c *ContactStore) Add(ctx context.Context, edge domain.Contact) error {
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
}

// Remove deletes the directed edge. Removing an absent edge is a no-op.
func (c *ContactStore) Remove(ctx context.Context, ownerID, contactID uuid.UUID) error {
	return c.db.WithContext(ctx).
		Where("owner_id = ? AND contact_id = ?", ownerID, contactID).
		Delete(&domain.Contact{}).Error
}

// ListUsers returns the contact users for an owner, ordered by display name.
func (c *ContactStore) ListUsers(ctx context.Context, ownerID uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	err := c.db.WithContext(ctx).
		Model(&domain.User{}).
		Joins("JOIN contacts ON contacts.contact_id = users.id").
		Where("contacts.owner_id = ?", ownerID).
		Order("users.name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
