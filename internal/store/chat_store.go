package store

import (
	"context"

	"messenger/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatStore struct{ db *gorm.DB }

func (s *Store) Chats() *ChatStore { return &ChatStore{db: s.DB} }

func (c *ChatStore) Get(ctx context.Context, id uuid.UUID) (*domain.Chat, error) {
	var chat domain.Chat
	if err := c.db.WithContext(ctx).First(&chat, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// GetByDirectKey looks up the 1:1 chat for a normalized member pair.
func (c *ChatStore) GetByDirectKey(ctx context.Context, key string) (*domain.Chat, error) {
	var chat domain.Chat
	if err := c.db.WithContext(ctx).First(&chat, "direct_key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// CreateDirect inserts a 1:1 chat. The unique index on direct_key makes the
// insert lose quietly when a concurrent transaction created the same pair
// first; created reports whether this call inserted the row.
func (c *ChatStore) CreateDirect(ctx context.Context, chat *domain.Chat) (created bool, err error) {
	if chat.ID == uuid.Nil {
		chat.ID = uuid.New()
	}
	res := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "direct_key"}},
			DoNothing: true,
		}).
		Create(chat)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (c *ChatStore) AddMembers(ctx context.Context, chatID uuid.UUID, userIDs ...uuid.UUID) error {
	members := make([]domain.ChatMember, 0, len(userIDs))
	for _, id := range userIDs {
		members = append(members, domain.ChatMember{ChatID: chatID, UserID: id})
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&members).Error
}

func (c *ChatStore) IsMember(ctx context.Context, chatID, userID uuid.UUID) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&domain.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser returns every chat the user belongs to, unordered; the service
// layer sorts summaries by last-message recency.
func (c *ChatStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := c.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Joins("JOIN chat_members ON chat_members.chat_id = chats.id").
		Where("chat_members.user_id = ?", userID).
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}
