package store

import (
	"context"

	"messenger/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageStore struct{ db *gorm.DB }

func (s *Store) Messages() *MessageStore { return &MessageStore{db: s.DB} }

func (m *MessageStore) Create(ctx context.Context, msg *domain.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	return m.db.WithContext(ctx).Create(msg).Error
}

// MessageWithSender pairs a message row with its sender's display name.
type MessageWithSender struct {
	domain.Message
	SenderName string
}

// ListForChat returns all messages for a chat in ascending creation order,
// ties broken by id.
func (m *MessageStore) ListForChat(ctx context.Context, chatID uuid.UUID) ([]MessageWithSender, error) {
	var msgs []MessageWithSender
	err := m.db.WithContext(ctx).
		Model(&domain.Message{}).
		Select("messages.*, users.name AS sender_name").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.chat_id = ?", chatID).
		Order("messages.created_at ASC, messages.id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Latest returns the most recent message in a chat, or nil when the chat has
// no messages.
func (m *MessageStore) Latest(ctx context.Context, chatID uuid.UUID) (*domain.Message, error) {
	var msg domain.Message
	err := m.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}
