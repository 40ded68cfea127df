package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"messenger/internal/domain"
	"messenger/internal/dto"
	"messenger/internal/store"

	"github.com/google/uuid"
)

// CreateDirectChat returns the 1:1 chat for the requester and contact,
// creating it when absent. The lookup and the create run in one transaction;
// the unique index on chats.direct_key is the backstop against two
// concurrent callers both observing "not found". Symmetric and idempotent:
// (A, B) and (B, A) always resolve to the same chat id.
func (s *Service) CreateDirectChat(ctx context.Context, requesterID uuid.UUID, contactID string) (uuid.UUID, error) {
	cid, err := parseContactID(contactID)
	if err != nil {
		return uuid.Nil, err
	}
	if cid == requesterID {
		return uuid.Nil, fmt.Errorf("%w: cannot create a chat with yourself", ErrInvalidRequest)
	}

	key := domain.DirectKey(requesterID, cid)
	var chatID uuid.UUID
	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		existing, err := tx.Chats().GetByDirectKey(ctx, key)
		if err == nil {
			chatID = existing.ID
			return nil
		}
		if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		contact, err := tx.Users().GetByID(ctx, cid)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		name := contact.Name
		if name == "" {
			name = fallbackChatName
		}

		chat := &domain.Chat{Name: name, IsGroup: false, DirectKey: &key}
		created, err := tx.Chats().CreateDirect(ctx, chat)
		if err != nil {
			return err
		}
		if !created {
			// A concurrent transaction won the insert; adopt its chat.
			winner, err := tx.Chats().GetByDirectKey(ctx, key)
			if err != nil {
				return err
			}
			chatID = winner.ID
			return nil
		}
		if err := tx.Chats().AddMembers(ctx, chat.ID, requesterID, cid); err != nil {
			return err
		}
		chatID = chat.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return chatID, nil
}

// ListChats returns every chat the user belongs to, each annotated with its
// most recent message, ordered most-recent first. Chats without messages
// sort last and render empty strings, not nulls.
func (s *Service) ListChats(ctx context.Context, userID uuid.UUID) ([]dto.ChatSummary, error) {
	chats, err := s.store.Chats().ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	type annotated struct {
		summary dto.ChatSummary
		lastAt  *time.Time
	}
	items := make([]annotated, 0, len(chats))
	for i := range chats {
		chat := &chats[i]
		name := chat.Name
		if name == "" {
			name = fallbackChatName
		}
		sum := dto.ChatSummary{
			ID:      chat.ID.String(),
			Name:    name,
			IsGroup: chat.IsGroup,
		}
		last, err := s.store.Messages().Latest(ctx, chat.ID)
		if err != nil {
			return nil, err
		}
		var lastAt *time.Time
		if last != nil {
			at := last.CreatedAt
			lastAt = &at
			sum.LastMessage = last.Text
			sum.Time = clockTime(&at)
		}
		items = append(items, annotated{summary: sum, lastAt: lastAt})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].lastAt, items[j].lastAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	out := make([]dto.ChatSummary, 0, len(items))
	for _, it := range items {
		out = append(out, it.summary)
	}
	return out, nil
}

// ListMessages returns a chat's messages in ascending creation order. The
// caller must be a member of the chat.
func (s *Service) ListMessages(ctx context.Context, callerID uuid.UUID, chatID string) ([]dto.MessageView, error) {
	cid, err := s.authorizeChatAccess(ctx, callerID, chatID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.store.Messages().ListForChat(ctx, cid)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageView, 0, len(msgs))
	for i := range msgs {
		m := &msgs[i]
		name := m.SenderName
		if name == "" {
			name = fallbackUserName
		}
		at := m.CreatedAt
		out = append(out, dto.MessageView{
			ID:         m.ID.String(),
			Text:       m.Text,
			SenderID:   m.SenderID.String(),
			SenderName: name,
			Time:       clockTime(&at),
		})
	}
	return out, nil
}

// SendMessage appends one message to the chat. The sender must be a member.
func (s *Service) SendMessage(ctx context.Context, senderID uuid.UUID, chatID, text string) (dto.SendMessageResponse, error) {
	if text == "" {
		return dto.SendMessageResponse{}, fmt.Errorf("%w: text is required", ErrInvalidRequest)
	}
	cid, err := s.authorizeChatAccess(ctx, senderID, chatID)
	if err != nil {
		return dto.SendMessageResponse{}, err
	}
	msg := &domain.Message{
		ChatID:    cid,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Messages().Create(ctx, msg); err != nil {
		return dto.SendMessageResponse{}, err
	}
	at := msg.CreatedAt
	return dto.SendMessageResponse{ID: msg.ID.String(), Time: clockTime(&at)}, nil
}

// authorizeChatAccess parses the chat id, confirms the chat exists and that
// the caller belongs to it.
func (s *Service) authorizeChatAccess(ctx context.Context, callerID uuid.UUID, chatID string) (uuid.UUID, error) {
	if chatID == "" {
		return uuid.Nil, fmt.Errorf("%w: chat_id is required", ErrInvalidRequest)
	}
	cid, err := uuid.Parse(chatID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid chat_id", ErrInvalidRequest)
	}
	if _, err := s.store.Chats().Get(ctx, cid); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return uuid.Nil, ErrChatNotFound
		}
		return uuid.Nil, err
	}
	member, err := s.store.Chats().IsMember(ctx, cid, callerID)
	if err != nil {
		return uuid.Nil, err
	}
	if !member {
		return uuid.Nil, ErrNotChatMember
	}
	return cid, nil
}
