package service

import (
	"time"

	"messenger/internal/domain"
	"messenger/internal/dto"
	"messenger/internal/store"
)

const (
	fallbackUserName = "No name"
	fallbackChatName = "Chat"
)

type Service struct {
	store *store.Store
	now   func() time.Time
}

func New(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

func userView(u *domain.User) dto.UserView {
	name := u.Name
	if name == "" {
		name = fallbackUserName
	}
	return dto.UserView{
		ID:     u.ID.String(),
		Phone:  u.Phone,
		Name:   name,
		Status: u.Status,
		Online: u.Online,
	}
}

// clockTime renders a timestamp the way clients display it: 24-hour
// hour:minute, empty string when absent.
func clockTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}
