package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Phone     string     `gorm:"type:text;not null;uniqueIndex:ux_users_phone"`
	Name      string     `gorm:"type:text"`
	Status    string     `gorm:"type:text"`
	Online    bool       `gorm:"not null;default:false"`
	LastSeen  *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime"`
}

func (User) TableName() string { return "users" }

// Contact is a directed "owner added contact" edge. A having B as a
// contact does not imply the reverse.
type Contact struct {
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContactID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

func (Contact) TableName() string { return "contacts" }

// Chat is either a 1:1 chat or a group. For 1:1 chats DirectKey holds the
// normalized "minID:maxID" member pair; the unique index on it is what keeps
// the pair unique under concurrent creation. Groups carry a NULL key.
type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:text"`
	IsGroup   bool      `gorm:"not null;default:false"`
	DirectKey *string   `gorm:"type:text;uniqueIndex:ux_chats_direct_key"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

func (Chat) TableName() string { return "chats" }

type ChatMember struct {
	ChatID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ChatMember) TableName() string { return "chat_members" }

type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatID    uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_chat_created,priority:1"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_chat_created,priority:2"`
}

func (Message) TableName() string { return "messages" }

// DirectKey normalizes an unordered user pair into the key stored on 1:1
// chats. Symmetric: DirectKey(a, b) == DirectKey(b, a).
func DirectKey(a, b uuid.UUID) string {
	if b.String() < a.String() {
		a, b = b, a
	}
	return a.String() + ":" + b.String()
}
