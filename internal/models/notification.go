package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationPostLike    = "POST_LIKE"
	NotificationPostComment = "POST_COMMENT"
	NotificationFollow      = "FOLLOW"
)

// Notification is created as a side effect of like/reply/follow mutations
// when the actor differs from the target. Never mutated after creation.
type Notification struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Type       string    `json:"type" gorm:"size:30;index"`
	SenderID   string    `json:"senderId" gorm:"size:36;index"`
	ReceiverID string    `json:"receiverId" gorm:"size:36;index"`
	PostID     *string   `json:"postId,omitempty" gorm:"size:36"`
	CommentID  *string   `json:"commentId,omitempty" gorm:"size:36"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`

	Sender *User `json:"-" gorm:"foreignKey:SenderID"`
}

// BeforeCreate assigns a UUID primary key and a timestamp when missing
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	return nil
}

// NotificationView is the shape served to clients and cached in redis:
// the notification joined with a compact sender summary.
type NotificationView struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	SenderID   string      `json:"senderId"`
	ReceiverID string      `json:"receiverId"`
	PostID     *string     `json:"postId,omitempty"`
	CommentID  *string     `json:"commentId,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Sender     UserSummary `json:"sender"`
}
