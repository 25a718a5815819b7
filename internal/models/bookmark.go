package models

import "time"

// Bookmark represents a bookmarked/saved post by a user
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"postId" gorm:"size:36;index;uniqueIndex:idx_bookmark_post_user"`
	UserID    string    `json:"userId" gorm:"size:36;index;uniqueIndex:idx_bookmark_post_user"`
	CreatedAt time.Time `json:"createdAt"`
}
