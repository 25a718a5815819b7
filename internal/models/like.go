package models

import "time"

// Like records one user's like of one post
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"postId" gorm:"size:36;index;uniqueIndex:idx_like_post_user"`
	UserID    string    `json:"userId" gorm:"size:36;index;uniqueIndex:idx_like_post_user"`
	CreatedAt time.Time `json:"createdAt"`
}
