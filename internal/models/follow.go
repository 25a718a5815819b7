package models

import "time"

// Follow represents a directed follower/following edge
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"followerId" gorm:"size:36;index;uniqueIndex:idx_follower_following"`
	FollowingID string    `json:"followingId" gorm:"size:36;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"createdAt"`
}
