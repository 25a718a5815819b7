package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a post or a reply. A reply is a post whose ParentID
// references another post; the chain may nest arbitrarily.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	AuthorID  string    `json:"authorId" gorm:"size:36;index"`
	ParentID  *string   `json:"parentId" gorm:"size:36;index"` // nil for top-level posts
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author  *User  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Parent  *Post  `json:"-" gorm:"foreignKey:ParentID"`
	Replies []Post `json:"-" gorm:"foreignKey:ParentID"`
}

// BeforeCreate assigns a UUID primary key when none was provided
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostView is a post annotated with viewer-dependent engagement info.
// IsLiked/IsBookmarked stay nil when there is no viewer context.
type PostView struct {
	Post
	IsLiked       *bool `json:"isLiked,omitempty"`
	IsBookmarked  *bool `json:"isBookmarked,omitempty"`
	LikeCount     int   `json:"likeCount"`
	BookmarkCount int   `json:"bookmarkCount"`
}

// PostPage is one cursor page of the global feed
type PostPage struct {
	Posts  []PostView `json:"posts"`
	NextID *string    `json:"nextId,omitempty"`
}

// CreatePostInput defines the payload for the createPost mutation
type CreatePostInput struct {
	Content  string `json:"content" validate:"required,min=1,max=280"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

// CreateReplyInput defines the payload for the createReply mutation
type CreateReplyInput struct {
	Content  string `json:"content" validate:"required,min=1,max=280"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
	ParentID string `json:"parentId" validate:"required"`
}
