package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	UserName      string    `json:"userName" gorm:"uniqueIndex"` // Ensure user names are unique across all users
	Email         string    `json:"email" gorm:"uniqueIndex"`    // Ensure email is unique across all users
	PasswordHash  string    `json:"-"`                           // Empty for accounts created through Google sign-in
	ProfilePicURL string    `json:"profilePicUrl"`
	CoverPicURL   string    `json:"coverPicUrl"`
	Bio           string    `json:"bio"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none was provided
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserSummary is the compact sender representation embedded in notifications
type UserSummary struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	UserName      string `json:"userName"`
	ProfilePicURL string `json:"profilePicUrl"`
}

// ToSummary converts a User to its compact representation
func (u *User) ToSummary() UserSummary {
	return UserSummary{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		UserName:      u.UserName,
		ProfilePicURL: u.ProfilePicURL,
	}
}

// CreateUserInput defines the payload for the createUser mutation
type CreateUserInput struct {
	FirstName     string `json:"firstName" validate:"required,min=1,max=50"`
	LastName      string `json:"lastName" validate:"omitempty,max=50"`
	UserName      string `json:"userName" validate:"required,min=3,max=30"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	ProfilePicURL string `json:"profilePicUrl" validate:"omitempty,url"`
}

// UpdateUserProfileInput defines the payload for the updateUserProfile mutation
type UpdateUserProfileInput struct {
	FirstName     string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName      string `json:"lastName" validate:"omitempty,max=50"`
	UserName      string `json:"userName" validate:"omitempty,min=3,max=30"`
	ProfilePicURL string `json:"profilePicUrl" validate:"omitempty,url"`
	CoverPicURL   string `json:"coverPicUrl" validate:"omitempty,url"`
	Bio           string `json:"bio" validate:"omitempty,max=280"`
}
