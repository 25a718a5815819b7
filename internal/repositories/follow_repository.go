package repositories

import (
	"fmt"

	"github.com/hashtag-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID string) error
	IsFollowing(followerID, followingID string) (bool, error)
	GetFollowers(userID string) ([]models.User, error)
	GetFollowing(userID string) ([]models.User, error)
	GetFollowingIDs(userID string) ([]string, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID string) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow relationship not found")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("follower_id").Where("following_id = ?", userID),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowing(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}
