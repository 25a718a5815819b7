package repositories

import (
	"fmt"

	"github.com/hashtag-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(postID, userID string) error
	HasUserLikedPost(postID, userID string) (bool, error)
	GetCountsByPostIDs(postIDs []string) (map[string]int, error)
	GetUserLikedSet(userID string, postIDs []string) (map[string]bool, error)
	GetPostsLikedByUser(userID string) ([]models.Post, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like. The composite unique index on
// (post_id, user_id) rejects a concurrent duplicate.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like
func (r *PostgresLikeRepository) DeleteLike(postID, userID string) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetCountsByPostIDs returns like counts keyed by post ID for a batch of posts
func (r *PostgresLikeRepository) GetCountsByPostIDs(postIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID string
		N      int
	}
	err := r.db.Model(&models.Like{}).Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).Group("post_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	return counts, nil
}

// GetUserLikedSet returns, for a batch of posts, which of them the given
// user has liked
func (r *PostgresLikeRepository) GetUserLikedSet(userID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []string
	err := r.db.Model(&models.Like{}).Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// GetPostsLikedByUser retrieves the posts a user has liked, most recent
// like first
func (r *PostgresLikeRepository) GetPostsLikedByUser(userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
