package repositories

import (
	"fmt"

	"github.com/hashtag-app/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	CreateBookmark(bookmark *models.Bookmark) error
	DeleteBookmark(postID, userID string) error
	HasUserBookmarkedPost(postID, userID string) (bool, error)
	GetCountsByPostIDs(postIDs []string) (map[string]int, error)
	GetUserBookmarkedSet(userID string, postIDs []string) (map[string]bool, error)
	GetPostsBookmarkedByUser(userID string) ([]models.Post, error)
}

// PostgresBookmarkRepository implements BookmarkRepository for PostgreSQL
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

// CreateBookmark creates a new bookmark
func (r *PostgresBookmarkRepository) CreateBookmark(bookmark *models.Bookmark) error {
	return r.db.Create(bookmark).Error
}

// DeleteBookmark deletes a bookmark
func (r *PostgresBookmarkRepository) DeleteBookmark(postID, userID string) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("bookmark not found")
	}
	return nil
}

// HasUserBookmarkedPost checks if a user has bookmarked a specific post
func (r *PostgresBookmarkRepository) HasUserBookmarkedPost(postID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Bookmark{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetCountsByPostIDs returns bookmark counts keyed by post ID for a batch of posts
func (r *PostgresBookmarkRepository) GetCountsByPostIDs(postIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID string
		N      int
	}
	err := r.db.Model(&models.Bookmark{}).Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).Group("post_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	return counts, nil
}

// GetUserBookmarkedSet returns, for a batch of posts, which of them the
// given user has bookmarked
func (r *PostgresBookmarkRepository) GetUserBookmarkedSet(userID string, postIDs []string) (map[string]bool, error) {
	bookmarked := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return bookmarked, nil
	}
	var ids []string
	err := r.db.Model(&models.Bookmark{}).Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		bookmarked[id] = true
	}
	return bookmarked, nil
}

// GetPostsBookmarkedByUser retrieves the posts a user has bookmarked, most
// recent bookmark first
func (r *PostgresBookmarkRepository) GetPostsBookmarkedByUser(userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
