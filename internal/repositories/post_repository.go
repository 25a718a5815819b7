package repositories

import (
	"github.com/hashtag-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id string) (*models.Post, error)
	GetTopLevelPosts(after *models.Post, limit int) ([]models.Post, error)
	GetUserTopLevelPosts(userName string) ([]models.Post, error)
	GetReplies(parentID string) ([]models.Post, error)
	SearchPosts(query string) ([]models.Post, error)
	GetPostsWithMedia(authorID string) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post (or reply, when ParentID is set)
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetTopLevelPosts returns one page of top-level posts ordered by
// created_at descending with id as a deterministic tiebreak. When after
// is non-nil only rows strictly past that post in the ordering are
// returned, so repeated pages never duplicate or skip a row.
func (r *PostgresPostRepository) GetTopLevelPosts(after *models.Post, limit int) ([]models.Post, error) {
	q := r.db.Where("parent_id IS NULL")
	if after != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", after.CreatedAt, after.CreatedAt, after.ID)
	}
	var posts []models.Post
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetUserTopLevelPosts retrieves the top-level posts of the user with the
// given user name, newest first
func (r *PostgresPostRepository) GetUserTopLevelPosts(userName string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("parent_id IS NULL AND author_id IN (?)",
		r.db.Model(&models.User{}).Select("id").Where("user_name = ?", userName),
	).Order("created_at DESC, id DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetReplies retrieves the direct replies of a post, newest first
func (r *PostgresPostRepository) GetReplies(parentID string) ([]models.Post, error) {
	var replies []models.Post
	err := r.db.Where("parent_id = ?", parentID).
		Order("created_at DESC, id DESC").Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// SearchPosts searches post content (case-insensitive)
func (r *PostgresPostRepository) SearchPosts(query string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("LOWER(content) LIKE LOWER(?)", "%"+query+"%").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsWithMedia retrieves the posts of an author that carry an image,
// newest first
func (r *PostgresPostRepository) GetPostsWithMedia(authorID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("author_id = ? AND image_url <> ''", authorID).
		Order("created_at DESC, id DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
