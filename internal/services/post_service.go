package services

import (
	"context"
	"errors"

	"github.com/hashtag-app/backend/internal/models"
	"github.com/hashtag-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostsPerPage is the fixed size of one feed page
const PostsPerPage = 20

// PostService implements the feed, engagement aggregation and the
// like/bookmark/reply mutations
type PostService struct {
	postRepository     repositories.PostRepository
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.BookmarkRepository
	notifications      *NotificationService
	mailer             Mailer
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	bookmarkRepo repositories.BookmarkRepository,
	notifications *NotificationService,
	mailer Mailer,
) *PostService {
	return &PostService{
		postRepository:     postRepo,
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
		notifications:      notifications,
		mailer:             mailer,
	}
}

// annotate joins engagement records to a batch of posts. Counts are
// computed from the underlying rows on every read. The viewer flags stay
// nil when viewerID is empty: "viewer context unknown", not "not liked".
func (s *PostService) annotate(posts []models.Post, viewerID string) ([]models.PostView, error) {
	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likeCounts, err := s.likeRepository.GetCountsByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	bookmarkCounts, err := s.bookmarkRepository.GetCountsByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}

	var likedSet, bookmarkedSet map[string]bool
	if viewerID != "" {
		likedSet, err = s.likeRepository.GetUserLikedSet(viewerID, postIDs)
		if err != nil {
			return nil, err
		}
		bookmarkedSet, err = s.bookmarkRepository.GetUserBookmarkedSet(viewerID, postIDs)
		if err != nil {
			return nil, err
		}
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		views[i] = models.PostView{
			Post:          p,
			LikeCount:     likeCounts[p.ID],
			BookmarkCount: bookmarkCounts[p.ID],
		}
		if viewerID != "" {
			liked := likedSet[p.ID]
			bookmarked := bookmarkedSet[p.ID]
			views[i].IsLiked = &liked
			views[i].IsBookmarked = &bookmarked
		}
	}
	return views, nil
}

// GetAllPosts returns one cursor page of top-level posts for the global
// feed, newest first. The cursor is the id of the last post of the
// previous page; NextID is set only when a full page came back, so a feed
// whose length is an exact multiple of the page size costs the client one
// extra empty fetch.
func (s *PostService) GetAllPosts(ctx context.Context, viewerID, cursor string) (*models.PostPage, error) {
	var after *models.Post
	if cursor != "" {
		cursorPost, err := s.postRepository.GetPostByID(cursor)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPostNotFound
			}
			return nil, err
		}
		after = cursorPost
	}

	posts, err := s.postRepository.GetTopLevelPosts(after, PostsPerPage)
	if err != nil {
		return nil, err
	}

	views, err := s.annotate(posts, viewerID)
	if err != nil {
		return nil, err
	}

	page := &models.PostPage{Posts: views}
	if len(posts) == PostsPerPage {
		last := posts[len(posts)-1].ID
		page.NextID = &last
	}
	return page, nil
}

// GetUserPosts returns the annotated top-level posts of the given author.
// Open to anonymous viewers.
func (s *PostService) GetUserPosts(ctx context.Context, userName, viewerID string) ([]models.PostView, error) {
	posts, err := s.postRepository.GetUserTopLevelPosts(userName)
	if err != nil {
		return nil, err
	}
	return s.annotate(posts, viewerID)
}

// GetPostView returns a single annotated post
func (s *PostService) GetPostView(ctx context.Context, postID, viewerID string) (*models.PostView, error) {
	post, err := s.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	views, err := s.annotate([]models.Post{*post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetReplies returns the annotated direct replies of a post, newest first
func (s *PostService) GetReplies(ctx context.Context, parentID, viewerID string) ([]models.PostView, error) {
	replies, err := s.postRepository.GetReplies(parentID)
	if err != nil {
		return nil, err
	}
	return s.annotate(replies, viewerID)
}

// SearchPosts searches post content. Results are bare posts without
// engagement annotation.
func (s *PostService) SearchPosts(ctx context.Context, query string) ([]models.Post, error) {
	return s.postRepository.SearchPosts(query)
}

// GetLikedPosts returns the posts a user has liked, annotated for the viewer
func (s *PostService) GetLikedPosts(ctx context.Context, userID, viewerID string) ([]models.PostView, error) {
	posts, err := s.likeRepository.GetPostsLikedByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.annotate(posts, viewerID)
}

// GetBookmarkedPosts returns the caller's bookmarked posts. Every entry is
// bookmarked by construction.
func (s *PostService) GetBookmarkedPosts(ctx context.Context, userID string) ([]models.PostView, error) {
	posts, err := s.bookmarkRepository.GetPostsBookmarkedByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.annotate(posts, userID)
}

// GetPostsWithMedia returns the image-carrying posts of an author,
// annotated for the viewer
func (s *PostService) GetPostsWithMedia(ctx context.Context, userID, viewerID string) ([]models.PostView, error) {
	posts, err := s.postRepository.GetPostsWithMedia(userID)
	if err != nil {
		return nil, err
	}
	return s.annotate(posts, viewerID)
}

// CreatePost creates a top-level post and sends the operator a
// best-effort notice
func (s *PostService) CreatePost(ctx context.Context, authorID string, input models.CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Content:  input.Content,
		ImageURL: input.ImageURL,
		AuthorID: authorID,
	}
	if err := s.postRepository.CreatePost(post); err != nil {
		return nil, err
	}
	s.mailer.SendPostCreatedEmail(post)
	return post, nil
}

// LikePost transitions (post, user) from absent to present. A repeated
// like fails with ErrAlreadyLiked rather than silently succeeding. Liking
// another user's post notifies the author and invalidates their cached
// notification list; a self-like never notifies.
func (s *PostService) LikePost(ctx context.Context, postID, userID string) error {
	post, err := s.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	liked, err := s.likeRepository.HasUserLikedPost(postID, userID)
	if err != nil {
		return err
	}
	if liked {
		return ErrAlreadyLiked
	}

	if err := s.likeRepository.CreateLike(&models.Like{PostID: postID, UserID: userID}); err != nil {
		// A concurrent like slipping in between the check and the insert
		// hits the composite unique index; the loser reports the same
		// conflict as a repeated like.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyLiked
		}
		return err
	}

	if post.AuthorID == userID {
		return nil
	}

	return s.notifications.Notify(ctx, &models.Notification{
		Type:       models.NotificationPostLike,
		SenderID:   userID,
		ReceiverID: post.AuthorID,
		PostID:     &post.ID,
	})
}

// UnlikePost transitions (post, user) from present to absent, failing
// with ErrNotLiked when no like exists
func (s *PostService) UnlikePost(ctx context.Context, postID, userID string) error {
	liked, err := s.likeRepository.HasUserLikedPost(postID, userID)
	if err != nil {
		return err
	}
	if !liked {
		return ErrNotLiked
	}
	return s.likeRepository.DeleteLike(postID, userID)
}

// BookmarkPost transitions (post, user) from absent to present, failing
// with ErrAlreadyBookmarked on a repeat
func (s *PostService) BookmarkPost(ctx context.Context, postID, userID string) error {
	bookmarked, err := s.bookmarkRepository.HasUserBookmarkedPost(postID, userID)
	if err != nil {
		return err
	}
	if bookmarked {
		return ErrAlreadyBookmarked
	}
	err = s.bookmarkRepository.CreateBookmark(&models.Bookmark{PostID: postID, UserID: userID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyBookmarked
	}
	return err
}

// UnbookmarkPost transitions (post, user) from present to absent, failing
// with ErrNotBookmarked when no bookmark exists
func (s *PostService) UnbookmarkPost(ctx context.Context, postID, userID string) error {
	bookmarked, err := s.bookmarkRepository.HasUserBookmarkedPost(postID, userID)
	if err != nil {
		return err
	}
	if !bookmarked {
		return ErrNotBookmarked
	}
	return s.bookmarkRepository.DeleteBookmark(postID, userID)
}

// CreateReply inserts a post whose ParentID references an existing post.
// When the replier is not the parent's author, the author is notified and
// their cached notification list invalidated.
func (s *PostService) CreateReply(ctx context.Context, userID string, input models.CreateReplyInput) (*models.Post, error) {
	parent, err := s.postRepository.GetPostByID(input.ParentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	reply := &models.Post{
		Content:  input.Content,
		ImageURL: input.ImageURL,
		AuthorID: userID,
		ParentID: &input.ParentID,
	}
	if err := s.postRepository.CreatePost(reply); err != nil {
		return nil, err
	}
	if parent.AuthorID == userID {
		return reply, nil
	}

	err = s.notifications.Notify(ctx, &models.Notification{
		Type:       models.NotificationPostComment,
		SenderID:   userID,
		ReceiverID: parent.AuthorID,
		PostID:     &parent.ID,
		CommentID:  &reply.ID,
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}
