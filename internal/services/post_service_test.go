package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hashtag-app/backend/internal/cache"
	"github.com/hashtag-app/backend/internal/models"
	"github.com/hashtag-app/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Repositories that report the toggle row as absent, so the following
// insert collides with a committed duplicate the way a lost race does.
type blindLikeRepository struct {
	repositories.LikeRepository
}

func (blindLikeRepository) HasUserLikedPost(postID, userID string) (bool, error) {
	return false, nil
}

type blindBookmarkRepository struct {
	repositories.BookmarkRepository
}

func (blindBookmarkRepository) HasUserBookmarkedPost(postID, userID string) (bool, error) {
	return false, nil
}

func TestLikePost_CountsAndViewerFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	liker := f.createUser(t, "liker")
	other := f.createUser(t, "other")
	post := f.createPost(t, author.ID, "hello", time.Now())

	require.NoError(t, f.posts.LikePost(ctx, post.ID, liker.ID))

	view, err := f.posts.GetPostView(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.LikeCount)
	require.NotNil(t, view.IsLiked)
	assert.True(t, *view.IsLiked)

	view, err = f.posts.GetPostView(ctx, post.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.LikeCount)
	require.NotNil(t, view.IsLiked)
	assert.False(t, *view.IsLiked)

	// anonymous viewer still sees counts but no viewer flags
	view, err = f.posts.GetPostView(ctx, post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, view.LikeCount)
	assert.Nil(t, view.IsLiked)
	assert.Nil(t, view.IsBookmarked)
}

func TestLikePost_RepeatRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	liker := f.createUser(t, "liker")
	post := f.createPost(t, author.ID, "hello", time.Now())

	require.NoError(t, f.posts.LikePost(ctx, post.ID, liker.ID))
	assert.ErrorIs(t, f.posts.LikePost(ctx, post.ID, liker.ID), ErrAlreadyLiked)

	view, err := f.posts.GetPostView(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.LikeCount)
}

func TestLikePost_ConcurrentDuplicateLosesCleanly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	liker := f.createUser(t, "liker")
	post := f.createPost(t, author.ID, "hello", time.Now())
	require.NoError(t, f.db.Create(&models.Like{PostID: post.ID, UserID: liker.ID}).Error)

	racing := NewPostService(
		repositories.NewPostgresPostRepository(f.db),
		blindLikeRepository{repositories.NewPostgresLikeRepository(f.db)},
		repositories.NewPostgresBookmarkRepository(f.db),
		f.notifier,
		f.mailer,
	)
	assert.ErrorIs(t, racing.LikePost(ctx, post.ID, liker.ID), ErrAlreadyLiked)

	var count int64
	require.NoError(t, f.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookmarkPost_ConcurrentDuplicateLosesCleanly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	viewer := f.createUser(t, "viewer")
	post := f.createPost(t, author.ID, "hello", time.Now())
	require.NoError(t, f.db.Create(&models.Bookmark{PostID: post.ID, UserID: viewer.ID}).Error)

	racing := NewPostService(
		repositories.NewPostgresPostRepository(f.db),
		repositories.NewPostgresLikeRepository(f.db),
		blindBookmarkRepository{repositories.NewPostgresBookmarkRepository(f.db)},
		f.notifier,
		f.mailer,
	)
	assert.ErrorIs(t, racing.BookmarkPost(ctx, post.ID, viewer.ID), ErrAlreadyBookmarked)

	var count int64
	require.NoError(t, f.db.Model(&models.Bookmark{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUnlikePost_NotLiked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	viewer := f.createUser(t, "viewer")
	post := f.createPost(t, author.ID, "hello", time.Now())

	assert.ErrorIs(t, f.posts.UnlikePost(ctx, post.ID, viewer.ID), ErrNotLiked)

	require.NoError(t, f.posts.LikePost(ctx, post.ID, viewer.ID))
	require.NoError(t, f.posts.UnlikePost(ctx, post.ID, viewer.ID))
	assert.ErrorIs(t, f.posts.UnlikePost(ctx, post.ID, viewer.ID), ErrNotLiked)
}

func TestBookmarkToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	viewer := f.createUser(t, "viewer")
	post := f.createPost(t, author.ID, "hello", time.Now())

	require.NoError(t, f.posts.BookmarkPost(ctx, post.ID, viewer.ID))
	assert.ErrorIs(t, f.posts.BookmarkPost(ctx, post.ID, viewer.ID), ErrAlreadyBookmarked)

	view, err := f.posts.GetPostView(ctx, post.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.BookmarkCount)
	require.NotNil(t, view.IsBookmarked)
	assert.True(t, *view.IsBookmarked)

	require.NoError(t, f.posts.UnbookmarkPost(ctx, post.ID, viewer.ID))
	assert.ErrorIs(t, f.posts.UnbookmarkPost(ctx, post.ID, viewer.ID), ErrNotBookmarked)

	// bookmarks never notify the author
	notifications, err := f.notifier.GetNotifications(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestLikePost_NotifiesAuthorAndInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	liker := f.createUser(t, "liker")
	post := f.createPost(t, author.ID, "hello", time.Now())

	// pre-warm the cache so invalidation is observable
	key := cache.NotificationKey(author.ID)
	require.NoError(t, f.store.SetJSON(ctx, key, []models.NotificationView{}, time.Hour))

	require.NoError(t, f.posts.LikePost(ctx, post.ID, liker.ID))

	assert.False(t, f.store.has(key))

	notifications, err := f.notifier.GetNotifications(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationPostLike, notifications[0].Type)
	assert.Equal(t, liker.ID, notifications[0].SenderID)
	assert.Equal(t, author.ID, notifications[0].ReceiverID)
	require.NotNil(t, notifications[0].PostID)
	assert.Equal(t, post.ID, *notifications[0].PostID)
	assert.Equal(t, liker.UserName, notifications[0].Sender.UserName)
}

func TestLikePost_OwnPostNoNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	post := f.createPost(t, author.ID, "hello", time.Now())

	require.NoError(t, f.posts.LikePost(ctx, post.ID, author.ID))

	notifications, err := f.notifier.GetNotifications(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestLikePost_MissingPost(t *testing.T) {
	f := newFixture(t)
	viewer := f.createUser(t, "viewer")

	err := f.posts.LikePost(context.Background(), "no-such-post", viewer.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreateReply_NotifiesParentAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	replier := f.createUser(t, "replier")
	parent := f.createPost(t, author.ID, "parent", time.Now())

	reply, err := f.posts.CreateReply(ctx, replier.ID, models.CreateReplyInput{
		Content:  "nice one",
		ParentID: parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	notifications, err := f.notifier.GetNotifications(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationPostComment, notifications[0].Type)
	require.NotNil(t, notifications[0].PostID)
	assert.Equal(t, parent.ID, *notifications[0].PostID)
	require.NotNil(t, notifications[0].CommentID)
	assert.Equal(t, reply.ID, *notifications[0].CommentID)

	replies, err := f.posts.GetReplies(ctx, parent.ID, replier.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.ID, replies[0].ID)
}

func TestCreateReply_SelfReplyNoNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	parent := f.createPost(t, author.ID, "parent", time.Now())

	_, err := f.posts.CreateReply(ctx, author.ID, models.CreateReplyInput{
		Content:  "follow-up",
		ParentID: parent.ID,
	})
	require.NoError(t, err)

	notifications, err := f.notifier.GetNotifications(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestGetAllPosts_PaginationCompleteness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	total := PostsPerPage*2 + 5
	for i := 0; i < total; i++ {
		f.createPost(t, author.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	seen := make(map[string]bool)
	cursor := ""
	var pages int
	for {
		page, err := f.posts.GetAllPosts(ctx, "", cursor)
		require.NoError(t, err)
		pages++

		var prev *models.PostView
		for i := range page.Posts {
			post := page.Posts[i]
			assert.False(t, seen[post.ID], "post served twice: %s", post.ID)
			seen[post.ID] = true
			if prev != nil {
				assert.False(t, post.CreatedAt.After(prev.CreatedAt), "feed not descending")
			}
			prev = &page.Posts[i]
		}

		if page.NextID == nil {
			assert.Less(t, len(page.Posts), PostsPerPage)
			break
		}
		assert.Len(t, page.Posts, PostsPerPage)
		cursor = *page.NextID
	}

	assert.Equal(t, total, len(seen))
	assert.Equal(t, 3, pages)
}

func TestGetAllPosts_ExactPageMultiple(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < PostsPerPage; i++ {
		f.createPost(t, author.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	page, err := f.posts.GetAllPosts(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, page.Posts, PostsPerPage)
	require.NotNil(t, page.NextID)

	// the follow-up page is empty and terminates the walk
	page, err = f.posts.GetAllPosts(ctx, "", *page.NextID)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Nil(t, page.NextID)
}

func TestGetAllPosts_TimestampTiebreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	total := PostsPerPage + 3
	for i := 0; i < total; i++ {
		f.createPost(t, author.ID, fmt.Sprintf("post %d", i), at)
	}

	seen := make(map[string]bool)
	page, err := f.posts.GetAllPosts(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, page.Posts, PostsPerPage)
	for _, post := range page.Posts {
		seen[post.ID] = true
	}

	require.NotNil(t, page.NextID)
	page, err = f.posts.GetAllPosts(ctx, "", *page.NextID)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 3)
	for _, post := range page.Posts {
		assert.False(t, seen[post.ID], "post served twice across pages: %s", post.ID)
		seen[post.ID] = true
	}
	assert.Equal(t, total, len(seen))
}

func TestGetAllPosts_ExcludesReplies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	parent := f.createPost(t, author.ID, "parent", time.Now())
	_, err := f.posts.CreateReply(ctx, author.ID, models.CreateReplyInput{
		Content:  "reply",
		ParentID: parent.ID,
	})
	require.NoError(t, err)

	page, err := f.posts.GetAllPosts(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, parent.ID, page.Posts[0].ID)
}

func TestGetUserPosts_TopLevelOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	other := f.createUser(t, "other")
	post := f.createPost(t, author.ID, "mine", time.Now())
	f.createPost(t, other.ID, "theirs", time.Now())
	_, err := f.posts.CreateReply(ctx, author.ID, models.CreateReplyInput{
		Content:  "reply",
		ParentID: post.ID,
	})
	require.NoError(t, err)

	posts, err := f.posts.GetUserPosts(ctx, author.UserName, "")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
}

func TestGetLikedAndBookmarkedPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	viewer := f.createUser(t, "viewer")
	first := f.createPost(t, author.ID, "first", time.Now().Add(-time.Hour))
	second := f.createPost(t, author.ID, "second", time.Now())

	require.NoError(t, f.posts.LikePost(ctx, first.ID, viewer.ID))
	require.NoError(t, f.posts.BookmarkPost(ctx, second.ID, viewer.ID))

	liked, err := f.posts.GetLikedPosts(ctx, viewer.ID, viewer.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, first.ID, liked[0].ID)
	require.NotNil(t, liked[0].IsLiked)
	assert.True(t, *liked[0].IsLiked)

	bookmarked, err := f.posts.GetBookmarkedPosts(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, bookmarked, 1)
	assert.Equal(t, second.ID, bookmarked[0].ID)
	require.NotNil(t, bookmarked[0].IsBookmarked)
	assert.True(t, *bookmarked[0].IsBookmarked)
}

func TestGetPostsWithMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	withImage := &models.Post{Content: "pic", ImageURL: "https://cdn.example.com/a.png", AuthorID: author.ID}
	require.NoError(t, f.db.Create(withImage).Error)
	f.createPost(t, author.ID, "text only", time.Now())

	posts, err := f.posts.GetPostsWithMedia(ctx, author.ID, "")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, withImage.ID, posts[0].ID)
}

func TestSearchPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.createUser(t, "author")
	match := f.createPost(t, author.ID, "gophers at the beach", time.Now())
	f.createPost(t, author.ID, "nothing to see", time.Now())

	posts, err := f.posts.SearchPosts(ctx, "GOPHER")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, match.ID, posts[0].ID)
}

func TestCreatePost_SendsOperatorMail(t *testing.T) {
	f := newFixture(t)
	author := f.createUser(t, "author")

	post, err := f.posts.CreatePost(context.Background(), author.ID, models.CreatePostInput{Content: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Nil(t, post.ParentID)
	assert.Equal(t, 1, f.mailer.postMails)
}
