package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hashtag-app/backend/internal/cache"
	"github.com/hashtag-app/backend/internal/models"
	"github.com/hashtag-app/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- fakes ---

type fakeStore struct {
	mu      sync.Mutex
	entries map[string]string
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]string)}
}

func (s *fakeStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return value, nil
}

func (s *fakeStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = string(raw)
	return nil
}

func (s *fakeStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
		s.deleted = append(s.deleted, key)
	}
	return nil
}

func (s *fakeStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

type fakeMailer struct {
	mu           sync.Mutex
	otpTo        []string
	otpCodes     []int
	accountMails int
	postMails    int
}

func (m *fakeMailer) SendOTPEmail(to string, code int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otpTo = append(m.otpTo, to)
	m.otpCodes = append(m.otpCodes, code)
	return nil
}

func (m *fakeMailer) SendAccountCreatedEmail(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountMails++
}

func (m *fakeMailer) SendPostCreatedEmail(post *models.Post) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postMails++
}

func (m *fakeMailer) lastOTP() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.otpCodes) == 0 {
		return 0
	}
	return m.otpCodes[len(m.otpCodes)-1]
}

type fakeGoogleVerifier struct {
	user *GoogleUser
	err  error
}

func (v *fakeGoogleVerifier) Verify(ctx context.Context, token string) (*GoogleUser, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.user, nil
}

// --- fixture ---

type fixture struct {
	db       *gorm.DB
	store    *fakeStore
	mailer   *fakeMailer
	google   *fakeGoogleVerifier
	posts    *PostService
	users    *UserService
	notifier *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Notification{},
	)
	require.NoError(t, err)

	store := newFakeStore()
	mailer := &fakeMailer{}
	google := &fakeGoogleVerifier{}

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	notifier := NewNotificationService(notificationRepo, store)

	return &fixture{
		db:       db,
		store:    store,
		mailer:   mailer,
		google:   google,
		posts:    NewPostService(postRepo, likeRepo, bookmarkRepo, notifier, mailer),
		users:    NewUserService(userRepo, followRepo, notifier, mailer, store, google),
		notifier: notifier,
	}
}

func (f *fixture) createUser(t *testing.T, userName string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: userName,
		UserName:  userName,
		Email:     userName + "@example.com",
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *fixture) createPost(t *testing.T, authorID, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}
	require.NoError(t, f.db.Create(post).Error)
	return post
}
