package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"

	"github.com/hashtag-app/backend/internal/auth"
	"github.com/hashtag-app/backend/internal/cache"
	"github.com/hashtag-app/backend/internal/models"
	"github.com/hashtag-app/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RecommendationLimit bounds the recommended-users result
const RecommendationLimit = 4

const userNameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// UserService implements account management, the social graph and
// OTP-based email verification
type UserService struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	notifications    *NotificationService
	mailer           Mailer
	store            cache.Store
	google           GoogleVerifier
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	notifications *NotificationService,
	mailer Mailer,
	store cache.Store,
	google GoogleVerifier,
) *UserService {
	return &UserService{
		userRepository:   userRepo,
		followRepository: followRepo,
		notifications:    notifications,
		mailer:           mailer,
		store:            store,
		google:           google,
	}
}

func generateUserName() string {
	name := make([]byte, 12)
	for i := range name {
		name[i] = userNameAlphabet[rand.Intn(len(userNameAlphabet))]
	}
	return string(name)
}

// VerifyGoogleToken validates a Google ID token, finds or creates the
// matching account by email and returns an app token for it
func (s *UserService) VerifyGoogleToken(ctx context.Context, token string) (string, error) {
	googleUser, err := s.google.Verify(ctx, token)
	if err != nil {
		return "", err
	}

	user, err := s.userRepository.GetUserByEmail(googleUser.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		user = &models.User{
			FirstName:     googleUser.GivenName,
			LastName:      googleUser.FamilyName,
			UserName:      generateUserName(),
			Email:         googleUser.Email,
			ProfilePicURL: googleUser.Picture,
		}
		if err := s.userRepository.CreateUser(user); err != nil {
			return "", err
		}
		s.mailer.SendAccountCreatedEmail(user)
	}

	return auth.GenerateUserToken(user)
}

// GetUserByID retrieves a user by ID, nil when absent
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return user, err
}

// GetUserByName retrieves a user by user name, nil when absent
func (s *UserService) GetUserByName(ctx context.Context, userName string) (*models.User, error) {
	user, err := s.userRepository.GetUserByUserName(userName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return user, err
}

// CheckUserName reports whether a user name is still available
func (s *UserService) CheckUserName(ctx context.Context, userName string) (bool, error) {
	_, err := s.userRepository.GetUserByUserName(userName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// CheckUserEmail reports whether an email is still available
func (s *UserService) CheckUserEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepository.GetUserByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// SearchUsers searches users by first name, last name or user name
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	return s.userRepository.SearchUsers(query)
}

// SignIn authenticates an email/password pair and returns an app token.
// Accounts created through Google sign-in carry no password hash and are
// rejected with ErrGoogleOnlyAccount.
func (s *UserService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if user.PasswordHash == "" {
		return "", ErrGoogleOnlyAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateUserToken(user)
}

// CreateUser registers a local account with a bcrypt password hash and
// sends the operator a best-effort notice
func (s *UserService) CreateUser(ctx context.Context, input models.CreateUserInput) error {
	_, err := s.userRepository.GetUserByEmail(input.Email)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		UserName:      input.UserName,
		Email:         input.Email,
		PasswordHash:  string(hash),
		ProfilePicURL: input.ProfilePicURL,
	}
	if err := s.userRepository.CreateUser(user); err != nil {
		return err
	}
	s.mailer.SendAccountCreatedEmail(user)
	return nil
}

// UpdateProfile applies a partial profile update
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input models.UpdateUserProfileInput) error {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return err
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.UserName != "" {
		user.UserName = input.UserName
	}
	if input.ProfilePicURL != "" {
		user.ProfilePicURL = input.ProfilePicURL
	}
	if input.CoverPicURL != "" {
		user.CoverPicURL = input.CoverPicURL
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	return s.userRepository.UpdateUser(user)
}

// Follow creates a directed edge from one user to another. Self-follow
// and repeated follows are rejected before any write. The target is
// notified and their cached notification list invalidated.
func (s *UserService) Follow(ctx context.Context, from, to string) error {
	if from == to {
		return ErrSelfFollow
	}
	following, err := s.followRepository.IsFollowing(from, to)
	if err != nil {
		return err
	}
	if following {
		return ErrAlreadyFollowing
	}
	if err := s.followRepository.CreateFollow(&models.Follow{FollowerID: from, FollowingID: to}); err != nil {
		// Concurrent duplicates lose to the composite unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return s.notifications.Notify(ctx, &models.Notification{
		Type:       models.NotificationFollow,
		SenderID:   from,
		ReceiverID: to,
	})
}

// Unfollow removes the edge from one user to another
func (s *UserService) Unfollow(ctx context.Context, from, to string) error {
	return s.followRepository.DeleteFollow(from, to)
}

// GetFollowers returns the users following the given user
func (s *UserService) GetFollowers(ctx context.Context, userID string) ([]models.User, error) {
	return s.followRepository.GetFollowers(userID)
}

// GetFollowing returns the users the given user follows
func (s *UserService) GetFollowing(ctx context.Context, userID string) ([]models.User, error) {
	return s.followRepository.GetFollowing(userID)
}

// Recommend returns up to four users the caller does not already follow,
// excluding the caller, in store order. Intentionally naive.
func (s *UserService) Recommend(ctx context.Context, userID string) ([]models.User, error) {
	users, err := s.userRepository.GetUsers()
	if err != nil {
		return nil, err
	}
	followingIDs, err := s.followRepository.GetFollowingIDs(userID)
	if err != nil {
		return nil, err
	}
	following := make(map[string]bool, len(followingIDs))
	for _, id := range followingIDs {
		following[id] = true
	}

	recommended := make([]models.User, 0, RecommendationLimit)
	for _, user := range users {
		if user.ID == userID || following[user.ID] {
			continue
		}
		recommended = append(recommended, user)
		if len(recommended) == RecommendationLimit {
			break
		}
	}
	return recommended, nil
}

// GetNotifications returns the caller's notification list through the cache
func (s *UserService) GetNotifications(ctx context.Context, userID string) ([]models.NotificationView, error) {
	return s.notifications.GetNotifications(ctx, userID)
}

// GenerateOTP stores a fresh verification code for the destination with a
// 10-minute expiry and emails it
func (s *UserService) GenerateOTP(ctx context.Context, to string) error {
	code := rand.Intn(10000-1001) + 1001
	if err := s.store.SetJSON(ctx, cache.SignUpOTPKey(to), code, cache.SignUpOTPTTL); err != nil {
		return err
	}
	return s.mailer.SendOTPEmail(to, code)
}

// VerifyOTP compares a submitted code against the stored one. A match
// consumes the code; a mismatch or an expired code reports false.
func (s *UserService) VerifyOTP(ctx context.Context, to string, otp int) (bool, error) {
	value, err := s.store.Get(ctx, cache.SignUpOTPKey(to))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return false, nil
		}
		return false, err
	}

	stored, err := strconv.Atoi(value)
	if err != nil {
		return false, fmt.Errorf("malformed OTP entry for %s: %w", to, err)
	}

	if stored != otp {
		return false, nil
	}
	if err := s.store.Del(ctx, cache.SignUpOTPKey(to)); err != nil {
		log.Printf("Failed to delete consumed OTP for %s: %v", to, err)
	}
	return true, nil
}
