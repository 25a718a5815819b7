package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/hashtag-app/backend/internal/cache"
	"github.com/hashtag-app/backend/internal/models"
	"github.com/hashtag-app/backend/internal/repositories"
)

// NotificationService materializes per-user notification lists behind a
// read-through cache and invalidates them when new notifications arrive.
type NotificationService struct {
	notificationRepository repositories.NotificationRepository
	store                  cache.Store
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository, store cache.Store) *NotificationService {
	return &NotificationService{
		notificationRepository: notificationRepo,
		store:                  store,
	}
}

// Notify records a notification and invalidates the receiver's cached
// list so the next read repopulates fresh data. Cache failures are
// logged and never fail the triggering mutation.
func (s *NotificationService) Notify(ctx context.Context, notification *models.Notification) error {
	if err := s.notificationRepository.CreateNotification(notification); err != nil {
		return err
	}
	s.Invalidate(ctx, notification.ReceiverID)
	return nil
}

// Invalidate drops a user's cached notification list
func (s *NotificationService) Invalidate(ctx context.Context, userID string) {
	if err := s.store.Del(ctx, cache.NotificationKey(userID)); err != nil {
		log.Printf("Failed to invalidate notification cache for user %s: %v", userID, err)
	}
}

// GetNotifications returns all notifications addressed to a user, newest
// first. Served from the cache when present; a miss queries the store and
// repopulates the cache with a 24-hour expiry.
func (s *NotificationService) GetNotifications(ctx context.Context, userID string) ([]models.NotificationView, error) {
	key := cache.NotificationKey(userID)

	cached, err := s.store.Get(ctx, key)
	if err == nil {
		var views []models.NotificationView
		if err := json.Unmarshal([]byte(cached), &views); err == nil {
			return views, nil
		}
		// Undecodable entry, fall through to the store
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Notification cache read failed for user %s: %v", userID, err)
	}

	views, err := s.notificationRepository.GetByReceiverID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetJSON(ctx, key, views, cache.NotificationTTL); err != nil {
		log.Printf("Notification cache write failed for user %s: %v", userID, err)
	}
	return views, nil
}
