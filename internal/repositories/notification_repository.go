package repositories

import (
	"github.com/hashtag-app/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByReceiverID(receiverID string) ([]models.NotificationView, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByReceiverID retrieves all notifications addressed to a user, each
// joined with a compact sender summary, newest first
func (r *postgresNotificationRepository) GetByReceiverID(receiverID string) ([]models.NotificationView, error) {
	var notifications []models.Notification
	err := r.db.Preload("Sender").
		Where("receiver_id = ?", receiverID).
		Order("timestamp DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = models.NotificationView{
			ID:         n.ID,
			Type:       n.Type,
			SenderID:   n.SenderID,
			ReceiverID: n.ReceiverID,
			PostID:     n.PostID,
			CommentID:  n.CommentID,
			Timestamp:  n.Timestamp,
		}
		if n.Sender != nil {
			views[i].Sender = n.Sender.ToSummary()
		}
	}
	return views, nil
}
