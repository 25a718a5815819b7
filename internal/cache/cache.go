package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache key formats
const (
	notificationKeyFmt = "Notification:%s" // <userID>
	signUpOTPKeyFmt    = "SIGN_UP_OTP:%s"  // <destination email>
)

// Entry TTLs
const (
	NotificationTTL = 24 * time.Hour
	SignUpOTPTTL    = 10 * time.Minute
)

// Store is the minimal cache surface the services need. Entries are
// opaque blobs; there is no partial update.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = fmt.Errorf("cache: miss")

func NotificationKey(userID string) string {
	return fmt.Sprintf(notificationKeyFmt, userID)
}

func SignUpOTPKey(to string) string {
	return fmt.Sprintf(signUpOTPKeyFmt, to)
}
