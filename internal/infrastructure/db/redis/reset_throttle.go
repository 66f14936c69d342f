package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultThrottleWindow = time.Minute

// ResetThrottle allows one reset email per address per window.
// Key format: reset:throttle:<sha256(email)>
type ResetThrottle struct {
	client *redis.Client
	window time.Duration
}

func NewResetThrottle(client *redis.Client, window time.Duration) *ResetThrottle {
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &ResetThrottle{client: client, window: window}
}

// Allow claims the window for email. It returns false while a previous claim
// is still live.
func (t *ResetThrottle) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(email), "1", t.window).Result()
	if err != nil {
		return false, fmt.Errorf("reset throttle: %w", err)
	}
	return ok, nil
}

// The address is hashed so that no plaintext email lands in Redis.
func (t *ResetThrottle) key(email string) string {
	sum := sha256.Sum256([]byte(email))
	return "reset:throttle:" + hex.EncodeToString(sum[:])
}
