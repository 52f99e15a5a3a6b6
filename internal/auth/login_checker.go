package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// LoginChecker resolves a session token to the user behind it.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// UserID returns the user behind the token, or ErrNotLoggedIn when the
// session is unknown or expired.
func (lc *LoginChecker) UserID(ctx context.Context, token string) (int64, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := lc.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotLoggedIn
		}
		return 0, err
	}

	userID, createdAt, err := parseSessionValue(cmd.Val())
	if err != nil {
		return 0, err
	}

	sessionDuration := time.Since(createdAt)
	if sessionDuration > lc.ttl {
		return 0, ErrNotLoggedIn
	}

	return userID, nil
}
