// File: utils/auth_session.go
package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// Session TTL matches the JWT lifetime.
const SessionTTL = 7 * 24 * time.Hour

// SaveSessionToken stores the hash of a user's active token in Redis.
// A token presented later is only honored while its hash is still stored,
// which is what makes logout an actual revocation.
func SaveSessionToken(client *redis.Client, userID, token string) error {
	ctx := context.Background()
	return client.Set(ctx, sessionPrefix+userID, HashToken(token), SessionTTL).Err()
}

// CheckSessionToken reports whether the presented token is the user's
// current session token.
func CheckSessionToken(client *redis.Client, userID, token string) (bool, error) {
	ctx := context.Background()
	stored, err := client.Get(ctx, sessionPrefix+userID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == HashToken(token), nil
}

// RevokeSessionToken removes the user's active session.
func RevokeSessionToken(client *redis.Client, userID string) error {
	ctx := context.Background()
	return client.Del(ctx, sessionPrefix+userID).Err()
}
