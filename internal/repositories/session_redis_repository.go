package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keySession maps a token ID to the signed-in user: session:{id} -> user id.
const keySession = "session:%s"

// RedisSessionRepository stores sessions in Redis so every instance sees logouts.
type RedisSessionRepository struct {
	rdb     *redis.Client
	timeout time.Duration
}

// NewRedisClient connects to Redis at addr.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// NewRedisSessionRepository creates a new instance of RedisSessionRepository.
func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, timeout: 2 * time.Second}
}

// Save stores the session with the token TTL.
func (r *RedisSessionRepository) Save(sessionID, userID string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.rdb.Set(ctx, fmt.Sprintf(keySession, sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetUserID looks the session up; Redis expiry handles stale sessions.
func (r *RedisSessionRepository) GetUserID(sessionID string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	userID, err := r.rdb.Get(ctx, fmt.Sprintf(keySession, sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("session %s %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return userID, nil
}

// Delete revokes the session.
func (r *RedisSessionRepository) Delete(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.rdb.Del(ctx, fmt.Sprintf(keySession, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Ping checks the connection, used at start-up.
func (r *RedisSessionRepository) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.rdb.Ping(ctx).Err()
}
