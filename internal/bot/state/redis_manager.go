package state

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mpolivanov/fasting-tracker-bot/internal/logger"
)

// stateTTL auto-expires abandoned conversations.
const stateTTL = 24 * time.Hour

// RedisManager keeps conversational state in Redis so it survives restarts
// and can be shared between bot instances.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user:%d:state", userID)
}

func tempKey(userID int64) string {
	return fmt.Sprintf("user:%d:temp", userID)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	ctx := context.Background()
	if err := m.client.Set(ctx, stateKey(userID), state, stateTTL).Err(); err != nil {
		logger.Errorf("Failed to set state for user %d: %v", userID, err)
	}
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(userID int64) string {
	ctx := context.Background()
	state, err := m.client.Get(ctx, stateKey(userID)).Result()
	if err != nil {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	ctx := context.Background()
	if err := m.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		logger.Errorf("Failed to clear state for user %d: %v", userID, err)
	}
}

// SetTempData sets temporary data for a user
func (m *RedisManager) SetTempData(userID int64, key, value string) {
	ctx := context.Background()
	if err := m.client.HSet(ctx, tempKey(userID), key, value).Err(); err != nil {
		logger.Errorf("Failed to set temp data for user %d: %v", userID, err)
		return
	}
	m.client.Expire(ctx, tempKey(userID), stateTTL)
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(userID int64, key string) (string, bool) {
	ctx := context.Background()
	value, err := m.client.HGet(ctx, tempKey(userID), key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(userID int64) {
	ctx := context.Background()
	if err := m.client.Del(ctx, tempKey(userID)).Err(); err != nil {
		logger.Errorf("Failed to clear temp data for user %d: %v", userID, err)
	}
}
