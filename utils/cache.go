// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"sevahub/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient is the dedicated client for session-state caching.
var SessionCacheClient *redis.Client

// InitSessionCache initializes the Redis client backing the session cache
// and verifies connectivity. Returns an error instead of exiting so callers
// can fall back to the in-memory cache when Redis is absent.
func InitSessionCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis (session cache): %w", err)
	}
	SessionCacheClient = client
	return nil
}

// GetSessionCacheClient returns the session cache client, or nil when Redis
// was never reachable.
func GetSessionCacheClient() *redis.Client {
	return SessionCacheClient
}
