package utils

import (
	"context"
	"time"

	"scenery/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionCacheClient is the Redis client backing conversation memory.
var SessionCacheClient *redis.Client

// InitSessionCache initializes the Redis client for session state. An
// unreachable Redis is not fatal: the session store degrades to its
// in-process cache until the connection recovers.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := SessionCacheClient.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("Redis unreachable, session memory degrades to in-process cache",
			zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
	}
}

// GetSessionCacheClient returns the session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
