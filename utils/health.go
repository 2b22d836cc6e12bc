package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis      bool      `json:"redis"`
	LocalIndex bool      `json:"localIndex"`
	CheckedAt  time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClient *redis.Client, hotelDB *gorm.DB) {
	check := func() {
		ctx := context.Background()
		redisHealthy := redisClient.Ping(ctx).Err() == nil

		indexHealthy := false
		if sqlDB, err := hotelDB.DB(); err == nil {
			indexHealthy = sqlDB.PingContext(ctx) == nil
		}

		healthMu.Lock()
		currentHealth = HealthStatus{
			Redis:      redisHealthy,
			LocalIndex: indexHealthy,
			CheckedAt:  time.Now(),
		}
		healthMu.Unlock()
	}

	go func() {
		check()
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check()
		}
	}()
}
