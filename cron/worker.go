package cron

import (
	"context"
	"log"
	"time"

	"scenery/config"
	"scenery/services/extractor"
	"scenery/services/localdb"
	"scenery/services/session"

	"github.com/hibiken/asynq"
)

const (
	TypeSessionPrune = "session:prune"
	TypeGeoWarm      = "geo:warm"
)

// InitMaintenanceWorker runs the async worker and its scheduler in background.
// It prunes expired in-process session fallbacks and refreshes the extractor's
// city list from the local index.
func InitMaintenanceWorker(store *session.RedisStore, repo *localdb.Repo, fast *extractor.FastExtractor) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionPrune, handleSessionPrune(store))
	mux.HandleFunc(TypeGeoWarm, handleGeoWarm(repo, fast))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 5m", asynq.NewTask(TypeSessionPrune, nil)); err != nil {
		log.Printf("[MaintenanceWorker] failed to register session prune: %v", err)
	}
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeGeoWarm, nil)); err != nil {
		log.Printf("[MaintenanceWorker] failed to register geo warm: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[MaintenanceWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[MaintenanceWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MaintenanceWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Println("[MaintenanceWorker] max retry attempts reached, worker disabled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSessionPrune(store *session.RedisStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		removed := store.PruneFallback()
		if removed > 0 {
			log.Printf("[MaintenanceWorker] pruned %d expired fallback sessions", removed)
		}
		return nil
	}
}

func handleGeoWarm(repo *localdb.Repo, fast *extractor.FastExtractor) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		cities, err := repo.ListCities(ctx)
		if err != nil {
			log.Printf("[MaintenanceWorker] city refresh failed: %v", err)
			return err
		}
		if len(cities) > 0 {
			fast.SetCities(cities)
			log.Printf("[MaintenanceWorker] refreshed %d known cities", len(cities))
		}
		return nil
	}
}
