package cron

import (
	"context"
	"log"
	"time"

	"masarra/config"
	"masarra/services/cart"

	"github.com/hibiken/asynq"
)

const TypeCartSweep = "cart:sweep"

// InitCartSweeper runs the async sweep worker in background and enqueues a
// sweep task on the configured interval. The sweep prunes cart lines whose
// selected date has already passed.
func InitCartSweeper(cartSvc cart.CartService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCartSweep, handleCartSweep(cartSvc))

	go func() {
		log.Println("[CartSweeper] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CartSweeper] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CartSweeper] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go enqueueSweeps(redisOpts)
}

func handleCartSweep(cartSvc cart.CartService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		log.Println("[CartSweeper] sweeping past-date cart lines")
		if err := cartSvc.SweepPast(ctx, time.Now()); err != nil {
			log.Printf("[CartSweeper] sweep failed: %v", err)
			return err
		}
		return nil
	}
}

// enqueueSweeps drops one sweep task onto the queue per interval.
func enqueueSweeps(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	interval := time.Duration(config.AppConfig.CartSweepIntervalMin) * time.Minute
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		task := asynq.NewTask(TypeCartSweep, nil)
		if _, err := client.Enqueue(task); err != nil {
			log.Printf("[CartSweeper] failed to enqueue sweep: %v", err)
		}
	}
}
