// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"masarra/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CartClient is the Redis client backing persisted carts.
	CartClient *redis.Client
	// IdemClient is the dedicated client for checkout idempotency reservations.
	IdemClient *redis.Client
)

// InitCartStoreClient initializes the Redis client for cart persistence
// (using DB from AppConfig for cart storage).
func InitCartStoreClient() {
	CartClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCartDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CartClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cart): %v", err)
	}
}

// GetCartStoreClient returns the Redis client for cart persistence.
func GetCartStoreClient() *redis.Client {
	if CartClient == nil {
		InitCartStoreClient()
	}
	return CartClient
}

// InitIdemClient initializes the Redis client for idempotency reservations
// (using DB from AppConfig for idempotency keys).
func InitIdemClient() {
	IdemClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisIdemDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := IdemClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Idempotency): %v", err)
	}
}

// GetIdemClient returns the Redis client for idempotency reservations.
func GetIdemClient() *redis.Client {
	if IdemClient == nil {
		InitIdemClient()
	}
	return IdemClient
}

// InitRedis initializes all Redis clients.
func InitRedis() {
	InitCartStoreClient()
	InitIdemClient()
}
