package checkout

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const attemptKeyPrefix = "masarra:checkout:attempt:"

// attemptTTL bounds how long a used attempt id stays reserved. A day covers
// any realistic retry window without growing the keyspace forever.
const attemptTTL = 24 * time.Hour

// RedisIdempotencyGuard reserves attempt ids with SetNX in a dedicated
// Redis DB.
type RedisIdempotencyGuard struct {
	Client *redis.Client
}

func NewRedisIdempotencyGuard(client *redis.Client) *RedisIdempotencyGuard {
	return &RedisIdempotencyGuard{Client: client}
}

// Reserve returns false when the attempt id was already used.
func (g *RedisIdempotencyGuard) Reserve(ctx context.Context, attemptID string) (bool, error) {
	return g.Client.SetNX(ctx, attemptKeyPrefix+attemptID, 1, attemptTTL).Result()
}
