package cart

import (
	"context"
	"encoding/json"

	"masarra/models"

	"github.com/go-redis/redis/v8"
)

const (
	cartKeyPrefix = "masarra:cart:"
	cartUsersKey  = "masarra:cart:users"
)

// RedisPersister stores each user's cart as a JSON array under
// "masarra:cart:<userID>", and maintains a set of active cart user ids so
// the sweeper can enumerate carts without scanning the keyspace.
type RedisPersister struct {
	Client *redis.Client
}

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{Client: client}
}

func cartKey(userID string) string {
	return cartKeyPrefix + userID
}

// Load reads a user's persisted lines. A missing key is an empty cart.
func (p *RedisPersister) Load(ctx context.Context, userID string) ([]models.CartLine, error) {
	raw, err := p.Client.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return []models.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Save writes the full line list and registers the user as active.
func (p *RedisPersister) Save(ctx context.Context, userID string, lines []models.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	pipe := p.Client.TxPipeline()
	pipe.Set(ctx, cartKey(userID), payload, 0)
	pipe.SAdd(ctx, cartUsersKey, userID)
	_, err = pipe.Exec(ctx)
	return err
}

// Delete erases the persisted cart and deregisters the user.
func (p *RedisPersister) Delete(ctx context.Context, userID string) error {
	pipe := p.Client.TxPipeline()
	pipe.Del(ctx, cartKey(userID))
	pipe.SRem(ctx, cartUsersKey, userID)
	_, err := pipe.Exec(ctx)
	return err
}

// ActiveUsers lists user ids with a persisted cart.
func (p *RedisPersister) ActiveUsers(ctx context.Context) ([]string, error) {
	return p.Client.SMembers(ctx, cartUsersKey).Result()
}
