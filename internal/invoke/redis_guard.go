package invoke

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"geniemetrics/internal/tools"
)

const (
	busyKeyPrefix  = "geniemetrics:busy:"
	releaseTimeout = 5 * time.Second
)

// releaseScript deletes the slot only while it still holds our token, so a
// slot that expired and was taken by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard shares in-flight slots between API instances. Each slot
// expires after ttl so a crashed instance cannot block a tool forever; ttl
// should exceed the model call timeout.
type RedisGuard struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisGuard(client redis.UniversalClient, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

func busySlot(sessionID string, tool tools.ID) string {
	return busyKeyPrefix + sessionID + ":" + string(tool)
}

func (g *RedisGuard) Acquire(ctx context.Context, sessionID string, tool tools.ID) (func(), error) {
	key := busySlot(sessionID, tool)
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis acquire busy slot: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		_ = releaseScript.Run(ctx, g.client, []string{key}, token).Err()
	}, nil
}

func (g *RedisGuard) Busy(ctx context.Context, sessionID string, candidates []tools.ID) ([]tools.ID, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	keys := make([]string, len(candidates))
	for i, id := range candidates {
		keys[i] = busySlot(sessionID, id)
	}
	vals, err := g.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list busy slots: %w", err)
	}
	var out []tools.ID
	for i, v := range vals {
		if v != nil {
			out = append(out, candidates[i])
		}
	}
	return out, nil
}

var _ Guard = (*RedisGuard)(nil)
