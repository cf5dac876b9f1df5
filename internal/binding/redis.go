package binding

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores a selection as a list under dualpick:selection:<set>.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(client *redis.Client, set string) *Redis {
	return &Redis{client: client, key: RedisKey(set)}
}

// RedisKey returns the list key of a set.
func RedisKey(set string) string {
	return "dualpick:selection:" + set
}

func (b *Redis) ReadSelection(ctx context.Context) ([]string, error) {
	keys, err := b.client.LRange(ctx, b.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.key, err)
	}
	return keys, nil
}

// WriteSelection replaces the list atomically.
func (b *Redis) WriteSelection(ctx context.Context, keys []string) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, b.key)
		if len(keys) > 0 {
			args := make([]any, len(keys))
			for i, k := range keys {
				args[i] = k
			}
			pipe.RPush(ctx, b.key, args...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", b.key, err)
	}
	return nil
}

// Ping checks the connection.
func (b *Redis) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
