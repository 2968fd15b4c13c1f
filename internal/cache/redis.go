package cache

import (
	"context"
	"errors"
	"log/slog"

	"conferencecentral/internal/domain"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces announcement slots in Redis.
const KeyPrefix = "announcements:"

// Redis is an announcement cache shared by every API and worker process.
// Slots have no TTL; they change only on Set and Clear.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis returns a cache backed by client.
func NewRedis(client *redis.Client, logger *slog.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

var _ domain.AnnouncementCache = (*Redis)(nil)

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, KeyPrefix+key, value, 0).Err()
}

// Get returns "" on a miss. Read errors are logged and also read as a miss.
func (r *Redis) Get(ctx context.Context, key string) string {
	v, err := r.client.Get(ctx, KeyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "announcement cache read failed", "key", key, "err", err)
		}
		return ""
	}
	return v
}

func (r *Redis) Clear(ctx context.Context, key string) error {
	return r.client.Del(ctx, KeyPrefix+key).Err()
}
