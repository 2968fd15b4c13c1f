package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"conferencecentral/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]domain.AnnouncementCache {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return map[string]domain.AnnouncementCache{
		"memory": NewMemory(),
		"redis":  NewRedis(client, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func TestCache_SetGetClear(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "", c.Get(ctx, domain.AnnouncementKey))

			require.NoError(t, c.Set(ctx, domain.AnnouncementKey, "first"))
			require.NoError(t, c.Set(ctx, domain.FeaturedSpeakerKey, "speaker"))
			require.NoError(t, c.Set(ctx, domain.AnnouncementKey, "second"))
			assert.Equal(t, "second", c.Get(ctx, domain.AnnouncementKey))

			require.NoError(t, c.Clear(ctx, domain.AnnouncementKey))
			assert.Equal(t, "", c.Get(ctx, domain.AnnouncementKey))
			assert.Equal(t, "speaker", c.Get(ctx, domain.FeaturedSpeakerKey))

			require.NoError(t, c.Clear(ctx, "never-set"))
		})
	}
}

func TestMemory_ReadersSeeWholeValues(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	values := make(map[string]bool)
	for i := 0; i < 10; i++ {
		values[fmt.Sprintf("announcement-%d", i)] = true
	}
	values[""] = true

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, domain.AnnouncementKey, fmt.Sprintf("announcement-%d", i))
		}()
		go func() {
			defer wg.Done()
			got := c.Get(ctx, domain.AnnouncementKey)
			assert.True(t, values[got], "unexpected value %q", got)
		}()
	}
	wg.Wait()
}

func TestRedis_ReadErrorIsAMiss(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	c := NewRedis(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, c.Set(context.Background(), domain.AnnouncementKey, "x"))

	mr.Close()
	assert.Equal(t, "", c.Get(context.Background(), domain.AnnouncementKey))
}

func TestRedis_UsesPrefixedKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	c := NewRedis(client, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, c.Set(context.Background(), domain.FeaturedSpeakerKey, "hello"))
	got, err := mr.Get(KeyPrefix + domain.FeaturedSpeakerKey)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}
