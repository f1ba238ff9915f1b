package discord

import (
	"context"
	"time"

	"github.com/puzzup/backend/pkg/cache"
	"github.com/puzzup/backend/pkg/xcontext"
	"github.com/puzzup/backend/pkg/xredis"
)

// ChannelCache holds recently seen channel snapshots so repeated saves don't
// refetch remote state. It is never a source of truth: a miss or an expired
// entry just costs one extra round trip. Implementations must not hand out
// aliases of stored snapshots.
type ChannelCache interface {
	Get(ctx context.Context, channelID string) (*TextChannel, bool)
	Set(ctx context.Context, channel *TextChannel)
	Drop(ctx context.Context, channelID string)
}

type memoryChannelCache struct {
	entries *cache.TimedCache[string, *TextChannel]
}

// NewMemoryChannelCache builds an in-process channel cache with the given
// entry lifetime. Construct it once at startup and hand it to New; it is not
// safe for concurrent use.
func NewMemoryChannelCache(timeout time.Duration) *memoryChannelCache {
	return &memoryChannelCache{entries: cache.NewTimedCache[string, *TextChannel](timeout)}
}

func (c *memoryChannelCache) Get(ctx context.Context, channelID string) (*TextChannel, bool) {
	tc, ok := c.entries.Get(channelID)
	if !ok {
		return nil, false
	}

	return tc.Copy(), true
}

func (c *memoryChannelCache) Set(ctx context.Context, channel *TextChannel) {
	c.entries.Set(channel.ID, channel.Copy())
}

func (c *memoryChannelCache) Drop(ctx context.Context, channelID string) {
	c.entries.Drop(channelID)
}

const redisChannelKeyPrefix = "discord:channel:"

type redisChannelCache struct {
	redisClient xredis.Client
	timeout     time.Duration
}

// NewRedisChannelCache builds a channel cache backed by Redis, letting
// multiple processes share one snapshot store. Expiry is delegated to Redis
// TTLs.
func NewRedisChannelCache(redisClient xredis.Client, timeout time.Duration) *redisChannelCache {
	return &redisChannelCache{redisClient: redisClient, timeout: timeout}
}

func (c *redisChannelCache) Get(ctx context.Context, channelID string) (*TextChannel, bool) {
	var tc TextChannel
	if err := c.redisClient.GetObj(ctx, redisChannelKeyPrefix+channelID, &tc); err != nil {
		return nil, false
	}

	return &tc, true
}

func (c *redisChannelCache) Set(ctx context.Context, channel *TextChannel) {
	err := c.redisClient.SetObj(ctx, redisChannelKeyPrefix+channel.ID, channel, c.timeout)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache channel %s: %v", channel.ID, err)
	}
}

func (c *redisChannelCache) Drop(ctx context.Context, channelID string) {
	if err := c.redisClient.Del(ctx, redisChannelKeyPrefix+channelID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot drop cached channel %s: %v", channelID, err)
	}
}
