package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	UserKeyPrefix     = "user:%d"
	FeedPagePrefix    = "feed:anon:%s:%d:%d"
	JTIBlacklistKey   = "jwt:blacklist:%s"
	WSTicketKeyPrefix = "ws:ticket:%s"
)

const (
	UserTTL     = 5 * time.Minute
	FeedPageTTL = 30 * time.Second
	WSTicketTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// FeedPageKey caches anonymous home feed pages only; authenticated feeds vary
// per viewer and are never cached.
func FeedPageKey(filter string, page, limit int) string {
	return fmt.Sprintf(FeedPagePrefix, filter, page, limit)
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(JTIBlacklistKey, jti)
}

func WSTicketKey(ticket string) string {
	return fmt.Sprintf(WSTicketKeyPrefix, ticket)
}

// Aside implements cache-aside over the shared client: on hit it unmarshals
// the cached JSON into dest, on miss it runs load (which must fill dest) and
// stores the result. A nil or unreachable client degrades to load only.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client != nil {
		data, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if jsonErr := json.Unmarshal(data, dest); jsonErr == nil {
				return nil
			}
			// Corrupt entry; drop it and fall through to the loader.
			client.Del(ctx, key)
		} else if err != redis.Nil {
			// Redis trouble is not a data error; serve from the source.
			return load()
		}
	}

	if err := load(); err != nil {
		return err
	}

	if client != nil {
		if data, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, data, ttl)
		}
	}
	return nil
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateAnonFeed drops every cached anonymous feed page. Called on post
// create/delete so stale pages never outlive a write by more than the scan.
func InvalidateAnonFeed(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "feed:anon:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
