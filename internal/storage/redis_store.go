// Package storage keeps fetched content items between the collector and the
// generate step. Items live in per-category, per-period sorted sets ranked by
// vibe score, expiring after a week.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"curationsla/internal/contenthash"
	"curationsla/internal/model"
)

const itemTTL = 7 * 24 * time.Hour

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func periodZKey(category, period string) string {
	return fmt.Sprintf("content:category:%s:period:%s", category, period)
}

func itemKey(id string) string {
	return fmt.Sprintf("content:item:%s", id)
}

func publishedKey(period string) string {
	return fmt.Sprintf("content:published:%s", period)
}

// itemID derives a stable member key for the sorted set from the item link,
// falling back to the title for link-less items.
func itemID(item model.ContentItem) string {
	if item.Link != "" {
		return contenthash.Sum(item.Link)
	}
	return contenthash.Sum(item.Title)
}

// AddItem stores a scored item and ranks it in its category's period set.
func (s *RedisStore) AddItem(ctx context.Context, period string, scored model.ScoredItem) error {
	id := itemID(scored.Item)
	b, err := json.Marshal(scored)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, itemKey(id), b, itemTTL).Err(); err != nil {
		return err
	}
	z := redis.Z{Score: scored.VibeScore, Member: id}
	key := periodZKey(scored.Item.Category, period)
	if err := s.rdb.ZAdd(ctx, key, z).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, itemTTL).Err()
}

// TopItems retrieves the top N items by vibe score for a category and period.
func (s *RedisStore) TopItems(ctx context.Context, category, period string, n int) ([]model.ScoredItem, error) {
	ids, err := s.rdb.ZRevRange(ctx, periodZKey(category, period), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.ScoredItem, 0, len(ids))
	for _, id := range ids {
		b, err := s.rdb.Get(ctx, itemKey(id)).Bytes()
		if err == redis.Nil {
			continue // item expired out from under the set
		}
		if err != nil {
			return nil, err
		}
		var scored model.ScoredItem
		if err := json.Unmarshal(b, &scored); err != nil {
			return nil, err
		}
		out = append(out, scored)
	}
	return out, nil
}

func skipKey(hash string) string {
	return fmt.Sprintf("content:skipped:%s", hash)
}

// MarkSkipped records that content with this hash was dropped as a duplicate,
// so collectors stop re-queuing the same story.
func (s *RedisStore) MarkSkipped(ctx context.Context, hash string) error {
	return s.rdb.Set(ctx, skipKey(hash), "1", itemTTL).Err()
}

// WasSkipped reports whether the hash was previously dropped as a duplicate.
func (s *RedisStore) WasSkipped(ctx context.Context, hash string) (bool, error) {
	n, err := s.rdb.Exists(ctx, skipKey(hash)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsPublished reports whether a newsletter was already generated for the period.
func (s *RedisStore) IsPublished(ctx context.Context, period string) (bool, error) {
	res, err := s.rdb.Get(ctx, publishedKey(period)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res == "1", nil
}

// MarkPublished records that the period's newsletter was generated.
func (s *RedisStore) MarkPublished(ctx context.Context, period string) error {
	return s.rdb.Set(ctx, publishedKey(period), "1", 30*24*time.Hour).Err()
}
