package cache

import (
	"context"
	"encoding/json"
	"time"

	"bookhub/internal/api/models"

	"github.com/redis/go-redis/v9"
)

const allBooksKey = "books:all"

// BookCache is a best-effort read-through cache for the full book listing.
// All methods are safe on a nil receiver or nil client, so the service runs
// without Redis.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

func (c *BookCache) GetAll(ctx context.Context) ([]models.Book, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, allBooksKey).Bytes()
	if err != nil {
		return nil, false
	}
	var list []models.Book
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

func (c *BookCache) SetAll(ctx context.Context, list []models.Book) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, allBooksKey, raw, c.ttl).Err()
}

// Invalidate drops the cached listing; called after every book mutation.
func (c *BookCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, allBooksKey).Err()
}
