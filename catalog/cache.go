package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"sorteos/entity"
)

const cacheKey = "catalog:raffles"

// Cache keeps the raw raffle list in redis for a short TTL so repeated
// catalog views do not hammer the backend. A nil Cache, a nil redis client
// or any redis failure all degrade to a direct backend fetch.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil || ttl <= 0 {
		return nil
	}

	return &Cache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *Cache) Get(ctx context.Context) ([]entity.Raffle, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Warn("reading raffle cache")
		}
		return nil, false
	}

	var raffles []entity.Raffle
	if err := json.Unmarshal(payload, &raffles); err != nil {
		logrus.WithError(err).Warn("decoding raffle cache")
		return nil, false
	}

	return raffles, true
}

func (c *Cache) Set(ctx context.Context, raffles []entity.Raffle) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(raffles)
	if err != nil {
		logrus.WithError(err).Warn("encoding raffle cache")
		return
	}

	if err := c.rdb.Set(ctx, cacheKey, payload, c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("writing raffle cache")
	}
}
