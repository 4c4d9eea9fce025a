package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// RedisCache mantém o lay corrente de cada seleção no Redis.
// Client: cliente Redis
// TTL: tempo de expiração dos registros
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// Key gera a chave Redis do lay corrente de uma seleção.
// O valuebet-worker lê o mesmo formato.
func Key(marketID, selection string) string {
	return "lay:current:" + marketID + ":" + selection
}

// SetCurrent armazena o registro corrente com TTL definido.
func (r *RedisCache) SetCurrent(ctx context.Context, e events.LayOddsRecord) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, Key(e.MarketID, e.Selection), b, r.TTL).Err()
}
