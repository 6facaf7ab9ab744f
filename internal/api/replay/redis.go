package replay

import (
	"context"
	"time"

	rdb "github.com/redis/go-redis/v9"
	"github.com/rutsatz/algamoney-api/internal/api/store"
)

const redisKeyPrefix = "algamoney:refresh:consumed:"

// Redis shares markers between instances. Expiry is left to Redis.
type Redis struct {
	c   *rdb.Client
	now func() time.Time
}

var _ store.ConsumedTokens = (*Redis)(nil)

func NewRedis(addr string, db int) *Redis {
	return &Redis{
		c:   rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		now: time.Now,
	}
}

func (r *Redis) MarkConsumed(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	return r.c.SetNX(ctx, redisKeyPrefix+jti, 1, ttlUntil(expiresAt, r.now())).Result()
}

// DeleteExpired is a no-op, keys carry their own TTL.
func (r *Redis) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.c.Close()
}
