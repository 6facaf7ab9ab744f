package replay

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rutsatz/algamoney-api/internal/api/store"
)

// Memory keeps markers in process. Suitable for a single instance only.
type Memory struct {
	c   *gocache.Cache
	now func() time.Time
}

var _ store.ConsumedTokens = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		c:   gocache.New(gocache.NoExpiration, time.Minute),
		now: time.Now,
	}
}

// MarkConsumed uses Add, which fails when the key is already present and
// holds the cache lock across the check.
func (m *Memory) MarkConsumed(_ context.Context, jti string, expiresAt time.Time) (bool, error) {
	if err := m.c.Add(jti, struct{}{}, ttlUntil(expiresAt, m.now())); err != nil {
		return false, nil
	}
	return true, nil
}

// DeleteExpired forces the janitor pass. go-cache also runs it on its own
// every minute.
func (m *Memory) DeleteExpired(context.Context, time.Time) (int64, error) {
	before := m.c.ItemCount()
	m.c.DeleteExpired()
	return int64(before - m.c.ItemCount()), nil
}
