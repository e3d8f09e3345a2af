package subscription

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const ledgerTTL = 48 * time.Hour

// Ledger records which reminders were already sent. Claim reports false when the
// key is taken.
type Ledger interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type RedisLedger struct {
	c      *redis.Client
	prefix string
}

func NewRedisLedger(c *redis.Client) *RedisLedger {
	return &RedisLedger{c: c, prefix: "theroom:reminder:"}
}

func (l *RedisLedger) Claim(ctx context.Context, key string) (bool, error) {
	return l.c.SetNX(ctx, l.prefix+key, time.Now().UTC().Format(time.RFC3339), ledgerTTL).Result()
}

func (l *RedisLedger) Release(ctx context.Context, key string) error {
	return l.c.Del(ctx, l.prefix+key).Err()
}

// MemoryLedger is a process-local Ledger.
type MemoryLedger struct {
	mu   sync.Mutex
	keys map[string]time.Time
	now  func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{keys: map[string]time.Time{}, now: time.Now}
}

func (l *MemoryLedger) Claim(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if exp, ok := l.keys[key]; ok && now.Before(exp) {
		return false, nil
	}
	l.keys[key] = now.Add(ledgerTTL)
	return true, nil
}

func (l *MemoryLedger) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.keys, key)
	return nil
}
