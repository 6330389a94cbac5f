package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ledger records idempotent bug submissions in Redis.
// Key format: <prefix>submission:<reporter_id>:<idempotency_key>
type Ledger struct {
	client *redis.Client
	prefix string
}

func NewLedger(client *redis.Client, prefix string) *Ledger {
	return &Ledger{client: client, prefix: prefix}
}

// Lookup returns the bug id stored for key, or "" when the key is unknown or expired.
func (l *Ledger) Lookup(ctx context.Context, key string) (string, error) {
	id, err := l.client.Get(ctx, l.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ledger lookup: %w", err)
	}
	return id, nil
}

// Remember maps key to bugID until ttl elapses.
func (l *Ledger) Remember(ctx context.Context, key, bugID string, ttl time.Duration) error {
	return l.client.Set(ctx, l.key(key), bugID, ttl).Err()
}

func (l *Ledger) key(k string) string {
	return l.prefix + "submission:" + k
}
