package redis_authority

import (
	"context"
	"fmt"

	"github.com/anthanhphan/go-sequence-service/pkg/idgen"
	"github.com/redis/go-redis/v9"
)

var _ idgen.RangeAuthority = (*Authority)(nil)

// Authority keeps one counter per id name in Redis and bumps it by delta
// for every segment. INCRBY is atomic, so every process sharing the
// server gets non-overlapping ceilings.
type Authority struct {
	client  redis.UniversalClient
	prefix  string
	appName string
}

func New(client redis.UniversalClient, keyPrefix, appName string) *Authority {
	return &Authority{
		client:  client,
		prefix:  keyPrefix,
		appName: appName,
	}
}

// Key returns the counter key for name. Application-scoped counters are
// namespaced by app name; global ones are shared by every app.
func (a *Authority) Key(name string, global bool) string {
	if global {
		return fmt.Sprintf("%s:global:%s", a.prefix, name)
	}
	return fmt.Sprintf("%s:app:%s:%s", a.prefix, a.appName, name)
}

func (a *Authority) AcquireLocalMax(ctx context.Context, req idgen.AcquireRequest) (int64, error) {
	key := a.Key(req.Name, req.Global)

	var incr *redis.IntCmd
	_, err := a.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// Seeds a fresh counter so the first ceiling is min + delta.
		pipe.SetNX(ctx, key, req.MinValue, 0)
		incr = pipe.IncrBy(ctx, key, req.Delta)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis acquire %s: %w", key, err)
	}
	return incr.Val(), nil
}

func (a *Authority) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}
