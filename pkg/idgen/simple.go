package idgen

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/anthanhphan/gosdk/logger"
)

var _ IdGenerator = (*SimpleGenerator)(nil)

// SimpleGenerator keeps one in-process counter per name and wraps back to
// the configured minimum once the maximum is passed.
//
// Ids are only unique until the sequence wraps, and GenerateGlobalID gives
// no cross-process guarantee at all. Use CachingGenerator backed by a shared
// authority where durable global uniqueness matters.
type SimpleGenerator struct {
	policy *RangePolicy

	mu       sync.Mutex
	counters sync.Map // scopedName -> *atomic.Int64
}

func NewSimpleGenerator(policy *RangePolicy) *SimpleGenerator {
	return &SimpleGenerator{policy: policy}
}

func (g *SimpleGenerator) GenerateID(ctx context.Context, name string) (string, error) {
	return g.generate(name, false)
}

func (g *SimpleGenerator) GenerateGlobalID(ctx context.Context, name string) (string, error) {
	return g.generate(name, true)
}

func (g *SimpleGenerator) generate(name string, global bool) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	minValue, maxValue, err := g.policy.Bounds(name)
	if err != nil {
		return "", err
	}

	key := scopedName{name: name, global: global}
	for {
		counter := g.counterFor(key, minValue)
		v := counter.Add(1)
		// v <= minValue only after wrapping past math.MaxInt64
		if v > minValue && (maxValue == Unbounded || v <= maxValue) {
			return strconv.FormatInt(v, 10), nil
		}
		g.reset(key, counter, minValue)
	}
}

func (g *SimpleGenerator) counterFor(key scopedName, minValue int64) *atomic.Int64 {
	if v, ok := g.counters.Load(key); ok {
		return v.(*atomic.Int64)
	}
	fresh := new(atomic.Int64)
	fresh.Store(minValue)
	key.name = strings.Clone(key.name)
	v, _ := g.counters.LoadOrStore(key, fresh)
	return v.(*atomic.Int64)
}

// reset replaces the overflowed counter unless another caller already did.
func (g *SimpleGenerator) reset(key scopedName, overflowed *atomic.Int64, minValue int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if v, ok := g.counters.Load(key); ok && v.(*atomic.Int64) != overflowed {
		return
	}
	fresh := new(atomic.Int64)
	fresh.Store(minValue)
	g.counters.Store(key, fresh)
	logger.Warnw("Id sequence wrapped around", "name", key.name, "global", key.global, "restart_at", minValue+1)
}
