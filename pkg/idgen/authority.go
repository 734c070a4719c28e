package idgen

import (
	"context"
	"math"
	"strings"
	"sync"
)

//go:generate mockgen -destination=mocks/authority_mock.go -package=mocks -source=authority.go

// AcquireRequest describes one segment reservation.
type AcquireRequest struct {
	Name     string
	Global   bool
	MaxValue int64 // Unbounded when no ceiling applies
	MinValue int64 // already shifted down by one
	Delta    int64
}

// RangeAuthority hands out segment ceilings from a shared counter.
//
// Successive calls for the same name (and scope) must return increasing,
// non-overlapping ceilings. When Global is set the guarantee has to hold
// across every process sharing the authority. The first ceiling for a name
// is expected to be MinValue + Delta.
type RangeAuthority interface {
	AcquireLocalMax(ctx context.Context, req AcquireRequest) (int64, error)
}

// MemoryAuthority keeps ceilings in process memory. Global ids from it are
// only unique within the process.
type MemoryAuthority struct {
	mu       sync.Mutex
	counters map[scopedName]int64
}

func NewMemoryAuthority() *MemoryAuthority {
	return &MemoryAuthority{counters: make(map[scopedName]int64)}
}

func (a *MemoryAuthority) AcquireLocalMax(ctx context.Context, req AcquireRequest) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := scopedName{name: req.Name, global: req.Global}
	current, ok := a.counters[key]
	if !ok {
		key.name = strings.Clone(key.name)
		current = req.MinValue
	}
	if current > math.MaxInt64-req.Delta {
		return 0, &CapacityExhaustedError{Name: req.Name, Global: req.Global, MaxValue: math.MaxInt64}
	}
	current += req.Delta
	a.counters[key] = current
	return current, nil
}

// Ping always succeeds.
func (a *MemoryAuthority) Ping(context.Context) error {
	return nil
}

type scopedName struct {
	name   string
	global bool
}
