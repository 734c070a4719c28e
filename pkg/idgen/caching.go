package idgen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anthanhphan/gosdk/logger"
)

const (
	DefaultAcquireTimeout    = 3 * time.Second
	DefaultMaxRefillAttempts = 3
)

var _ IdGenerator = (*CachingGenerator)(nil)

// CachingOptions tunes the caching allocator. Zero values use the defaults.
type CachingOptions struct {
	// AcquireTimeout bounds each call to the range authority.
	AcquireTimeout time.Duration
	// MaxRefillAttempts caps how many freshly acquired segments in a row may
	// turn out empty before giving up.
	MaxRefillAttempts int
}

// CachingGenerator serves ids from cached segments and only talks to the
// range authority when a segment runs dry.
type CachingGenerator struct {
	policy    *RangePolicy
	authority RangeAuthority
	opts      CachingOptions

	slots sync.Map // scopedName -> *slot
}

// slot serializes segment replacement for one name; readers only load seg.
type slot struct {
	mu  sync.Mutex
	seg atomic.Pointer[Segment]
}

// SegmentStats is a point-in-time view of one cached segment.
type SegmentStats struct {
	Name     string `json:"name"`
	Global   bool   `json:"global"`
	Start    int64  `json:"start"`
	LocalMax int64  `json:"local_max"`
	Ceiling  int64  `json:"ceiling"`
	Next     int64  `json:"next"`
}

func NewCachingGenerator(policy *RangePolicy, authority RangeAuthority, opts CachingOptions) (*CachingGenerator, error) {
	if policy == nil {
		return nil, errors.New("caching generator requires a range policy")
	}
	if authority == nil {
		return nil, errors.New("caching generator requires a range authority")
	}
	if opts.AcquireTimeout <= 0 {
		opts.AcquireTimeout = DefaultAcquireTimeout
	}
	if opts.MaxRefillAttempts <= 0 {
		opts.MaxRefillAttempts = DefaultMaxRefillAttempts
	}

	return &CachingGenerator{
		policy:    policy,
		authority: authority,
		opts:      opts,
	}, nil
}

func (g *CachingGenerator) GenerateID(ctx context.Context, name string) (string, error) {
	return g.generate(ctx, name, false)
}

func (g *CachingGenerator) GenerateGlobalID(ctx context.Context, name string) (string, error) {
	return g.generate(ctx, name, true)
}

func (g *CachingGenerator) generate(ctx context.Context, name string, global bool) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	v, err := g.next(ctx, scopedName{name: name, global: global})
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}

// Prime makes sure a segment is cached for name so the first request does
// not pay for the authority round trip.
func (g *CachingGenerator) Prime(ctx context.Context, name string, global bool) error {
	if err := validateName(name); err != nil {
		return err
	}
	key := scopedName{name: name, global: global}
	sl := g.slotFor(key)
	if sl.seg.Load() != nil {
		return nil
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.seg.Load() != nil {
		return nil
	}
	seg, err := g.newSegment(ctx, key, nil)
	if err != nil {
		return err
	}
	sl.seg.Store(seg)
	return nil
}

// Stats lists the cached segments ordered by name, application scope first.
func (g *CachingGenerator) Stats() []SegmentStats {
	var out []SegmentStats
	g.slots.Range(func(k, v any) bool {
		key := k.(scopedName)
		seg := v.(*slot).seg.Load()
		if seg == nil {
			return true
		}
		out = append(out, SegmentStats{
			Name:     key.name,
			Global:   key.global,
			Start:    seg.Start(),
			LocalMax: seg.LocalMax(),
			Ceiling:  seg.Ceiling(),
			Next:     seg.Peek(),
		})
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return !out[i].Global && out[j].Global
	})
	return out
}

func (g *CachingGenerator) slotFor(key scopedName) *slot {
	if v, ok := g.slots.Load(key); ok {
		return v.(*slot)
	}
	// Callers may pass names backed by reused buffers.
	key.name = strings.Clone(key.name)
	v, _ := g.slots.LoadOrStore(key, &slot{})
	return v.(*slot)
}

func (g *CachingGenerator) next(ctx context.Context, key scopedName) (int64, error) {
	sl := g.slotFor(key)
	seg := sl.seg.Load()

	for {
		if seg != nil {
			a := seg.Next()
			switch a.Status {
			case AllocOK:
				return a.Value, nil
			case AllocAbsolutelyExhausted:
				return 0, exhaustedErr(key, seg)
			}
		}

		value, current, err := g.refill(ctx, key, sl, seg)
		if err != nil {
			return 0, err
		}
		if current == nil {
			return value, nil
		}
		seg = current
	}
}

// refill is entered after observed ran dry (or was never created). If
// another caller already replaced it, the replacement is returned for the
// caller to retry. Otherwise a new segment is installed and its first value
// taken before publishing, so the caller that paid for the round trip is
// guaranteed a value unless the authority handed out an empty range.
func (g *CachingGenerator) refill(ctx context.Context, key scopedName, sl *slot, observed *Segment) (int64, *Segment, error) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if current := sl.seg.Load(); current != nil && current != observed {
		return 0, current, nil
	}

	prev := observed
	for attempt := 1; ; attempt++ {
		seg, err := g.newSegment(ctx, key, prev)
		if err != nil {
			return 0, nil, err
		}

		a := seg.Next()
		sl.seg.Store(seg)
		switch a.Status {
		case AllocOK:
			return a.Value, nil, nil
		case AllocAbsolutelyExhausted:
			return 0, nil, exhaustedErr(key, seg)
		}

		logger.Warnw("Fresh segment exhausted immediately, retrying",
			"name", key.name,
			"global", key.global,
			"attempt", attempt,
			"start", seg.Start(),
			"local_max", seg.LocalMax())
		if attempt >= g.opts.MaxRefillAttempts {
			return 0, nil, fmt.Errorf("%w for %q after %d attempts", ErrRefillAttemptsExceeded, key.name, attempt)
		}
		prev = seg
	}
}

// newSegment asks the authority for a new ceiling. prev is the segment being
// replaced; the new one never starts at or below anything prev covered.
func (g *CachingGenerator) newSegment(ctx context.Context, key scopedName, prev *Segment) (*Segment, error) {
	minValue, maxValue, err := g.policy.Bounds(key.name)
	if err != nil {
		return nil, err
	}
	delta, err := g.policy.Delta(key.name)
	if err != nil {
		return nil, err
	}

	if prev != nil && prev.highWater() == math.MaxInt64 {
		return nil, exhaustedErr(key, prev)
	}

	acquireCtx, cancel := context.WithTimeout(ctx, g.opts.AcquireTimeout)
	defer cancel()

	started := time.Now()
	localMax, err := g.authority.AcquireLocalMax(acquireCtx, AcquireRequest{
		Name:     key.name,
		Global:   key.global,
		MaxValue: maxValue,
		MinValue: minValue,
		Delta:    delta,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w for %q after %s: %w", ErrAuthorityTimeout, key.name, g.opts.AcquireTimeout, err)
		}
		return nil, fmt.Errorf("acquire segment for %q: %w", key.name, err)
	}

	if localMax < 1 {
		return nil, fmt.Errorf("range authority returned non-positive ceiling %d for %q", localMax, key.name)
	}

	start := localMax - delta + 1
	if prev != nil && start <= prev.highWater() {
		logger.Warnw("Range authority returned a non-increasing ceiling",
			"name", key.name,
			"global", key.global,
			"previous_local_max", prev.highWater(),
			"local_max", localMax)
		start = prev.highWater() + 1
	}
	if start < 1 {
		return nil, fmt.Errorf("range authority returned ceiling %d for %q, below delta %d", localMax, key.name, delta)
	}
	if maxValue != Unbounded && localMax > maxValue {
		localMax = maxValue
	}

	logger.Debugw("Segment acquired",
		"name", key.name,
		"global", key.global,
		"start", start,
		"local_max", localMax,
		"took", time.Since(started).String())

	return NewSegment(start, localMax, maxValue), nil
}

func exhaustedErr(key scopedName, seg *Segment) error {
	maxValue := seg.Ceiling()
	if maxValue == Unbounded {
		maxValue = math.MaxInt64
	}
	return &CapacityExhaustedError{Name: key.name, Global: key.global, MaxValue: maxValue}
}
