package idgen

import "sync/atomic"

// AllocStatus classifies the outcome of Segment.Next.
type AllocStatus int

const (
	AllocOK AllocStatus = iota
	// AllocLocallyExhausted means the segment is used up and must be refilled.
	AllocLocallyExhausted
	// AllocAbsolutelyExhausted means the configured max value, or the int64
	// range itself, has been passed.
	AllocAbsolutelyExhausted
)

func (s AllocStatus) String() string {
	switch s {
	case AllocOK:
		return "ok"
	case AllocLocallyExhausted:
		return "locally_exhausted"
	case AllocAbsolutelyExhausted:
		return "absolutely_exhausted"
	default:
		return "unknown"
	}
}

// Allocation is the result of taking one value from a segment.
type Allocation struct {
	Value  int64
	Status AllocStatus
}

// Segment is a cached id range [start, localMax] bounded by ceiling.
// Only the counter mutates; a refill installs a new Segment.
type Segment struct {
	counter  atomic.Int64
	start    int64
	localMax int64
	ceiling  int64
}

// NewSegment returns a segment that dispenses start..localMax. A ceiling of
// Unbounded disables absolute exhaustion.
func NewSegment(start, localMax, ceiling int64) *Segment {
	s := &Segment{start: start, localMax: localMax, ceiling: ceiling}
	s.counter.Store(start - 1)
	return s
}

// Next atomically takes the next value.
func (s *Segment) Next() Allocation {
	v := s.counter.Add(1)
	if v < s.start {
		// the counter wrapped past math.MaxInt64
		return Allocation{Status: AllocAbsolutelyExhausted}
	}
	if v <= s.localMax {
		return Allocation{Value: v, Status: AllocOK}
	}
	if s.ceiling != Unbounded && v > s.ceiling {
		return Allocation{Status: AllocAbsolutelyExhausted}
	}
	return Allocation{Status: AllocLocallyExhausted}
}

// Exhausted reports whether no value is left without consuming one.
func (s *Segment) Exhausted() bool {
	return s.counter.Load() >= s.localMax
}

func (s *Segment) Start() int64    { return s.start }
func (s *Segment) LocalMax() int64 { return s.localMax }
func (s *Segment) Ceiling() int64  { return s.ceiling }

// highWater is the largest value this segment could ever have covered,
// including an empty segment that was clamped above its local max.
func (s *Segment) highWater() int64 {
	if s.start-1 > s.localMax {
		return s.start - 1
	}
	return s.localMax
}

// Peek returns the value the next call to Next would try to hand out.
func (s *Segment) Peek() int64 {
	return s.counter.Load() + 1
}
