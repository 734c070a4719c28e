package guarded

import (
	"context"

	"github.com/anthanhphan/go-sequence-service/internal/sequence/port"
	"github.com/anthanhphan/go-sequence-service/pkg/idgen"
	"github.com/anthanhphan/go-sequence-service/pkg/resilience"
)

var (
	_ idgen.RangeAuthority = (*Authority)(nil)
	_ port.AuthorityProbe  = (*Authority)(nil)
)

// Authority fails fast while the wrapped range authority keeps erroring.
type Authority struct {
	inner   idgen.RangeAuthority
	breaker *resilience.CircuitBreaker
}

func New(inner idgen.RangeAuthority, breaker *resilience.CircuitBreaker) *Authority {
	return &Authority{inner: inner, breaker: breaker}
}

func (a *Authority) AcquireLocalMax(ctx context.Context, req idgen.AcquireRequest) (int64, error) {
	var localMax int64
	err := a.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		localMax, err = a.inner.AcquireLocalMax(ctx, req)
		return err
	})
	if err != nil {
		return 0, err
	}
	return localMax, nil
}

// Ping reports an open circuit without touching the backend, otherwise it
// defers to the wrapped authority when that can be probed.
func (a *Authority) Ping(ctx context.Context) error {
	if a.breaker.State() == resilience.CircuitOpen {
		return &resilience.CircuitOpenError{Name: "range authority"}
	}
	if probe, ok := a.inner.(port.AuthorityProbe); ok {
		return probe.Ping(ctx)
	}
	return nil
}

func (a *Authority) State() resilience.CircuitBreakerState {
	return a.breaker.State()
}
