package idgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-sequence-service/pkg/resilience"
)

var (
	ErrInvalidConfig          = errors.New("invalid id generator configuration")
	ErrCapacityExhausted      = errors.New("id capacity exhausted")
	ErrAuthorityTimeout       = errors.New("range authority timed out")
	ErrRefillAttemptsExceeded = errors.New("segment refill attempts exceeded")
)

// ConfigError reports a static misconfiguration for one id name.
type ConfigError struct {
	Name   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%v: %s", ErrInvalidConfig, e.Reason)
	}
	return fmt.Sprintf("%v for %q: %s", ErrInvalidConfig, e.Name, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// CapacityExhaustedError means every id up to MaxValue has been handed out.
type CapacityExhaustedError struct {
	Name     string
	Global   bool
	MaxValue int64
}

func (e *CapacityExhaustedError) Error() string {
	scope := "application"
	if e.Global {
		scope = "global"
	}
	return fmt.Sprintf("%v for %q (%s scope, max_value=%d)", ErrCapacityExhausted, e.Name, scope, e.MaxValue)
}

func (e *CapacityExhaustedError) Is(target error) bool {
	return target == ErrCapacityExhausted
}

// IsRetryable reports whether a later call may succeed without operator action.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrAuthorityTimeout),
		errors.Is(err, ErrRefillAttemptsExceeded),
		errors.Is(err, resilience.ErrCircuitOpen),
		errors.Is(err, context.DeadlineExceeded):
		return true
	default:
		return false
	}
}

func configErr(name, format string, args ...any) error {
	return &ConfigError{Name: name, Reason: fmt.Sprintf(format, args...)}
}
