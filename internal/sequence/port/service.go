package port

import (
	"context"
	"errors"
)

var (
	ErrInvalidBatchSize = errors.New("invalid batch size")
)

// WarmupTarget names one sequence to reserve a segment for.
type WarmupTarget struct {
	Name   string
	Global bool
}

//go:generate mockgen -destination=mocks/service_mock.go -package=mocks -source=service.go

// SequenceService defines the business logic for id allocation.
type SequenceService interface {
	// NextID returns one id for name, global selects cross-application scope.
	NextID(ctx context.Context, name string, global bool) (string, error)

	// NextBatch returns count ids for name in allocation order.
	NextBatch(ctx context.Context, name string, global bool, count int) ([]string, error)

	// Warmup reserves segments for targets before traffic arrives.
	Warmup(ctx context.Context, targets []WarmupTarget) error
}
