package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-sequence-service/internal/sequence/config"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/port"
	"github.com/anthanhphan/go-sequence-service/pkg/idgen"
	"github.com/anthanhphan/go-sequence-service/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// primer is implemented by generators that can reserve a segment ahead of use.
type primer interface {
	Prime(ctx context.Context, name string, global bool) error
}

// SequenceServiceImpl implements port.SequenceService on top of an idgen.IdGenerator.
type SequenceServiceImpl struct {
	cfg *config.Config
	gen idgen.IdGenerator
}

var _ port.SequenceService = (*SequenceServiceImpl)(nil)

func NewSequenceService(cfg *config.Config, gen idgen.IdGenerator) *SequenceServiceImpl {
	return &SequenceServiceImpl{cfg: cfg, gen: gen}
}

func (s *SequenceServiceImpl) NextID(ctx context.Context, name string, global bool) (string, error) {
	if global {
		return s.gen.GenerateGlobalID(ctx, name)
	}
	return s.gen.GenerateID(ctx, name)
}

func (s *SequenceServiceImpl) NextBatch(ctx context.Context, name string, global bool, count int) ([]string, error) {
	limit := s.cfg.App.MaxBatchSize
	if count < 1 || count > limit {
		return nil, fmt.Errorf("%w: count %d outside [1, %d]", port.ErrInvalidBatchSize, count, limit)
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, err := s.NextID(ctx, name, global)
		if err != nil {
			return nil, fmt.Errorf("batch for %q failed after %d of %d ids: %w", name, i, count, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Warmup primes segments for targets in parallel.
func (s *SequenceServiceImpl) Warmup(ctx context.Context, targets []port.WarmupTarget) error {
	p, ok := s.gen.(primer)
	if !ok || len(targets) == 0 {
		return nil
	}

	pool := resilience.NewWorkerPool(ctx, s.cfg.App.WarmupWorkers, len(targets))
	for _, target := range targets {
		target := target
		err := pool.Submit(ctx, func(ctx context.Context) error {
			if err := p.Prime(ctx, target.Name, target.Global); err != nil {
				logger.Warnw("Segment warm-up failed", "name", target.Name, "global", target.Global, "error", err.Error())
				return fmt.Errorf("warm up %q: %w", target.Name, err)
			}
			logger.Debugw("Segment warmed up", "name", target.Name, "global", target.Global)
			return nil
		})
		if err != nil {
			return errors.Join(err, pool.Wait())
		}
	}
	return pool.Wait()
}
