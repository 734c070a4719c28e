package resilience

import (
	"context"
	"errors"
	"sync"
)

var ErrWorkerPoolClosed = errors.New("worker pool is closed")

// Job is a unit of work run by the pool. ctx is the pool's context.
type Job func(ctx context.Context) error

// WorkerPool runs jobs on a fixed number of goroutines and collects
// their errors.
type WorkerPool struct {
	ctx    context.Context
	jobs   chan Job
	closed bool
	mu     sync.RWMutex
	once   sync.Once
	wg     sync.WaitGroup

	errMu sync.Mutex
	errs  []error
}

func NewWorkerPool(ctx context.Context, workers, queueSize int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	p := &WorkerPool{
		ctx:  ctx,
		jobs: make(chan Job, queueSize),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if err := job(p.ctx); err != nil {
					p.errMu.Lock()
					p.errs = append(p.errs, err)
					p.errMu.Unlock()
				}
			}
		}()
	}

	return p
}

func (p *WorkerPool) Submit(ctx context.Context, job Job) error {
	if job == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

func (p *WorkerPool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
}

// Wait closes the pool, blocks until queued jobs finish and returns their
// errors joined together.
func (p *WorkerPool) Wait() error {
	p.Close()
	p.wg.Wait()

	p.errMu.Lock()
	defer p.errMu.Unlock()
	return errors.Join(p.errs...)
}
