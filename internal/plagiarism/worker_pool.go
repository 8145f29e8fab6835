package plagiarism

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
)

type Job interface {
	Execute(ctx context.Context) error
}

// WorkerPool runs corpus scoring jobs on a fixed set of goroutines shared by all requests
type WorkerPool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	closed   sync.Once
}

// creates a new worker pool with CPU-based sizing
func NewWorkerPool(ctx context.Context) *WorkerPool {
	totalCPU := runtime.NumCPU()
	systemReserve := max(1, totalCPU/4) // Reserve 1/4 of the CPU for request handling
	size := max(1, totalCPU-systemReserve)
	log.Info().
		Int("totalCPU", totalCPU).
		Int("systemReserve", systemReserve).
		Int("workers", size).
		Msg("Worker pool initialized")

	return NewWorkerPoolWithSize(ctx, size)
}

// NewWorkerPoolWithSize creates a pool with an explicit worker count
func NewWorkerPoolWithSize(ctx context.Context, size int) *WorkerPool {
	size = max(1, size)
	poolCtx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool{
		workers:  size,
		jobQueue: make(chan Job, size*2), // Buffer 2x the worker count
		ctx:      poolCtx,
		cancel:   cancel,
	}

	pool.start()

	return pool
}

// starts all worker goroutines
func (p *WorkerPool) start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			if err := job.Execute(p.ctx); err != nil {
				log.Error().Err(err).Int("worker", id).Msg("Worker failed to execute job")
			}
		}
	}
}

// Submit queues a job, blocking while the queue is full. It gives up when
// either the pool or the caller's context is done.
func (p *WorkerPool) Submit(ctx context.Context, job Job) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}

	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	case p.jobQueue <- job:
		return nil
	}
}

// Close stops the workers and waits for them to exit. Queued jobs that have
// not started are dropped.
func (p *WorkerPool) Close() {
	p.closed.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

func (p *WorkerPool) Size() int {
	return p.workers
}
