package worker

import (
	"context"
	"sync"
)

// Job is one unit of work, typically a single LLM extraction call or a
// single disclosure audit.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is whatever a Job produces. GetError distinguishes failed units
// without forcing a shared payload type.
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of goroutines. Usage is one-shot:
// Start, Submit everything, then Wait for the results. Workers record
// results under a lock rather than sending on a channel, so callers may
// submit any number of jobs before draining; a worker can never wedge
// waiting for a reader.
type Pool struct {
	workers int
	jobs    chan Job

	mu      sync.Mutex
	results []Result

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a pool with the given worker count, minimum one.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			p.mu.Lock()
			p.results = append(p.results, result)
			p.mu.Unlock()
		}
	}
}

// Submit queues a job. Submissions after Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- job:
	}
}

// Wait closes the queue, lets the workers drain it, and returns every
// result recorded so far. No more submissions are accepted afterwards.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// Shutdown cancels in-flight work and releases the workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
