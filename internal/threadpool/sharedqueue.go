package threadpool

import (
	"sync"

	"github.com/kiwikv/kiwikv/internal/telemetry/logger"
)

// SharedQueue runs n long-lived worker goroutines that drain an
// unbounded job queue. A panicking job is caught and logged by the
// worker that ran it; that worker then loops back to pick up the next
// job, so the pool's effective worker count never drops.
type SharedQueue struct {
	jobs   chan func()
	log    logger.Logger
	wg     sync.WaitGroup
	closed chan struct{}
	once   sync.Once
}

// NewSharedQueue spawns n workers reading from a shared, unbounded
// queue. Spawn enqueues and returns immediately; it never blocks on a
// worker being free.
func NewSharedQueue(n int) (*SharedQueue, error) {
	p := &SharedQueue{
		jobs:   make(chan func()),
		log:    logger.Default(),
		closed: make(chan struct{}),
	}

	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p, nil
}

func (p *SharedQueue) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			runGuarded(p.log, job)
		case <-p.closed:
			return
		}
	}
}

// Spawn hands job to the shared queue. The send happens in a goroutine
// so that Spawn never blocks the caller even when every worker is busy
// and the queue would otherwise apply backpressure — the queue is
// modeled as unbounded from the caller's perspective. p.jobs is never
// closed, so this send is always safe regardless of Close races.
func (p *SharedQueue) Spawn(job func()) {
	go func() {
		select {
		case p.jobs <- job:
		case <-p.closed:
		}
	}()
}

// Close stops accepting new work and waits for workers to exit. Jobs
// still sitting in the queue when Close runs are dropped.
func (p *SharedQueue) Close() {
	p.once.Do(func() {
		close(p.closed)
	})
	p.wg.Wait()
}
