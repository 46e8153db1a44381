package threadpool

import "github.com/kiwikv/kiwikv/internal/telemetry/logger"

// Naive starts a fresh goroutine for every Spawn. The worker count
// passed to NewNaive is recorded but otherwise ignored; nothing caps
// concurrency.
type Naive struct {
	n   int
	log logger.Logger
}

// NewNaive constructs a Naive pool. n is recorded for introspection
// only; it never fails.
func NewNaive(n int) (*Naive, error) {
	return &Naive{n: n, log: logger.Default()}, nil
}

func (p *Naive) Spawn(job func()) {
	go runGuarded(p.log, job)
}

func (p *Naive) Close() {}

// runGuarded runs job, recovering any panic so that one failing job
// never takes down the goroutine (or, for pools that track workers,
// the worker) running it.
func runGuarded(log logger.Logger, job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("thread pool job panicked", "panic", r)
		}
	}()
	job()
}
