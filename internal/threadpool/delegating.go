package threadpool

import (
	"github.com/panjf2000/ants/v2"

	"github.com/kiwikv/kiwikv/internal/kvengine"
	"github.com/kiwikv/kiwikv/internal/telemetry/logger"
)

// Delegating wraps an external work-stealing pool
// (github.com/panjf2000/ants/v2) and forwards New/Spawn to it. This is
// kiwikv's analogue of wrapping a pool like Rust's rayon: the pool
// itself owns worker management, scheduling, and panic recovery
// policy; Delegating just adapts its API to the Pool contract.
type Delegating struct {
	pool *ants.Pool
	log  logger.Logger
}

// NewDelegating provisions a work-stealing pool of n workers. If the
// underlying pool fails to provision, any partially-allocated
// resources are released and the error is surfaced as a
// KindThreadPoolBuild error.
func NewDelegating(n int) (*Delegating, error) {
	log := logger.Default()

	pool, err := ants.NewPool(n,
		ants.WithPanicHandler(func(r any) {
			log.Error("thread pool job panicked", "panic", r)
		}),
	)
	if err != nil {
		return nil, kvengine.Wrap(kvengine.KindThreadPoolBuild, "provision delegating thread pool", err)
	}

	return &Delegating{pool: pool, log: log}, nil
}

// Spawn hands job to the pool from its own goroutine: the blocking
// Submit waits for a free worker instead of rejecting the job, and the
// caller does not wait with it. Only a pool that has been closed
// rejects the job, which is logged.
func (p *Delegating) Spawn(job func()) {
	go func() {
		if err := p.pool.Submit(job); err != nil {
			p.log.Error("delegating thread pool rejected job", "error", err)
		}
	}()
}

func (p *Delegating) Close() {
	p.pool.Release()
}
