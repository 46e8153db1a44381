package threadpool

// Pool is a handle to a running worker pool. Spawn schedules job to
// run to completion exactly once; it never blocks beyond whatever work
// is needed to hand the job off.
//
// A job that panics must not reduce the pool's effective worker count,
// corrupt it, or invalidate it for subsequent Spawn calls.
type Pool interface {
	Spawn(job func())
	// Close stops accepting new work and releases the pool's
	// resources. Jobs already spawned are not guaranteed to finish
	// before Close returns.
	Close()
}
