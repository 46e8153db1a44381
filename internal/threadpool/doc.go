// Package threadpool provides three interchangeable worker pool
// implementations sharing one contract: New(n) provisions a pool of
// n workers (or fails cleanly), and Spawn(job) schedules job to run
// exactly once, without ever blocking the caller beyond enqueuing it.
//
// All three tolerate a panicking job without losing a worker or
// corrupting the pool:
//
//   - naive.go: one goroutine per Spawn, n is recorded but unused.
//   - sharedqueue.go: n long-lived workers draining a shared channel.
//   - delegating.go: forwards to github.com/panjf2000/ants/v2.
package threadpool
