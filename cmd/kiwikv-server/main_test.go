package main

import (
	"testing"
	"time"

	"github.com/kiwikv/kiwikv/internal/threadpool"
)

// panickyEngine panics on every Set, simulating the store core's
// documented behavior on an offset/corruption invariant violation
// (logstore's store.Get/compact panic in that case).
type panickyEngine struct{}

func (panickyEngine) Set(key, value string) error {
	panic("offset invariant violated")
}

func (panickyEngine) Get(key string) (string, bool, error) {
	return "", false, nil
}

func (panickyEngine) Remove(key string) error {
	return nil
}

// TestPooledEngine_DoRecoversPanic exercises do through a real pool
// implementation (sharedqueue, whose worker wraps every job in its own
// runGuarded panic barrier). Before do's own recover, a panicking job
// would be caught by the pool's wrapper first, so resultCh would never
// receive a value and do would hang forever; this pins that it instead
// unblocks the caller with an error.
func TestPooledEngine_DoRecoversPanic(t *testing.T) {
	pool, err := threadpool.New(threadpool.KindSharedQueue, 1)
	if err != nil {
		t.Fatalf("threadpool.New() error = %v", err)
	}
	defer pool.Close()

	p := pooledEngine{engine: panickyEngine{}, pool: pool}

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Set("k", "v")
	}()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("Set() on a panicking job should return an error, got nil")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pooledEngine.do hung instead of surfacing the pool job's panic as an error")
	}

	// The pool must still be usable afterward: the panic isolation
	// property (spec.md §4.9) says a panicking job must not corrupt the
	// pool or cost it a worker.
	okErrCh := make(chan error, 1)
	go func() {
		okErrCh <- p.Remove("k")
	}()

	select {
	case err := <-okErrCh:
		if err != nil {
			t.Fatalf("Remove() after a panicking job failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pool stopped accepting jobs after a panicking job")
	}
}

// TestPooledEngine_DoPropagatesError confirms that a non-panicking
// job's own error result (here Remove's nil error) comes back through
// do unchanged rather than being replaced by a recovered-panic error.
func TestPooledEngine_DoPropagatesError(t *testing.T) {
	pool, err := threadpool.New(threadpool.KindNaive, 1)
	if err != nil {
		t.Fatalf("threadpool.New() error = %v", err)
	}
	defer pool.Close()

	p := pooledEngine{engine: panickyEngine{}, pool: pool}

	err = p.Remove("missing")
	if err != nil {
		t.Fatalf("Remove() error = %v, want nil", err)
	}
}
