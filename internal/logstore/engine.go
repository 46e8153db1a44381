package logstore

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kiwikv/kiwikv/internal/kvengine"
)

// Engine is a cheap, shareable handle onto a log-backed store: a
// reference-counted pointer to the store core guarded by one
// readers/writer lock. Cloning the handle (assigning it, passing it by
// value — Engine holds only two pointers) duplicates the
// reference; every clone sees the same underlying state.
//
// Get takes the read lock (it only opens a transient read handle and
// mutates no shared state); Set, Remove, and the compaction it can
// trigger take the write lock. This is the reader/writer optimization
// the concurrency model explicitly allows: every observable
// interleaving still honors sequential consistency over the log and
// keydir.
type Engine struct {
	mu    *sync.RWMutex
	store *store
}

var _ kvengine.Engine = (*Engine)(nil)

// Open opens (or creates) a log-backed engine rooted at dir.
func Open(dir string, cfg Config, registry *prometheus.Registry) (*Engine, error) {
	m := newMetrics(registry)
	s, err := openStore(dir, cfg, m)
	if err != nil {
		return nil, err
	}
	return &Engine{mu: &sync.RWMutex{}, store: s}, nil
}

// Set stores value under key, triggering compaction first if the log
// has grown past the configured threshold.
func (e *Engine) Set(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Set(key, value)
}

// Get looks up key. A missing key is reported as found=false with a
// nil error, never as an error condition.
func (e *Engine) Get(key string) (value string, found bool, err error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Get(key)
}

// Remove deletes key, returning an error matching kvengine.ErrNoKey if
// it was never present.
func (e *Engine) Remove(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Remove(key)
}

// Close releases the underlying log file handle, which every clone
// shares. It takes the shared write lock, so it waits for in-flight
// Set/Get/Remove calls on any clone to finish before closing.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Close()
}

// Stats reports a point-in-time snapshot of the engine's size.
type Stats struct {
	LogSizeBytes int64
	KeyCount     int
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		LogSizeBytes: e.store.offset,
		KeyCount:     e.store.keydir.len(),
	}
}

// StatsMap reports Stats as a display-friendly map, for callers (the
// RPC stats endpoint, the CLI) that want an engine-agnostic shape.
func (e *Engine) StatsMap() map[string]any {
	s := e.Stats()
	return map[string]any{
		"engine":         "kvs",
		"log_size_bytes": s.LogSizeBytes,
		"key_count":      s.KeyCount,
	}
}

// Compact triggers an immediate log compaction, independent of the
// configured size threshold.
func (e *Engine) Compact() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.compact()
}
