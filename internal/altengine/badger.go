package altengine

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kiwikv/kiwikv/internal/kvengine"
	"github.com/kiwikv/kiwikv/internal/telemetry/logger"
)

// logFileSentinel is the file the log-backed engine leaves behind;
// its presence means this engine must refuse to open the directory.
const logFileSentinel = "kvs.db"

// dirSentinel is the file this engine creates to claim a directory,
// matching the on-disk layout the log-backed engine checks for.
const dirSentinel = "db"

// Engine wraps a Badger database behind kiwikv's engine contract. Like
// the log-backed engine, it shares a single handle guarded by one
// lock across clones, for API symmetry even though Badger's own
// transactions already serialize internally.
type Engine struct {
	mu  sync.RWMutex
	db  *badger.DB
	cfg BadgerConfig
	log logger.Logger

	lastGCTime       atomic.Int64
	gcBytesReclaimed atomic.Uint64

	metricsLSMSize      prometheus.Gauge
	metricsValueLogSize prometheus.Gauge
	metricsTotalSize    prometheus.Gauge
	metricsLastGCTime   prometheus.Gauge
	metricsGCReclaimed  prometheus.Counter

	stopCh chan struct{}
	doneCh chan struct{}
}

var _ kvengine.Engine = (*Engine)(nil)

// Open opens (or creates) the Badger-backed engine at cfg.Dir, refusing
// to do so if the log-backed engine already owns that directory.
// On success it creates the directory-ownership sentinel the
// log-backed engine checks for.
func Open(cfg Config, registry *prometheus.Registry) (*Engine, error) {
	if cfg.Dir == "" {
		return nil, kvengine.New(kvengine.KindOther, "altengine: dir is required")
	}
	if _, err := os.Stat(filepath.Join(cfg.Dir, logFileSentinel)); err == nil {
		return nil, kvengine.New(kvengine.KindOther, "directory is owned by the log-backed engine (kvs.db present)")
	}

	log := logger.Default()

	opts := badger.DefaultOptions(cfg.Dir)
	opts.Logger = &badgerLogger{logger: log}
	opts.BlockCacheSize = cfg.Badger.CacheSize
	opts.ValueLogFileSize = cfg.Badger.ValueLogFileSize
	opts.NumMemtables = cfg.Badger.NumMemtables
	opts.NumLevelZeroTables = cfg.Badger.NumLevelZeroTables
	opts.NumLevelZeroTablesStall = cfg.Badger.NumLevelZeroTablesStall
	opts.SyncWrites = cfg.Badger.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, kvengine.Wrap(kvengine.KindAltEngine, "open badger db", err)
	}

	if err := os.WriteFile(filepath.Join(cfg.Dir, dirSentinel), []byte{}, 0o644); err != nil {
		db.Close()
		return nil, kvengine.Wrap(kvengine.KindIO, "write directory-ownership sentinel", err)
	}

	e := &Engine{
		db:     db,
		cfg:    cfg.Badger,
		log:    log,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	if registry != nil {
		e.registerMetrics(registry)
	}

	go e.gcLoop()

	log.Info("altengine started", "dir", cfg.Dir, "cache_size", cfg.Badger.CacheSize)
	return e, nil
}

// Set stores value under key, overwriting any existing value.
func (e *Engine) Set(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return kvengine.Wrap(kvengine.KindAltEngine, "set", err)
	}
	return nil
}

// Get looks up key. A missing key is reported as found=false with a
// nil error.
func (e *Engine) Get(key string) (string, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, kvengine.Wrap(kvengine.KindAltEngine, "get", err)
	}
	if !utf8.Valid(value) {
		return "", false, kvengine.New(kvengine.KindUTF8, "value is not valid utf-8")
	}
	return string(value), true, nil
}

// Remove deletes key, returning an error matching kvengine.ErrNoKey if
// it was never present.
func (e *Engine) Remove(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			return err
		}
		return txn.Delete([]byte(key))
	})
	if err == badger.ErrKeyNotFound {
		return kvengine.New(kvengine.KindNoKey, "key not found")
	}
	if err != nil {
		return kvengine.Wrap(kvengine.KindAltEngine, "remove", err)
	}
	return nil
}

// GC triggers a value-log garbage collection pass, running until
// Badger reports there is nothing left to reclaim.
func (e *Engine) GC() error {
	for {
		err := e.db.RunValueLogGC(e.cfg.GCThreshold)
		if err != nil {
			if err == badger.ErrNoRewrite {
				break
			}
			return kvengine.Wrap(kvengine.KindAltEngine, "gc", err)
		}
		e.gcBytesReclaimed.Add(1 << 20)
	}
	e.lastGCTime.Store(time.Now().UnixMilli())
	return nil
}

// Stats returns storage statistics.
func (e *Engine) Stats() Stats {
	lsm, vlog := e.db.Size()
	return Stats{
		TotalSize:        uint64(lsm + vlog),
		LSMSize:          uint64(lsm),
		ValueLogSize:     uint64(vlog),
		LastGCTime:       e.lastGCTime.Load(),
		GCBytesReclaimed: e.gcBytesReclaimed.Load(),
	}
}

// StatsMap reports Stats as a display-friendly map, for callers that
// want an engine-agnostic shape.
func (e *Engine) StatsMap() map[string]any {
	s := e.Stats()
	return map[string]any{
		"engine":                "badger",
		"total_size_bytes":      s.TotalSize,
		"lsm_size_bytes":        s.LSMSize,
		"value_log_size_bytes":  s.ValueLogSize,
		"last_gc_time_unix_ms":  s.LastGCTime,
		"gc_bytes_reclaimed":    s.GCBytesReclaimed,
	}
}

// Compact triggers an immediate value-log GC pass, the Badger
// engine's analogue of the log engine's compaction.
func (e *Engine) Compact() error {
	return e.GC()
}

// Close stops the background GC loop and closes the database. It does
// not remove the directory-ownership sentinel: the directory remains
// claimed by this engine until an operator deletes it.
func (e *Engine) Close() error {
	e.log.Info("shutting down altengine")
	close(e.stopCh)
	<-e.doneCh

	if err := e.db.Close(); err != nil {
		return kvengine.Wrap(kvengine.KindAltEngine, "close badger db", err)
	}
	return nil
}

// registerMetrics registers Badger storage metrics with Prometheus and
// starts a periodic updater.
func (e *Engine) registerMetrics(registry *prometheus.Registry) {
	e.metricsLSMSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kiwikv", Subsystem: "altengine", Name: "lsm_size_bytes",
		Help: "Badger LSM tree size in bytes.",
	})
	e.metricsValueLogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kiwikv", Subsystem: "altengine", Name: "value_log_size_bytes",
		Help: "Badger value log size in bytes.",
	})
	e.metricsTotalSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kiwikv", Subsystem: "altengine", Name: "total_size_bytes",
		Help: "Badger total storage size in bytes (LSM + value log).",
	})
	e.metricsLastGCTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kiwikv", Subsystem: "altengine", Name: "last_gc_timestamp_seconds",
		Help: "Unix timestamp of the last Badger GC run.",
	})
	e.metricsGCReclaimed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kiwikv", Subsystem: "altengine", Name: "gc_bytes_reclaimed_total",
		Help: "Total bytes reclaimed by Badger garbage collection.",
	})

	registry.MustRegister(
		e.metricsLSMSize,
		e.metricsValueLogSize,
		e.metricsTotalSize,
		e.metricsLastGCTime,
		e.metricsGCReclaimed,
	)

	go e.metricsUpdateLoop()
}

func (e *Engine) metricsUpdateLoop() {
	if e.metricsLSMSize == nil {
		return
	}

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := e.Stats()
			e.metricsLSMSize.Set(float64(stats.LSMSize))
			e.metricsValueLogSize.Set(float64(stats.ValueLogSize))
			e.metricsTotalSize.Set(float64(stats.TotalSize))
			if stats.LastGCTime > 0 {
				e.metricsLastGCTime.Set(float64(stats.LastGCTime) / 1000.0)
			}
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) gcLoop() {
	defer close(e.doneCh)

	interval, err := time.ParseDuration(e.cfg.GCInterval)
	if err != nil {
		e.log.Error("invalid gc_interval, using default 10m", "error", err)
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := e.GC(); err != nil {
				e.log.Error("auto gc failed", "error", err)
			}
		case <-e.stopCh:
			return
		}
	}
}

// badgerLogger adapts a logger.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
