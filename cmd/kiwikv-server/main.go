// Package main provides the entry point for kiwikv-server.
//
// kiwikv-server is the process that owns a storage directory and
// serves Set/Get/Remove over a small JSON-over-HTTP RPC surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kiwikv/kiwikv/internal/altengine"
	"github.com/kiwikv/kiwikv/internal/engineselect"
	"github.com/kiwikv/kiwikv/internal/infra/buildinfo"
	"github.com/kiwikv/kiwikv/internal/infra/confloader"
	"github.com/kiwikv/kiwikv/internal/infra/shutdown"
	"github.com/kiwikv/kiwikv/internal/kvengine"
	"github.com/kiwikv/kiwikv/internal/logstore"
	"github.com/kiwikv/kiwikv/internal/server/config"
	"github.com/kiwikv/kiwikv/internal/server/rpcserver"
	"github.com/kiwikv/kiwikv/internal/telemetry/logger"
	"github.com/kiwikv/kiwikv/internal/threadpool"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("kiwikv-server " + buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting kiwikv-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	registry := prometheus.NewRegistry()

	engine, closeEngine, err := openEngine(cfg, registry)
	if err != nil {
		return fmt.Errorf("open storage engine: %w", err)
	}

	pool, err := threadpool.New(threadpool.Kind(cfg.Pool.Kind), cfg.Pool.Workers)
	if err != nil {
		return fmt.Errorf("init thread pool: %w", err)
	}

	router := rpcserver.NewRouter(&rpcserver.RouterConfig{
		Engine:          pooledEngine{engine: engine, pool: pool},
		Logger:          log,
		RateLimit:       cfg.Server.HTTP.RateLimit,
		MetricsRegistry: registry,
	})

	server := rpcserver.New(cfg.Server.HTTP.Addr, router)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	configWatcher, err := watchLogLevel(*configFile, log)
	if err != nil {
		return fmt.Errorf("watch config file: %w", err)
	}
	if configWatcher != nil {
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("stopping config watcher")
			return configWatcher.Stop()
		})
	}

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing storage engine")
		return closeEngine()
	})
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing thread pool")
		pool.Close()
		return nil
	})
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down RPC server")
		return server.Shutdown(ctx)
	})

	go func() {
		log.Info("listening", "addr", cfg.Server.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("RPC server failed", "error", err)
		}
	}()

	return shutdownHandler.Wait()
}

// watchLogLevel re-reads configFile's log.level on every change and
// applies it via logger.SetLevel, without restarting the process or
// touching any of the structural settings (storage engine, data dir,
// pool kind, listen address) that only take effect on a fresh Open.
// It returns a nil watcher, not an error, when no config file was
// given, since there is nothing on disk to watch.
func watchLogLevel(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	if configFile == "" {
		return nil, nil
	}

	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			log.Error("config reload failed, keeping current log level", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		log.Info("reloaded log level from config change", "path", path, "level", cfg.Log.Level)
	})

	watcher.StartAsync()
	return watcher, nil
}

func loadConfig(configFile string) (*config.Config, error) {
	cfg := config.Default()

	var opts []confloader.Option
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// openEngine opens the engine named by cfg.Storage.Engine, returning
// it alongside a close function.
func openEngine(cfg *config.Config, registry *prometheus.Registry) (kvengine.Engine, func() error, error) {
	name, err := engineselect.Parse(cfg.Storage.Engine)
	if err != nil {
		return nil, nil, err
	}
	if err := engineselect.Check(name, cfg.Storage.DataDir); err != nil {
		return nil, nil, err
	}

	switch name {
	case engineselect.Log:
		storeCfg := logstore.DefaultConfig()
		if cfg.Storage.CompactionThreshold > 0 {
			storeCfg.CompactionThreshold = cfg.Storage.CompactionThreshold
		}
		eng, err := logstore.Open(cfg.Storage.DataDir, storeCfg, registry)
		if err != nil {
			return nil, nil, err
		}
		return eng, eng.Close, nil
	case engineselect.Badger:
		badgerCfg := altengine.DefaultConfig(cfg.Storage.DataDir)
		eng, err := altengine.Open(badgerCfg, registry)
		if err != nil {
			return nil, nil, err
		}
		return eng, eng.Close, nil
	default:
		return nil, nil, fmt.Errorf("unreachable engine name %q", name)
	}
}

// pooledEngine routes every engine call through a thread pool job so
// that a slow or panicking operation never blocks the HTTP goroutine
// that submitted it.
type pooledEngine struct {
	engine kvengine.Engine
	pool   threadpool.Pool
}

func (p pooledEngine) Set(key, value string) error {
	return p.do(func() error { return p.engine.Set(key, value) })
}

func (p pooledEngine) Remove(key string) error {
	return p.do(func() error { return p.engine.Remove(key) })
}

func (p pooledEngine) Get(key string) (string, bool, error) {
	var value string
	var found bool
	err := p.do(func() error {
		var gerr error
		value, found, gerr = p.engine.Get(key)
		return gerr
	})
	return value, found, err
}

// administrable mirrors rpcserver's optional management interface; a
// pooledEngine implements it whenever the engine underneath does.
type administrable interface {
	StatsMap() map[string]any
	Compact() error
}

func (p pooledEngine) StatsMap() map[string]any {
	admin, ok := p.engine.(administrable)
	if !ok {
		return map[string]any{}
	}
	var stats map[string]any
	p.do(func() error {
		stats = admin.StatsMap()
		return nil
	})
	return stats
}

func (p pooledEngine) Compact() error {
	admin, ok := p.engine.(administrable)
	if !ok {
		return fmt.Errorf("engine does not support compaction")
	}
	return p.do(func() error { return admin.Compact() })
}

// do runs fn on the thread pool and blocks the calling goroutine until
// it finishes. The pool's own worker wrapper (runGuarded in naive.go
// and sharedqueue.go, ants.WithPanicHandler in delegating.go) recovers
// a job panic before it ever reaches this closure, which means
// resultCh would otherwise never receive a value and this call — and
// the HTTP goroutine blocked in it — would hang forever. The recover
// here runs inside the spawned closure itself, ahead of the pool's own
// recovery, so a panicking job (the store core's documented behavior
// on an offset/corruption invariant violation) still unblocks the
// caller with an error instead of leaking the goroutine.
func (p pooledEngine) do(fn func() error) error {
	resultCh := make(chan error, 1)
	p.pool.Spawn(func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- fmt.Errorf("thread pool job panicked: %v", r)
			}
		}()
		resultCh <- fn()
	})
	return <-resultCh
}
