package config

// Config is the root configuration for kiwikv-server.
type Config struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Pool    PoolSection    `koanf:"pool"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the RPC listener.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP RPC server.
type HTTPConfig struct {
	Addr      string `koanf:"addr"`
	RateLimit int    `koanf:"rate_limit"`
}

// StorageSection configures the storage engine.
type StorageSection struct {
	// Engine selects the storage engine: "kvs" (log-backed) or
	// "badger" (the alternative engine).
	Engine string `koanf:"engine"`

	DataDir string `koanf:"data_dir"`

	// CompactionThreshold is the log-backed engine's compaction
	// trigger, in bytes. Unused when Engine is "badger".
	CompactionThreshold int64 `koanf:"compaction_threshold"`
}

// PoolSection configures the thread pool that executes engine
// operations off the HTTP goroutine.
type PoolSection struct {
	// Kind selects the implementation: "naive", "shared_queue", or
	// "delegating".
	Kind    string `koanf:"kind"`
	Workers int    `koanf:"workers"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
