package config

// Default configuration values.
const (
	DefaultHTTPAddr  = "127.0.0.1:4000"
	DefaultRateLimit = 0

	DefaultEngine              = "kvs"
	DefaultDataDir             = "/var/lib/kiwikv/data"
	DefaultCompactionThreshold = 84_000

	DefaultPoolKind = "shared_queue"
	DefaultWorkers  = 4

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *Config {
	return &Config{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:      DefaultHTTPAddr,
				RateLimit: DefaultRateLimit,
			},
		},
		Storage: StorageSection{
			Engine:              DefaultEngine,
			DataDir:             DefaultDataDir,
			CompactionThreshold: DefaultCompactionThreshold,
		},
		Pool: PoolSection{
			Kind:    DefaultPoolKind,
			Workers: DefaultWorkers,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
