package config

import (
	"errors"
	"os"
)

// Verify validates the configuration, creating the storage directory
// if it does not yet exist.
func Verify(cfg *Config) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyPool(&cfg.Pool); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}
	if cfg.HTTP.RateLimit < 0 {
		return errors.New("server.http.rate_limit must not be negative")
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}
	switch cfg.Engine {
	case "kvs", "badger":
	default:
		return errors.New("storage.engine must be one of: kvs, badger")
	}
	if cfg.CompactionThreshold < 0 {
		return errors.New("storage.compaction_threshold must not be negative")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return errors.New("cannot create data directory: " + err.Error())
	}
	return nil
}

func verifyPool(cfg *PoolSection) error {
	switch cfg.Kind {
	case "naive", "shared_queue", "delegating":
	default:
		return errors.New("pool.kind must be one of: naive, shared_queue, delegating")
	}
	if cfg.Workers < 1 {
		return errors.New("pool.workers must be at least 1")
	}
	return nil
}
