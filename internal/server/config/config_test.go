package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.Server.HTTP.Addr, DefaultHTTPAddr)
	}
	if cfg.Storage.Engine != DefaultEngine {
		t.Errorf("Storage.Engine = %q, want %q", cfg.Storage.Engine, DefaultEngine)
	}
	if cfg.Storage.CompactionThreshold != DefaultCompactionThreshold {
		t.Errorf("CompactionThreshold = %d, want %d", cfg.Storage.CompactionThreshold, DefaultCompactionThreshold)
	}
	if cfg.Pool.Kind != DefaultPoolKind {
		t.Errorf("Pool.Kind = %q, want %q", cfg.Pool.Kind, DefaultPoolKind)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestVerify_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Storage.DataDir = dir

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestVerify_EmptyDataDir(t *testing.T) {
	cfg := Default()
	cfg.Storage.DataDir = ""

	if err := Verify(cfg); err == nil {
		t.Error("Verify() expected error for empty data_dir")
	}
}

func TestVerify_UnknownEngine(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Storage.DataDir = dir
	cfg.Storage.Engine = "rocksdb"

	if err := Verify(cfg); err == nil {
		t.Error("Verify() expected error for unknown engine")
	}
}

func TestVerify_ZeroWorkers(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Storage.DataDir = dir
	cfg.Pool.Workers = 0

	if err := Verify(cfg); err == nil {
		t.Error("Verify() expected error for zero pool workers")
	}
}
