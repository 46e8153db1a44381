package logstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kiwikv/kiwikv/internal/kvengine"
)

func openTestStore(t *testing.T, dir string, cfg Config) *store {
	t.Helper()
	s, err := openStore(dir, cfg, nil)
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// S1: basic set/get/remove round trip, including Remove-of-missing.
func TestStore_S1_BasicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, DefaultConfig())

	if err := s.Set("k1", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, found, err := s.Get("k1")
	if err != nil || !found || v != "v1" {
		t.Fatalf("Get(k1) = (%q, %v, %v), want (v1, true, nil)", v, found, err)
	}

	_, found, err = s.Get("missing")
	if err != nil || found {
		t.Fatalf("Get(missing) = (_, %v, %v), want (false, nil)", found, err)
	}

	if err := s.Remove("k1"); err != nil {
		t.Fatalf("Remove(k1) error = %v", err)
	}

	_, found, err = s.Get("k1")
	if err != nil || found {
		t.Fatalf("Get(k1) after remove = (_, %v, %v), want (false, nil)", found, err)
	}

	err = s.Remove("k1")
	if !errors.Is(err, kvengine.ErrNoKey) {
		t.Fatalf("Remove(k1) twice error = %v, want kind NoKey", err)
	}
}

// S2: 100 keys survive a close/reopen cycle.
func TestStore_S2_RecoveryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, DefaultConfig())

	for i := 0; i < 100; i++ {
		if err := s.Set(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i)); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	for i := 0; i < 100; i++ {
		v, found, err := s.Get(fmt.Sprintf("key%d", i))
		want := fmt.Sprintf("value%d", i)
		if err != nil || !found || v != want {
			t.Fatalf("Get(key%d) = (%q, %v, %v), want (%s, true, nil)", i, v, found, err, want)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2, err := openStore(dir, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("reopen openStore() error = %v", err)
	}
	defer s2.Close()

	for i := 0; i < 100; i++ {
		v, found, err := s2.Get(fmt.Sprintf("key%d", i))
		want := fmt.Sprintf("value%d", i)
		if err != nil || !found || v != want {
			t.Fatalf("after reopen Get(key%d) = (%q, %v, %v), want (%s, true, nil)", i, v, found, err, want)
		}
	}
}

// S3: repeated overwrites of the same key keep only the latest keydir
// entry, but every Set still lands in the log.
func TestStore_S3_OverwriteKeepsOnlyLatestInKeydir(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, DefaultConfig())

	for _, v := range []string{"1", "2", "3"} {
		if err := s.Set("a", v); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	v, found, err := s.Get("a")
	if err != nil || !found || v != "3" {
		t.Fatalf("Get(a) = (%q, %v, %v), want (3, true, nil)", v, found, err)
	}
	if s.keydir.len() != 1 {
		t.Fatalf("keydir has %d entries, want 1", s.keydir.len())
	}
}

// S4: Remove persists across reopen.
func TestStore_S4_RemovePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir, DefaultConfig())

	if err := s.Set("a", "1"); err != nil {
		t.Fatalf("Set(a) error = %v", err)
	}
	if err := s.Set("b", "2"); err != nil {
		t.Fatalf("Set(b) error = %v", err)
	}
	if err := s.Remove("a"); err != nil {
		t.Fatalf("Remove(a) error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2, err := openStore(dir, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()

	_, found, err := s2.Get("a")
	if err != nil || found {
		t.Fatalf("Get(a) after reopen = (_, %v, %v), want (false, nil)", found, err)
	}
	v, found, err := s2.Get("b")
	if err != nil || !found || v != "2" {
		t.Fatalf("Get(b) after reopen = (%q, %v, %v), want (2, true, nil)", v, found, err)
	}
}

// S5: compaction shrinks the log and preserves the latest value.
func TestStore_S5_CompactionShrinksLog(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{CompactionThreshold: 4000 * 21}
	s := openTestStore(t, dir, cfg)

	value := "0123456789012345678901" // 22 bytes, matching the original's sizing
	var preCompactionSize, postCompactionSize, prevOffset int64
	for i := 0; i < 5000; i++ {
		if err := s.Set("k", value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if preCompactionSize == 0 && s.offset > cfg.CompactionThreshold {
			preCompactionSize = s.offset
		}
		if postCompactionSize == 0 && s.offset < prevOffset {
			postCompactionSize = s.offset
		}
		prevOffset = s.offset
	}

	v, found, err := s.Get("k")
	if err != nil || !found || v != value {
		t.Fatalf("Get(k) = (%q, %v, %v), want (%s, true, nil)", v, found, err, value)
	}

	if preCompactionSize == 0 {
		t.Fatal("test never exceeded the compaction threshold; adjust fixture")
	}
	if postCompactionSize == 0 {
		t.Fatal("log was never compacted")
	}
	if postCompactionSize*4 > preCompactionSize {
		t.Fatalf("post-compaction size %d is not at least 4x smaller than pre-compaction size %d", postCompactionSize, preCompactionSize)
	}
}

func TestStore_RefusesDirectoryOwnedByAltEngine(t *testing.T) {
	dir := t.TempDir()
	if err := writeSentinel(dir); err != nil {
		t.Fatalf("writeSentinel() error = %v", err)
	}

	_, err := openStore(dir, DefaultConfig(), nil)
	if err == nil {
		t.Fatal("openStore() should refuse a directory owned by the alternative engine")
	}
	if kvengine.KindOf(err) != kvengine.KindOther {
		t.Fatalf("openStore() error kind = %v, want Other", kvengine.KindOf(err))
	}
}
