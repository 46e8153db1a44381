package engineselect

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheck_EmptyDirAllowsEither(t *testing.T) {
	dir := t.TempDir()
	if err := Check(Log, dir); err != nil {
		t.Errorf("Check(Log, empty dir) error = %v", err)
	}
	if err := Check(Badger, dir); err != nil {
		t.Errorf("Check(Badger, empty dir) error = %v", err)
	}
}

func TestCheck_RefusesMismatchedEngine(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, badgerSentinel), []byte{}, 0o644); err != nil {
		t.Fatalf("seed sentinel error = %v", err)
	}

	if err := Check(Log, dir); err == nil {
		t.Fatal("Check(Log, dir owned by badger) should refuse")
	}
	if err := Check(Badger, dir); err != nil {
		t.Errorf("Check(Badger, dir owned by badger) error = %v", err)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("kvs"); err != nil {
		t.Errorf("Parse(kvs) error = %v", err)
	}
	if _, err := Parse("badger"); err != nil {
		t.Errorf("Parse(badger) error = %v", err)
	}
	if _, err := Parse("sled"); err == nil {
		t.Fatal("Parse(sled) should error")
	}
}
