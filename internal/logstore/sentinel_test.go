package logstore

import (
	"os"
	"path/filepath"
)

// writeSentinel simulates the alternative engine having already claimed
// dir, for tests that exercise the mutual-exclusion refusal.
func writeSentinel(dir string) error {
	return os.WriteFile(filepath.Join(dir, altEngineSentinel), []byte{}, 0o644)
}
