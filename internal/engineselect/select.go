// Package engineselect decides which storage engine a server process
// is allowed to open in a given directory, enforcing the mutual
// exclusion between the log-backed engine and the Badger-backed
// alternative engine.
package engineselect

import (
	"os"
	"path/filepath"

	"github.com/kiwikv/kiwikv/internal/kvengine"
)

// Name identifies a storage engine by its configuration name.
type Name string

const (
	Log    Name = "kvs"
	Badger Name = "badger"
)

const (
	logSentinel    = "kvs.db"
	badgerSentinel = "db"
)

// Check verifies that engine may open dir: the other engine's sentinel
// file must not already be present. An empty or nonexistent directory
// is always fine; an existing directory that already belongs to the
// requested engine is also fine (that's the normal restart path).
func Check(engine Name, dir string) error {
	var otherSentinel string
	switch engine {
	case Log:
		otherSentinel = badgerSentinel
	case Badger:
		otherSentinel = logSentinel
	default:
		return kvengine.New(kvengine.KindOther, "unknown engine option, must be one of: kvs, badger")
	}

	if _, err := os.Stat(filepath.Join(dir, otherSentinel)); err == nil {
		return kvengine.New(kvengine.KindOther, string(engine)+" engine cannot open a directory already owned by the other engine")
	}
	return nil
}

// Parse validates a user-supplied engine name.
func Parse(s string) (Name, error) {
	switch Name(s) {
	case Log, Badger:
		return Name(s), nil
	default:
		return "", kvengine.New(kvengine.KindOther, "unknown engine option, must be one of: kvs, badger")
	}
}
