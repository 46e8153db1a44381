// Package altengine is kiwikv's alternative storage engine: a thin
// adapter over Badger (github.com/dgraph-io/badger/v3) satisfying the
// same kvengine.Engine contract as the log-backed engine in
// internal/logstore.
//
// A directory may be owned by exactly one engine at a time. Opening
// this engine creates a "db" sentinel file; opening the log-backed
// engine checks for it and refuses if present, and this engine refuses
// to open a directory that already holds a "kvs.db" log.
package altengine
