// Package logstore implements kiwikv's log-backed storage engine: an
// append-only record log on disk, an in-memory offset index (the
// keydir), and a store core that keeps the two consistent under a
// single mutual-exclusion primitive.
//
// Files:
//
//   - codec.go: the on-disk record format (one JSON object per line).
//   - logfile.go: the append-only log file and compaction scratch file.
//   - keydir.go: the in-memory key-to-offset index.
//   - store.go: the store core (Set/Get/Remove/Compact) and recovery.
//   - engine.go: the cloneable facade exposing kvengine.Engine.
//   - metrics.go: Prometheus instrumentation for the engine above.
package logstore
