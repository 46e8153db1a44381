package logstore

import (
	"os"

	"github.com/kiwikv/kiwikv/internal/kvengine"
)

// DefaultCompactionThreshold is the log size, in bytes, past which a Set
// triggers a compaction before it appends. 84,000 bytes keeps a log of
// ~4000 small records compact without compacting on every other write.
const DefaultCompactionThreshold = 84_000

// Config tunes a store's behavior. The zero value is not usable;
// callers should start from DefaultConfig.
type Config struct {
	// CompactionThreshold is the log size, in bytes, that triggers a
	// compaction on the next Set.
	CompactionThreshold int64
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{CompactionThreshold: DefaultCompactionThreshold}
}

// store is the engine's core: a keydir kept in lockstep with an
// append-only log file. It holds no lock of its own — callers
// (Engine) serialize access per the single mutual-exclusion-primitive
// policy.
type store struct {
	dir    string
	log    *os.File
	offset int64
	keydir *keydir
	cfg    Config
	m      *metrics
}

// openStore opens (and, if necessary, creates) the log-backed store at
// dir, replaying the existing log to rebuild the keydir.
func openStore(dir string, cfg Config, m *metrics) (*store, error) {
	if dirOwnedByAltEngine(dir) {
		return nil, kvengine.New(kvengine.KindOther, "directory is owned by the alternative engine (db sentinel present)")
	}

	kd := newKeydir()
	var endOffset int64

	if logFileExists(dir) {
		f, err := os.Open(logPath(dir))
		if err != nil {
			return nil, kvengine.Wrap(kvengine.KindIO, "open log for recovery", err)
		}
		err = readLines(f, func(offset int64, line []byte) error {
			key, _, isSet, derr := decodeRecord(line)
			if derr != nil {
				// A corrupt complete line is reported, not silently
				// skipped; only a torn trailing line is tolerated.
				return derr
			}
			if isSet {
				kd.set(key, offset)
			} else {
				kd.remove(key)
			}
			endOffset = offset + int64(len(line)) + 1
			return nil
		})
		closeErr := f.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, kvengine.Wrap(kvengine.KindIO, "close log after recovery", closeErr)
		}
	}

	logFile, err := os.OpenFile(logPath(dir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, kvengine.Wrap(kvengine.KindIO, "open log for append", err)
	}

	if m != nil {
		m.logSize.Set(float64(endOffset))
		m.keydirSize.Set(float64(kd.len()))
	}

	return &store{
		dir:    dir,
		log:    logFile,
		offset: endOffset,
		keydir: kd,
		cfg:    cfg,
		m:      m,
	}, nil
}

func (s *store) Set(key, value string) error {
	if s.offset > s.cfg.CompactionThreshold {
		if err := s.compact(); err != nil {
			return err
		}
	}

	line, err := encodeSet(key, value)
	if err != nil {
		return err
	}

	offset := s.offset
	n, err := s.log.Write(line)
	if err != nil {
		// Partial write: keydir is left untouched. A torn trailing line
		// (if any bytes landed) is tolerated on next recovery.
		s.offset += int64(n)
		if s.m != nil {
			s.m.logSize.Set(float64(s.offset))
		}
		return kvengine.Wrap(kvengine.KindIO, "append set record", err)
	}
	s.offset += int64(n)

	s.keydir.set(key, offset)

	if s.m != nil {
		s.m.appends.Inc()
		s.m.logSize.Set(float64(s.offset))
		s.m.keydirSize.Set(float64(s.keydir.len()))
	}
	return nil
}

func (s *store) Get(key string) (string, bool, error) {
	offset, ok := s.keydir.get(key)
	if !ok {
		return "", false, nil
	}

	gotKey, value, err := readRecordAt(logPath(s.dir), offset)
	if err != nil {
		if kvengine.KindOf(err) == kvengine.KindOffset {
			// The keydir promised a Set at this offset; the log disagrees.
			// That is a violated invariant, not a recoverable condition.
			panic(err)
		}
		return "", false, err
	}
	if gotKey != key {
		panic(kvengine.New(kvengine.KindOffset, "offset decoded a Set for a different key than the keydir promised"))
	}
	return value, true, nil
}

func (s *store) Remove(key string) error {
	if _, ok := s.keydir.get(key); !ok {
		return kvengine.New(kvengine.KindNoKey, "key not found")
	}

	line, err := encodeRemove(key)
	if err != nil {
		return err
	}

	n, err := s.log.Write(line)
	if err != nil {
		s.offset += int64(n)
		return kvengine.Wrap(kvengine.KindIO, "append remove record", err)
	}
	s.offset += int64(n)

	s.keydir.remove(key)

	if s.m != nil {
		s.m.appends.Inc()
		s.m.logSize.Set(float64(s.offset))
		s.m.keydirSize.Set(float64(s.keydir.len()))
	}
	return nil
}

// compact rewrites the log to contain only the latest value for each
// live key, then atomically swaps it in. Any failure before the rename
// leaves the original log untouched; the scratch file is abandoned.
func (s *store) compact() error {
	tmpPath := compactionTmpPath(s.dir)

	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return kvengine.Wrap(kvengine.KindIO, "open compaction scratch file", err)
	}

	newOffsets := make(map[string]int64, s.keydir.len())
	var newOffset int64
	for _, key := range s.keydir.keys() {
		offset, _ := s.keydir.get(key)
		_, value, rerr := readRecordAt(logPath(s.dir), offset)
		if rerr != nil {
			tmp.Close()
			os.Remove(tmpPath)
			if kvengine.KindOf(rerr) == kvengine.KindOffset {
				panic(rerr)
			}
			return rerr
		}

		line, eerr := encodeSet(key, value)
		if eerr != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return eerr
		}

		n, werr := tmp.Write(line)
		if werr != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return kvengine.Wrap(kvengine.KindIO, "write compacted record", werr)
		}

		newOffsets[key] = newOffset
		newOffset += int64(n)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return kvengine.Wrap(kvengine.KindIO, "close compaction scratch file", err)
	}

	if err := s.log.Close(); err != nil {
		os.Remove(tmpPath)
		return kvengine.Wrap(kvengine.KindIO, "close current log before compaction rename", err)
	}

	if err := os.Rename(tmpPath, logPath(s.dir)); err != nil {
		// The original log is still intact under its own name; only the
		// in-memory handle needs reopening.
		reopenErr := s.reopenLog()
		if reopenErr != nil {
			return kvengine.Wrap(kvengine.KindIO, "reopen log after failed compaction rename", reopenErr)
		}
		return kvengine.Wrap(kvengine.KindIO, "rename compaction scratch file", err)
	}

	if err := s.reopenLog(); err != nil {
		return err
	}

	for key, offset := range newOffsets {
		s.keydir.set(key, offset)
	}
	s.offset = newOffset

	if s.m != nil {
		s.m.compactions.Inc()
		s.m.logSize.Set(float64(s.offset))
		s.m.keydirSize.Set(float64(s.keydir.len()))
	}
	return nil
}

func (s *store) reopenLog() error {
	f, err := os.OpenFile(logPath(s.dir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return kvengine.Wrap(kvengine.KindIO, "reopen log", err)
	}
	s.log = f
	return nil
}

func (s *store) Close() error {
	if err := s.log.Close(); err != nil {
		return kvengine.Wrap(kvengine.KindIO, "close log", err)
	}
	return nil
}
