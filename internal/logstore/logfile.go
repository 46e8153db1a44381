package logstore

import (
	"os"
	"path/filepath"

	"github.com/kiwikv/kiwikv/internal/kvengine"
)

// logFileName is the canonical append-only log within an engine
// directory.
const logFileName = "kvs.db"

// compactionTmpSuffix names the scratch file used while compacting;
// present only transiently, never left behind on a clean exit.
const compactionTmpSuffix = "..tmp"

// altEngineSentinel is the file the Badger adapter creates to claim
// ownership of a directory; its presence means this engine must refuse
// to open that directory.
const altEngineSentinel = "db"

func logPath(dir string) string {
	return filepath.Join(dir, logFileName)
}

func compactionTmpPath(dir string) string {
	return filepath.Join(dir, logFileName+compactionTmpSuffix)
}

// readRecordAt opens a short-lived read handle, seeks to offset, and
// decodes exactly one record line. Any mismatch between what the
// keydir promised and what's actually on disk at that offset is a
// violated invariant, not a recoverable error: the caller is expected
// to panic on it per the store core's recovery contract.
func readRecordAt(path string, offset int64) (key, value string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", kvengine.Wrap(kvengine.KindIO, "open log for read", err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, os.SEEK_SET); err != nil {
		return "", "", kvengine.Wrap(kvengine.KindIO, "seek log", err)
	}

	var (
		line      []byte
		foundLine bool
	)
	readErr := readLines(f, func(lineOffset int64, l []byte) error {
		if foundLine {
			return nil
		}
		line = l
		foundLine = true
		return nil
	})
	if readErr != nil {
		return "", "", readErr
	}
	if !foundLine {
		return "", "", kvengine.New(kvengine.KindOffset, "no record at recorded offset")
	}

	k, v, isSet, err := decodeRecord(line)
	if err != nil {
		return "", "", err
	}
	if !isSet {
		return "", "", kvengine.New(kvengine.KindOffset, "offset points at a Remove record, expected Set")
	}
	return k, v, nil
}

// dirOwnedByAltEngine reports whether the alternative embedded engine
// has already claimed dir.
func dirOwnedByAltEngine(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, altEngineSentinel))
	return err == nil
}

// logFileExists reports whether dir already holds a kvs.db log.
func logFileExists(dir string) bool {
	_, err := os.Stat(logPath(dir))
	return err == nil
}
