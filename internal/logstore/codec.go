package logstore

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/kiwikv/kiwikv/internal/kvengine"
)

// record is the on-disk shape of one log line: exactly one of Set or
// Remove is populated, mirroring a two-variant enum encoded by a
// serde-style tagged object — {"Set":["key","value"]} or
// {"Remove":"key"}.
type record struct {
	Set    *[2]string `json:"Set,omitempty"`
	Remove *string    `json:"Remove,omitempty"`
}

func encodeSet(key, value string) ([]byte, error) {
	r := record{Set: &[2]string{key, value}}
	line, err := json.Marshal(r)
	if err != nil {
		return nil, kvengine.Wrap(kvengine.KindInvalidData, "encode set record", err)
	}
	return append(line, '\n'), nil
}

func encodeRemove(key string) ([]byte, error) {
	r := record{Remove: &key}
	line, err := json.Marshal(r)
	if err != nil {
		return nil, kvengine.Wrap(kvengine.KindInvalidData, "encode remove record", err)
	}
	return append(line, '\n'), nil
}

// decodeRecord parses one complete log line into either a set (key,
// value, true) or a remove (key, "", false).
func decodeRecord(line []byte) (key, value string, isSet bool, err error) {
	var r record
	if err := json.Unmarshal(line, &r); err != nil {
		return "", "", false, kvengine.Wrap(kvengine.KindInvalidData, "decode record", err)
	}
	switch {
	case r.Set != nil:
		return r.Set[0], r.Set[1], true, nil
	case r.Remove != nil:
		return *r.Remove, "", false, nil
	default:
		return "", "", false, kvengine.New(kvengine.KindInvalidData, "record has neither Set nor Remove")
	}
}

// readLines calls fn for every complete, newline-terminated line in r,
// along with the byte offset at which that line starts. A final,
// unterminated partial line (the tail of a torn write) is silently
// discarded rather than surfaced as an error, per the log's recovery
// contract.
func readLines(r io.Reader, fn func(offset int64, line []byte) error) error {
	br := bufio.NewReader(r)
	var offset int64

	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 && err == nil {
			if ferr := fn(offset, line[:len(line)-1]); ferr != nil {
				return ferr
			}
			offset += int64(len(line))
			continue
		}
		if err == io.EOF {
			// line (if any) has no trailing newline: a torn write from a
			// crash mid-append. Ignore it and stop.
			return nil
		}
		if err != nil {
			return kvengine.Wrap(kvengine.KindIO, "read log", err)
		}
	}
}
