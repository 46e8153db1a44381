// Package kvengine defines the storage engine contract shared by every
// kiwikv backend: the log-backed engine in internal/logstore and the
// Badger-backed adapter in internal/altengine both satisfy Engine.
package kvengine

import (
	"errors"
	"fmt"
)

// Kind classifies an Error by the failure category it represents, not by
// the Go type that produced it. Callers that need to branch on failure
// mode should switch on Kind rather than type-asserting concrete errors.
type Kind int

const (
	// KindNoKey means Remove was called for a key absent from the keydir.
	KindNoKey Kind = iota
	// KindOffset means the log's bytes at a keydir-recorded offset do not
	// decode to a Set for the expected key. Callers should treat this as
	// a fatal program bug; the store core panics rather than returning it.
	KindOffset
	// KindIO wraps an underlying filesystem or syscall failure.
	KindIO
	// KindInvalidData means a complete record line failed to decode.
	KindInvalidData
	// KindUTF8 means a byte-to-text conversion failed on a value read
	// back from the alternative engine.
	KindUTF8
	// KindAltEngine wraps a failure reported by the alternative embedded
	// engine (Badger).
	KindAltEngine
	// KindAddrParse wraps an address-parsing failure from a transport
	// boundary collaborator.
	KindAddrParse
	// KindTransport wraps a network transport failure.
	KindTransport
	// KindThreadPoolBuild means thread pool provisioning failed.
	KindThreadPoolBuild
	// KindOther covers ad-hoc startup conditions: engine-mismatch
	// refusal, an unrecognized engine name, and similar.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNoKey:
		return "no_key"
	case KindOffset:
		return "offset"
	case KindIO:
		return "io"
	case KindInvalidData:
		return "invalid_data"
	case KindUTF8:
		return "utf8"
	case KindAltEngine:
		return "alt_engine"
	case KindAddrParse:
		return "addr_parse"
	case KindTransport:
		return "transport"
	case KindThreadPoolBuild:
		return "thread_pool_build"
	default:
		return "other"
	}
}

// Error is the error type returned by every engine operation. It carries
// a Kind so callers can branch on failure category without depending on
// a specific wrapped type.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, kvengine.ErrNoKey).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind, wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// ErrNoKey is a sentinel matched via errors.Is for the "Remove of an
// absent key" case. Compare kind only: errors.Is(err, ErrNoKey).
var ErrNoKey = &Error{Kind: KindNoKey, Message: "key not found"}

// KindOf extracts the Kind from err if it is (or wraps) a *Error,
// returning KindOther otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}
