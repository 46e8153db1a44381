package threadpool

import "github.com/kiwikv/kiwikv/internal/kvengine"

// Kind names one of the three pool implementations, used by
// configuration to pick an implementation without importing a
// concrete type.
type Kind string

const (
	KindNaive       Kind = "naive"
	KindSharedQueue Kind = "shared_queue"
	KindDelegating  Kind = "delegating"
)

// New builds the pool implementation named by kind with n workers.
func New(kind Kind, n int) (Pool, error) {
	switch kind {
	case KindNaive:
		return NewNaive(n)
	case KindSharedQueue:
		return NewSharedQueue(n)
	case KindDelegating:
		return NewDelegating(n)
	default:
		return nil, kvengine.New(kvengine.KindOther, "unknown thread pool kind: "+string(kind))
	}
}
