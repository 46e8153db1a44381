package kvengine

// Engine is the capability set exposed to outside callers: request
// handlers, the CLI, and tests. It is deliberately minimal — no
// iteration, no transactions, no range scans.
//
// Implementations must be:
//   - clone-cheap: shareable by many concurrent callers without copying
//     the underlying store;
//   - safe to call from any goroutine concurrently;
//   - long-lived for the duration of the process.
//
// Every method call observed to complete before another begins is
// linearizable with respect to it; see the concurrency notes on the
// concrete implementations for how each achieves that.
type Engine interface {
	// Set stores value under key, overwriting any existing value.
	Set(key, value string) error

	// Get looks up key. found is false and err is nil when the key is
	// absent; this is not an error condition.
	Get(key string) (value string, found bool, err error)

	// Remove deletes key. It returns an error satisfying
	// errors.Is(err, ErrNoKey) if key was not present.
	Remove(key string) error
}
