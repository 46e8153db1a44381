// Package rpcserver exposes kiwikv's engine contract over plain
// JSON-over-HTTP: three request/reply pairs (Set, Get, Remove), a
// per-IP rate limiter, and standard operational endpoints
// (/healthz, /metrics).
//
// Files:
//
//   - server.go: the http.Server wrapper (New/ListenAndServe/Shutdown).
//   - router.go: route table and middleware chain assembly.
//   - middleware.go: Middleware/Chain, request ID, rate limiting, panic
//     recovery, access logging.
//   - handler.go: the Set/Get/Remove/healthz handlers.
package rpcserver
