// Package logger provides structured logging for kiwikv.
//
// This package wraps log/slog for structured logging:
//
//   - logger.go: slog.Logger construction and level control
//   - context.go: context-aware logging with request IDs
//   - redact.go: sensitive attribute redaction
//
// Features:
//
//   - JSON and text output formats
//   - Dynamic log level filtering
//   - Automatic redaction of attributes with sensitive key names
//   - Context propagation for request tracing
package logger
