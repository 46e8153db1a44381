package rpcserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kiwikv/kiwikv/internal/kvengine"
	"github.com/kiwikv/kiwikv/internal/telemetry/logger"
)

// RouterConfig configures the route table and its middleware chain.
type RouterConfig struct {
	Engine kvengine.Engine
	Logger logger.Logger

	// RateLimit is the per-IP requests/second limit. Zero disables
	// rate limiting.
	RateLimit int

	// MetricsRegistry, if non-nil, is served at /metrics.
	MetricsRegistry *prometheus.Registry
}

// NewRouter builds the HTTP handler for the RPC surface: Recover ->
// RequestID -> RateLimit -> AccessLog -> routes.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := NewHandler(cfg.Engine, cfg.Logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/set", h.Set)
	mux.HandleFunc("/v1/get", h.Get)
	mux.HandleFunc("/v1/remove", h.Remove)
	mux.HandleFunc("/v1/stats", h.Stats)
	mux.HandleFunc("/v1/compact", h.Compact)
	mux.HandleFunc("/healthz", h.Healthz)

	if cfg.MetricsRegistry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(cfg.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	middlewares := []Middleware{
		Recover(cfg.Logger),
		RequestID(),
	}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit))
	}
	middlewares = append(middlewares, AccessLog(cfg.Logger))

	return Chain(mux, middlewares...)
}
