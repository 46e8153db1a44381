package logstore

import "github.com/prometheus/client_golang/prometheus"

// metrics instruments one engine instance with Prometheus gauges and
// counters, following the gauge/counter split the Badger adapter uses
// for its own storage metrics.
type metrics struct {
	appends     prometheus.Counter
	compactions prometheus.Counter
	logSize     prometheus.Gauge
	keydirSize  prometheus.Gauge
}

// newMetrics builds and registers the engine's metrics. Pass a nil
// registry to get an unregistered, purely in-process metrics struct
// (useful for tests that don't want to collide on global registration).
func newMetrics(registry *prometheus.Registry) *metrics {
	m := &metrics{
		appends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kiwikv",
			Subsystem: "logstore",
			Name:      "appends_total",
			Help:      "Total number of records appended to the log file.",
		}),
		compactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kiwikv",
			Subsystem: "logstore",
			Name:      "compactions_total",
			Help:      "Total number of completed log compactions.",
		}),
		logSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kiwikv",
			Subsystem: "logstore",
			Name:      "log_size_bytes",
			Help:      "Current size of the log file in bytes.",
		}),
		keydirSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kiwikv",
			Subsystem: "logstore",
			Name:      "keydir_keys",
			Help:      "Current number of keys held in the keydir.",
		}),
	}

	if registry != nil {
		registry.MustRegister(m.appends, m.compactions, m.logSize, m.keydirSize)
	}
	return m
}
