package metrics

import "github.com/prometheus/client_golang/prometheus"

// Reporter publishes a Snapshot as a Prometheus GaugeVec keyed by metric
// name, so any of the five policies' Metrics() output can be exported
// without a bespoke adapter per policy — generalizing
// IvanBrykalov-shardcache/metrics/prom/prom.go's per-counter adapter into
// one adapter that understands the deterministic Snapshot contract.
type Reporter struct {
	gauge *prometheus.GaugeVec
}

// NewReporter registers a "<namespace>_<subsystem>_metric" GaugeVec labeled
// by metric name. reg nil defaults to prometheus.DefaultRegisterer.
func NewReporter(reg prometheus.Registerer, namespace, subsystem string) *Reporter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "metric",
		Help:      "cachekit metric value, labeled by metric name",
	}, []string{"name"})
	reg.MustRegister(g)
	return &Reporter{gauge: g}
}

// Report sets one gauge per entry of the snapshot, in its deterministic
// order (order doesn't affect Prometheus's storage, but keeps the set call
// sequence reproducible for tests that assert against a mock registerer).
func (r *Reporter) Report(s Snapshot) {
	for _, kv := range s.Ordered() {
		r.gauge.WithLabelValues(kv.Name).Set(kv.Value)
	}
}
