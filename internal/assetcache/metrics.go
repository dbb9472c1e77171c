package assetcache

import "github.com/prometheus/client_golang/prometheus"

const (
	resultHit         = "hit"
	resultMiss        = "miss"
	resultPassthrough = "passthrough"
)

// Metrics counts how intercepted requests were answered.
type Metrics struct {
	requests *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logos_asset_cache_requests_total",
			Help: "Requests seen by the offline asset cache, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests)
	return m
}

func (m *Metrics) observe(result string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(result).Inc()
}
