package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Feed holds the collectors exposed by the feed server.
type Feed struct {
	Requests    *prometheus.CounterVec
	DatasetSize prometheus.Gauge
	LoadErrors  prometheus.Counter
}

// NewFeed creates the feed collectors and registers them on reg.
func NewFeed(reg prometheus.Registerer) *Feed {
	f := &Feed{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "osint_desk",
			Name:      "feed_requests_total",
			Help:      "Feed requests by route and status code.",
		}, []string{"route", "code"}),
		DatasetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "osint_desk",
			Name:      "dataset_events",
			Help:      "Events in the dataset at the last read.",
		}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "osint_desk",
			Name:      "dataset_load_errors_total",
			Help:      "Failed dataset reads.",
		}),
	}
	reg.MustRegister(f.Requests, f.DatasetSize, f.LoadErrors)
	return f
}
