package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters/histograms for the webhook, classifier and sender.
// All observers are safe to call on a nil *Metrics.
type Metrics struct {
	webhookTotal    *prometheus.CounterVec
	classifyTotal   *prometheus.CounterVec
	classifyLatency prometheus.Histogram
	outboundTotal   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		webhookTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotdogbot",
			Subsystem: "webhook",
			Name:      "requests_total",
			Help:      "Inbound webhook requests by handler and outcome",
		}, []string{"handler", "outcome"}),
		classifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotdogbot",
			Subsystem: "classifier",
			Name:      "answers_total",
			Help:      "Classifier answers by verdict",
		}, []string{"verdict"}),
		classifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hotdogbot",
			Subsystem: "classifier",
			Name:      "latency_seconds",
			Help:      "Latency of vision model calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotdogbot",
			Subsystem: "messaging",
			Name:      "outbound_total",
			Help:      "Outbound provider sends by status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.webhookTotal, m.classifyTotal, m.classifyLatency, m.outboundTotal)
	return m
}

func (m *Metrics) ObserveWebhook(handler, outcome string) {
	if m == nil {
		return
	}
	m.webhookTotal.WithLabelValues(handler, outcome).Inc()
}

// ObserveClassification records one model call. verdict is "hotdog",
// "not_hotdog" or "error".
func (m *Metrics) ObserveClassification(verdict string, seconds float64) {
	if m == nil {
		return
	}
	m.classifyTotal.WithLabelValues(verdict).Inc()
	m.classifyLatency.Observe(seconds)
}

func (m *Metrics) ObserveOutbound(status string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(status).Inc()
}
