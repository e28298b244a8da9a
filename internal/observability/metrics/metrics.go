package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flows.
type BookingMetrics struct {
	appendsTotal *prometheus.CounterVec
	emailsTotal  *prometheus.CounterVec
	writeLatency *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		appendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doctorsfriend",
			Subsystem: "records",
			Name:      "appends_total",
			Help:      "Total record append attempts",
		}, []string{"collection", "status"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doctorsfriend",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total appointment confirmation emails",
		}, []string{"provider", "status"}),
		writeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "doctorsfriend",
			Subsystem: "records",
			Name:      "write_latency_seconds",
			Help:      "Latency of record store append cycles",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.appendsTotal, m.emailsTotal, m.writeLatency)
	return m
}

func (m *BookingMetrics) ObserveAppend(collection, status string) {
	if m == nil {
		return
	}
	m.appendsTotal.WithLabelValues(collection, status).Inc()
}

func (m *BookingMetrics) ObserveEmail(provider, status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(provider, status).Inc()
}

func (m *BookingMetrics) ObserveWriteLatency(collection string, seconds float64) {
	if m == nil {
		return
	}
	m.writeLatency.WithLabelValues(collection).Observe(seconds)
}
