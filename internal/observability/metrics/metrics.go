package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "powerplan_"

	// ResultSuccess and ResultError label operation outcomes.
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	uploadRequests *prometheus.CounterVec
	uploadErrors   *prometheus.CounterVec
	uploadLatency  *prometheus.HistogramVec

	estimateTotal   *prometheus.CounterVec
	estimateLatency *prometheus.HistogramVec

	compareTotal   *prometheus.CounterVec
	compareLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	activeSessions prometheus.Gauge
)

// Init registers service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		uploadRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upload_requests_total",
				Help: "Total reading uploads by result",
			},
			[]string{"result"},
		)
		uploadErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upload_errors_total",
				Help: "Total reading upload errors by reason",
			},
			[]string{"reason"},
		)
		uploadLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "upload_latency_seconds",
				Help:    "Reading upload latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		estimateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "estimate_total",
				Help: "Total annual cost estimates by result",
			},
			[]string{"result"},
		)
		estimateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "estimate_latency_seconds",
				Help:    "Annual cost estimate latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		compareTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "compare_total",
				Help: "Total plan comparisons by result",
			},
			[]string{"result"},
		)
		compareLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "compare_latency_seconds",
				Help:    "Plan comparison latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total estimate export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Estimate export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		activeSessions = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "active_sessions",
				Help: "Number of live analysis sessions",
			},
		)

		prometheus.MustRegister(
			uploadRequests,
			uploadErrors,
			uploadLatency,
			estimateTotal,
			estimateLatency,
			compareTotal,
			compareLatency,
			exportTotal,
			exportLatency,
			activeSessions,
		)
	})
}

// ObserveUpload records upload duration and result.
func ObserveUpload(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if uploadRequests != nil {
		uploadRequests.WithLabelValues(result).Inc()
	}
	if uploadLatency != nil {
		uploadLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncUploadError increments the upload error counter.
func IncUploadError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if uploadErrors != nil {
		uploadErrors.WithLabelValues(reason).Inc()
	}
}

// ObserveEstimate records estimate latency and result.
func ObserveEstimate(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if estimateTotal != nil {
		estimateTotal.WithLabelValues(result).Inc()
	}
	if estimateLatency != nil {
		estimateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveCompare records comparison latency and result.
func ObserveCompare(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if compareTotal != nil {
		compareTotal.WithLabelValues(result).Inc()
	}
	if compareLatency != nil {
		compareLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records export latency by format and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// SetActiveSessions sets the live session gauge.
func SetActiveSessions(count int) {
	if count < 0 {
		count = 0
	}
	if activeSessions != nil {
		activeSessions.Set(float64(count))
	}
}
