// Package metrics provides Prometheus metrics collection for the analysis
// service. It exports HTTP metrics plus counters for the analysis pipeline:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - analysis_stage_duration_seconds: Histogram per pipeline stage
//   - substances_classified_total: Counter with result label (known/unknown)
//   - catalog_records: Gauge for loaded catalog size
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen recently)",
		},
	)

	AnalysisStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_stage_duration_seconds",
			Help:    "Latency of each analysis pipeline stage",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"},
	)

	SubstancesClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "substances_classified_total",
			Help: "Substances classified by the matcher",
		},
		[]string{"result"},
	)

	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_records",
			Help: "Number of records in the loaded substance catalog",
		},
	)
)

// Pipeline stage label values for AnalysisStageDuration.
const (
	StageOCR      = "ocr"
	StageExtract  = "extract"
	StageClassify = "classify"
	StageSummary  = "summary"
)

// Classification result label values for SubstancesClassified.
const (
	ResultKnown   = "known"
	ResultUnknown = "unknown"
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(AnalysisStageDuration)
	prometheus.MustRegister(SubstancesClassified)
	prometheus.MustRegister(CatalogRecords)
}
