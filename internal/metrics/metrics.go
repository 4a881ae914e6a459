// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

// Package metrics provides Prometheus instrumentation for the engine:
// prediction latency and throughput, training runs, synthesis volume,
// cache efficiency, and API endpoint performance.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Prediction Metrics
	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Duration of synergy prediction computations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of prediction requests",
		},
		[]string{"source"}, // "cache", "computed"
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_errors_total",
			Help: "Total number of failed prediction requests",
		},
		[]string{"error_type"}, // "insufficient_spells", "validation", "other"
	)

	// Training Metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "training_duration_seconds",
			Help:    "Duration of weight model training runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	TrainingRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "training_runs_total",
			Help: "Total number of completed training runs",
		},
	)

	TrainingDatasetSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_dataset_size",
			Help: "Number of examples in the most recent training set",
		},
	)

	TrainingLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_last_success_timestamp",
			Help: "Unix timestamp of the last successful training run",
		},
	)

	// Synthesis Metrics
	SynthesizedExamples = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "synthesized_examples_total",
			Help: "Total number of synthetic training examples generated",
		},
	)

	SynthesisBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "synthesis_batch_size",
			Help:    "Number of examples per synthesis request",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 5000, 10000},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prediction_cache_hits_total",
			Help: "Total number of prediction cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prediction_cache_misses_total",
			Help: "Total number of prediction cache misses",
		},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prediction_cache_entries",
			Help: "Current number of cached predictions",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prediction_cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry and clears)",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordPrediction records one prediction request. source is "cache"
// or "computed".
func RecordPrediction(source string, duration time.Duration) {
	PredictionsTotal.WithLabelValues(source).Inc()
	PredictionDuration.Observe(duration.Seconds())
}

// RecordPredictionError records a failed prediction request.
func RecordPredictionError(errorType string) {
	PredictionErrors.WithLabelValues(errorType).Inc()
}

// RecordTraining records a completed training run.
func RecordTraining(duration time.Duration, datasetSize int) {
	TrainingDuration.Observe(duration.Seconds())
	TrainingRuns.Inc()
	TrainingDatasetSize.Set(float64(datasetSize))
	TrainingLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordSynthesis records a synthesis batch.
func RecordSynthesis(count int) {
	SynthesizedExamples.Add(float64(count))
	SynthesisBatchSize.Observe(float64(count))
}

// UpdateCacheGauges refreshes the cache gauges from a stats snapshot.
func UpdateCacheGauges(entries int) {
	CacheSize.Set(float64(entries))
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
