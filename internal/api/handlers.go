// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

// Package api provides the HTTP surface of the prediction engine:
// prediction, training, synthesis, dataset quality, and cache
// maintenance endpoints, routed with chi.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashverel/arcanum/internal/metrics"
	"github.com/ashverel/arcanum/internal/models"
	"github.com/ashverel/arcanum/internal/synergy"
)

// Version is the application version reported by the health endpoint.
// Overridden at build time via -ldflags.
var Version = "dev"

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	engine  *synergy.Engine
	logger  zerolog.Logger
	started time.Time
}

// NewHandler creates the handler set around an engine.
func NewHandler(engine *synergy.Engine, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:  engine,
		logger:  logger.With().Str("component", "api").Logger(),
		started: time.Now(),
	}
}

// Predict handles POST /api/v1/predictions.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RecordPredictionError("validation")
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	prediction, cached, err := h.engine.PredictWithOrigin(r.Context(), req.Spells, req.Character, req.Environment)
	if err != nil {
		if errors.Is(err, synergy.ErrInsufficientSpellCombination) {
			metrics.RecordPredictionError("insufficient_spells")
			respondError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_COMBINATION", err.Error(), nil)
			return
		}
		metrics.RecordPredictionError("other")
		respondError(w, http.StatusInternalServerError, "PREDICTION_ERROR", "Prediction failed", err)
		return
	}

	elapsed := time.Since(start)
	source := "computed"
	if cached {
		source = "cache"
	}
	metrics.RecordPrediction(source, elapsed)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   prediction,
		Metadata: models.Metadata{
			Timestamp:     time.Now(),
			ComputeTimeMS: elapsed.Milliseconds(),
			Cached:        cached,
		},
	})
}

// Train handles POST /api/v1/model/train.
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	var req models.TrainRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	if err := h.engine.Train(req.Examples); err != nil {
		if errors.Is(err, synergy.ErrEmptyTrainingSet) {
			respondError(w, http.StatusUnprocessableEntity, "EMPTY_TRAINING_SET", err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "TRAINING_ERROR", "Training failed", err)
		return
	}
	metrics.RecordTraining(time.Since(start), len(req.Examples))

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.TrainResponse{
			DatasetSize: len(req.Examples),
			Weights:     h.engine.Weights(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// ModelPerformance handles GET /api/v1/model/performance.
func (h *Handler) ModelPerformance(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.engine.EvaluatePerformance(),
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Synthesize handles POST /api/v1/training-data/synthesize.
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req models.SynthesizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	examples := h.engine.GenerateTrainingData(req.Spells, req.Classes, req.Count)
	metrics.RecordSynthesis(len(examples))

	resp := models.SynthesizeResponse{Examples: examples}
	if req.Train && len(examples) > 0 {
		start := time.Now()
		if err := h.engine.Train(examples); err != nil {
			respondError(w, http.StatusInternalServerError, "TRAINING_ERROR", "Training on synthesized data failed", err)
			return
		}
		metrics.RecordTraining(time.Since(start), len(examples))
		quality := h.engine.ReportDatasetQuality(examples)
		resp.Quality = &quality
		resp.Trained = true
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     resp,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// DatasetQuality handles POST /api/v1/training-data/quality.
func (h *Handler) DatasetQuality(w http.ResponseWriter, r *http.Request) {
	var req models.QualityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.engine.ReportDatasetQuality(req.Examples),
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.CacheStats()
	metrics.UpdateCacheGauges(stats.TotalEntries)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     stats,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// CacheSweep handles POST /api/v1/cache/sweep.
func (h *Handler) CacheSweep(w http.ResponseWriter, r *http.Request) {
	removed := h.engine.SweepCache()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     models.SweepResponse{RemovedEntries: removed},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// CacheClear handles POST /api/v1/cache/clear.
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearCache()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"result": "cleared"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// EngineMetrics handles GET /api/v1/engine/metrics.
func (h *Handler) EngineMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.engine.Metrics(),
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthResponse{
			Status:  "healthy",
			Version: Version,
			Uptime:  time.Since(h.started).Round(time.Second).String(),
			Started: h.started,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// HealthReady handles GET /api/v1/health/ready. The engine is a pure
// in-memory service; readiness follows liveness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
