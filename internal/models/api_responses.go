// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

// Package models holds the wire-level request and response types shared
// by the HTTP API.
package models

import (
	"time"

	"github.com/ashverel/arcanum/internal/synergy"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"predicted_compatibility": 0.82, ...},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "compute_time_ms": 2,
//	    "cached": false
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// ComputeTimeMS is the server-side time spent producing the payload;
// cached prediction responses report 0 with Cached set.
type Metadata struct {
	Timestamp     time.Time `json:"timestamp"`
	ComputeTimeMS int64     `json:"compute_time_ms,omitempty"`
	Cached        bool      `json:"cached,omitempty"`
}

// APIError is a structured error payload.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - PREDICTION_ERROR: the engine rejected the request
//   - TRAINING_ERROR: model training failed
//   - NOT_FOUND: unknown route
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PredictionRequest is the body of POST /api/v1/predictions.
type PredictionRequest struct {
	Spells      []synergy.Spell              `json:"spells" validate:"required,min=2,max=4,dive"`
	Character   synergy.Character            `json:"character" validate:"required"`
	Environment synergy.EnvironmentalContext `json:"environment"`
}

// TrainRequest is the body of POST /api/v1/model/train.
type TrainRequest struct {
	Examples []synergy.TrainingExample `json:"examples" validate:"required,min=1,dive"`
}

// TrainResponse reports the outcome of a training run.
type TrainResponse struct {
	DatasetSize int                  `json:"dataset_size"`
	Weights     synergy.ModelWeights `json:"weights"`
}

// SynthesizeRequest is the body of POST /api/v1/training-data/synthesize.
type SynthesizeRequest struct {
	Spells  []synergy.Spell `json:"spells" validate:"required,min=2,dive"`
	Classes []string        `json:"classes" validate:"required,min=1,dive,required"`
	Count   int             `json:"count" validate:"required,min=1,max=10000"`

	// Train also retrains the model on the generated examples.
	Train bool `json:"train,omitempty"`
}

// SynthesizeResponse carries the generated examples and, when training
// was requested, the quality report for them.
type SynthesizeResponse struct {
	Examples []synergy.TrainingExample `json:"examples"`
	Quality  *synergy.QualityReport    `json:"quality,omitempty"`
	Trained  bool                      `json:"trained"`
}

// QualityRequest is the body of POST /api/v1/training-data/quality.
type QualityRequest struct {
	Examples []synergy.TrainingExample `json:"examples" validate:"required,min=1,dive"`
}

// SweepResponse reports the result of an on-demand cache sweep.
type SweepResponse struct {
	RemovedEntries int `json:"removed_entries"`
}

// HealthResponse is the payload of GET /api/v1/health.
type HealthResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	Uptime  string    `json:"uptime"`
	Started time.Time `json:"started"`
}
