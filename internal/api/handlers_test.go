// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ashverel/arcanum/internal/models"
	"github.com/ashverel/arcanum/internal/synergy"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	engine := synergy.NewEngine(synergy.DefaultConfig(), zerolog.Nop())
	handler := NewHandler(engine, zerolog.Nop())
	middleware := NewMiddleware(&MiddlewareConfig{
		RateLimitDisabled: true,
	})
	return NewRouter(handler, middleware).Setup()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp models.APIResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func validPredictionRequest() models.PredictionRequest {
	return models.PredictionRequest{
		Spells: []synergy.Spell{
			{Name: "Fireball", School: "Evocation", Level: 3, InteractionType: "Damage"},
			{Name: "Haste", School: "Transmutation", Level: 3, InteractionType: "Buff"},
		},
		Character: synergy.Character{Class: "Wizard", Level: 5, Intelligence: 16, Wisdom: 12},
		Environment: synergy.EnvironmentalContext{
			Terrain:          "dungeon",
			CombatDifficulty: "hard",
		},
	}
}

func TestPredictEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/predictions", validPredictionRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if resp.Status != "success" {
		t.Errorf("response status = %q, want success", resp.Status)
	}
	if resp.Metadata.Cached {
		t.Error("first prediction reported as cached")
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshaling data: %v", err)
	}
	var prediction synergy.Prediction
	if err := json.Unmarshal(data, &prediction); err != nil {
		t.Fatalf("decoding prediction: %v", err)
	}
	if prediction.PredictedCompatibility < 0 || prediction.PredictedCompatibility > 1 {
		t.Errorf("PredictedCompatibility = %v, want within [0, 1]", prediction.PredictedCompatibility)
	}
	if len(prediction.Combination) != 2 {
		t.Errorf("Combination = %v, want both spell names", prediction.Combination)
	}

	// Second identical request is served from cache.
	rec, resp = doJSON(t, router, http.MethodPost, "/api/v1/predictions", validPredictionRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !resp.Metadata.Cached {
		t.Error("repeat prediction not reported as cached")
	}
}

func TestPredictEndpoint_Validation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	tests := []struct {
		name     string
		body     interface{}
		wantCode string
	}{
		{
			name: "single spell",
			body: models.PredictionRequest{
				Spells: []synergy.Spell{
					{Name: "Fireball", School: "Evocation", Level: 3},
				},
				Character: synergy.Character{Class: "Wizard", Level: 5},
			},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name: "missing character class",
			body: models.PredictionRequest{
				Spells: []synergy.Spell{
					{Name: "Fireball", School: "Evocation", Level: 3},
					{Name: "Shield", School: "Abjuration", Level: 1},
				},
				Character: synergy.Character{Level: 5},
			},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "not json",
			body:     "plainly not a request",
			wantCode: "INVALID_JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/predictions", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %q", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestTrainAndPerformanceEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	trainReq := models.TrainRequest{
		Examples: []synergy.TrainingExample{
			{
				Combination: []string{"Fireball", "Haste"},
				Outcome:     synergy.ExampleOutcome{Effectiveness: 0.9, SynergyScore: 1.2},
				Context:     synergy.ExampleContext{CharacterClass: "Wizard", EnvironmentType: "dungeon"},
			},
			{
				Combination: []string{"Shield", "Cure Wounds"},
				Outcome:     synergy.ExampleOutcome{Effectiveness: 0.6, SynergyScore: 0.6},
				Context:     synergy.ExampleContext{CharacterClass: "Cleric", EnvironmentType: "forest"},
			},
		},
	}

	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/model/train", trainReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("train status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if resp.Status != "success" {
		t.Errorf("train response status = %q, want success", resp.Status)
	}

	rec, resp = doJSON(t, router, http.MethodGet, "/api/v1/model/performance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("performance status = %d, want 200", rec.Code)
	}

	data, _ := json.Marshal(resp.Data)
	var report synergy.PerformanceReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.TrainingDatasetSize != 2 {
		t.Errorf("TrainingDatasetSize = %d, want 2", report.TrainingDatasetSize)
	}
}

func TestTrainEndpoint_EmptySet(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/model/train", models.TrainRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
}

func TestSynthesizeEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := models.SynthesizeRequest{
		Spells: []synergy.Spell{
			{Name: "Fireball", School: "Evocation", Level: 3},
			{Name: "Shield", School: "Abjuration", Level: 1},
			{Name: "Haste", School: "Transmutation", Level: 3},
			{Name: "Cure Wounds", School: "Evocation", Level: 1},
		},
		Classes: []string{"Wizard", "Cleric"},
		Count:   50,
		Train:   true,
	}

	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/training-data/synthesize", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	data, _ := json.Marshal(resp.Data)
	var synth models.SynthesizeResponse
	if err := json.Unmarshal(data, &synth); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(synth.Examples) != 50 {
		t.Errorf("Examples = %d, want 50", len(synth.Examples))
	}
	if !synth.Trained {
		t.Error("Trained = false, want true")
	}
	if synth.Quality == nil {
		t.Error("Quality = nil, want a report when training was requested")
	}
}

func TestDatasetQualityEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := models.QualityRequest{
		Examples: []synergy.TrainingExample{
			{
				Combination: []string{"Fireball", "Haste"},
				Outcome:     synergy.ExampleOutcome{Effectiveness: 0.5, SynergyScore: 0.5},
				Context:     synergy.ExampleContext{CharacterClass: "Wizard"},
			},
		},
	}

	rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/training-data/quality", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	data, _ := json.Marshal(resp.Data)
	var report synergy.QualityReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.Metrics.DatasetSize != 1 {
		t.Errorf("DatasetSize = %d, want 1", report.Metrics.DatasetSize)
	}
	if len(report.Recommendations) == 0 {
		t.Error("Recommendations empty, want size recommendation for tiny dataset")
	}
}

func TestCacheEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	// Warm the cache with one prediction.
	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/predictions", validPredictionRequest()); rec.Code != http.StatusOK {
		t.Fatalf("warmup status = %d, want 200", rec.Code)
	}

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/cache/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", rec.Code)
	}
	data, _ := json.Marshal(resp.Data)
	var stats struct {
		TotalEntries int `json:"total_entries"`
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d, want 1", stats.TotalEntries)
	}

	rec, resp = doJSON(t, router, http.MethodPost, "/api/v1/cache/sweep", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sweep status = %d, want 200", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/cache/clear", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d, want 200", rec.Code)
	}

	rec, resp = doJSON(t, router, http.MethodGet, "/api/v1/cache/stats", nil)
	data, _ = json.Marshal(resp.Data)
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d after clear, want 0", stats.TotalEntries)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}
	if resp.Status != "success" {
		t.Errorf("health response status = %q, want success", resp.Status)
	}

	for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/nothing-here", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", resp.Error)
	}
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}
