package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/resume-goat/resume-goat/internal/stats"
	"github.com/resume-goat/resume-goat/internal/store"
)

type HealthResponse struct {
	Status           string `json:"status"`
	ExperimentsCount int    `json:"experiments_count"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	experiments, err := s.store.ListExperiments(r.Context())
	if err != nil {
		s.logger.Error("health check failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:           "ok",
		ExperimentsCount: len(experiments),
		UptimeSeconds:    int64(time.Since(s.startTime).Seconds()),
	})
}

// TrialRequest records a new application. Group is optional; an empty group
// is assigned at random.
type TrialRequest struct {
	Experiment string `json:"experiment"`
	Group      string `json:"group"`
	Label      string `json:"label"`
	Status     string `json:"status"`
}

// StatusRequest changes a trial's raw status.
type StatusRequest struct {
	Status string `json:"status"`
}

type TrialResponse struct {
	ID         string        `json:"id"`
	Experiment string        `json:"experiment"`
	Group      stats.Group   `json:"group"`
	Label      string        `json:"label,omitempty"`
	Status     string        `json:"status"`
	Outcome    stats.Outcome `json:"outcome"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func newTrialResponse(t *store.Trial) TrialResponse {
	return TrialResponse{
		ID:         t.ID,
		Experiment: t.Experiment,
		Group:      t.Group,
		Label:      t.Label,
		Status:     t.RawStatus,
		Outcome:    t.Sample().Outcome(),
		CreatedAt:  t.CreatedAt.UTC(),
		UpdatedAt:  t.UpdatedAt.UTC(),
	}
}

func setCORS(w http.ResponseWriter, methods string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (s *Server) handleCreateTrial(w http.ResponseWriter, r *http.Request) {
	setCORS(w, "POST, OPTIONS")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TrialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Experiment == "" {
		http.Error(w, "Missing experiment", http.StatusBadRequest)
		return
	}

	group := store.RandomGroup()
	if req.Group != "" {
		g, err := stats.ParseGroup(req.Group)
		if err != nil {
			http.Error(w, "Invalid group", http.StatusBadRequest)
			return
		}
		group = g
	}

	trial, err := s.store.AddTrial(r.Context(), req.Experiment, group, req.Label, req.Status)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Experiment not found", http.StatusNotFound)
		return
	case errors.Is(err, store.ErrExperimentClosed):
		http.Error(w, "Experiment is completed", http.StatusConflict)
		return
	case err != nil:
		s.logger.Error("failed to add trial", "experiment", req.Experiment, "error", err)
		http.Error(w, "Failed to record trial", http.StatusInternalServerError)
		return
	}

	trialsRecorded.WithLabelValues(string(trial.Group)).Inc()
	s.logger.Debug("trial recorded", "experiment", trial.Experiment, "id", trial.ID, "group", trial.Group)

	writeJSON(w, http.StatusCreated, newTrialResponse(trial))
}

// handleTrialStatus serves POST /api/trials/<id>/status.
func (s *Server) handleTrialStatus(w http.ResponseWriter, r *http.Request) {
	setCORS(w, "POST, OPTIONS")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	id, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, "/api/trials/"), "/status")
	if !ok || id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	trial, err := s.store.UpdateTrialStatus(r.Context(), id, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Trial not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to update trial", "id", id, "error", err)
		http.Error(w, "Failed to update trial", http.StatusInternalServerError)
		return
	}

	resp := newTrialResponse(trial)
	statusUpdates.WithLabelValues(string(resp.Outcome)).Inc()

	writeJSON(w, http.StatusOK, resp)
}

type ExperimentSummary struct {
	Name        string        `json:"name"`
	VariantA    string        `json:"variant_a"`
	VariantB    string        `json:"variant_b"`
	Description string        `json:"description,omitempty"`
	State       string        `json:"state"`
	Winner      *stats.Group  `json:"winner,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	Results     *stats.Report `json:"results,omitempty"`
}

func newExperimentSummary(e *store.Experiment) ExperimentSummary {
	return ExperimentSummary{
		Name:        e.Name,
		VariantA:    e.VariantA,
		VariantB:    e.VariantB,
		Description: e.Description,
		State:       string(e.State),
		Winner:      e.Winner,
		CreatedAt:   e.CreatedAt.UTC(),
	}
}

func (s *Server) handleExperimentsAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	experiments, err := s.store.ListExperiments(r.Context())
	if err != nil {
		s.logger.Error("failed to list experiments", "error", err)
		http.Error(w, "Failed to load experiments", http.StatusInternalServerError)
		return
	}

	// Return empty array instead of null
	response := make([]ExperimentSummary, 0, len(experiments))
	for _, e := range experiments {
		response = append(response, newExperimentSummary(e))
	}

	writeJSON(w, http.StatusOK, response)
}

// handleExperimentResultsAPI serves GET /api/experiments/<name>/results.
func (s *Server) handleExperimentResultsAPI(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, "/api/experiments/"), "/results")
	if !ok || name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	e, report, err := store.AnalyzeExperiment(r.Context(), s.store, name)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Experiment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to analyze experiment", "experiment", name, "error", err)
		http.Error(w, "Failed to analyze experiment", http.StatusInternalServerError)
		return
	}
	observeAnalysis(report)

	summary := newExperimentSummary(e)
	summary.Results = &report
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
