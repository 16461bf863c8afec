package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resume-goat/resume-goat/internal/server"
	"github.com/resume-goat/resume-goat/internal/stats"
	"github.com/resume-goat/resume-goat/internal/store"
)

func setupServer(t *testing.T) (*server.Server, *store.SQLiteStore) {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return server.New(s, 0, "", logger), s
}

func do(t *testing.T, srv *server.Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, s := setupServer(t)
	_, err := s.CreateExperiment(context.Background(), "resume", "a", "b", "")
	require.NoError(t, err)

	w := do(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.ExperimentsCount)

	w = do(t, srv, http.MethodPost, "/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCreateTrial(t *testing.T) {
	srv, s := setupServer(t)
	_, err := s.CreateExperiment(context.Background(), "resume", "a", "b", "")
	require.NoError(t, err)

	before := testutil.ToFloat64(server.TrialsRecordedCounter("B"))

	w := do(t, srv, http.MethodPost, "/api/trials", server.TrialRequest{
		Experiment: "resume",
		Group:      "b",
		Label:      "Acme",
		Status:     "applied",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var resp server.TrialResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, stats.GroupB, resp.Group)
	assert.Equal(t, stats.OutcomePending, resp.Outcome)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, before+1, testutil.ToFloat64(server.TrialsRecordedCounter("B")))
}

func TestCreateTrial_RandomGroup(t *testing.T) {
	srv, s := setupServer(t)
	_, err := s.CreateExperiment(context.Background(), "resume", "a", "b", "")
	require.NoError(t, err)

	w := do(t, srv, http.MethodPost, "/api/trials", server.TrialRequest{Experiment: "resume"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp server.TrialResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, []stats.Group{stats.GroupA, stats.GroupB}, resp.Group)
}

func TestCreateTrial_Errors(t *testing.T) {
	srv, s := setupServer(t)
	ctx := context.Background()
	_, err := s.CreateExperiment(ctx, "done", "a", "b", "")
	require.NoError(t, err)
	require.NoError(t, s.CompleteExperiment(ctx, "done", stats.GroupA))

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing experiment", server.TrialRequest{}, http.StatusBadRequest},
		{"bad group", server.TrialRequest{Experiment: "done", Group: "C"}, http.StatusBadRequest},
		{"unknown experiment", server.TrialRequest{Experiment: "nope"}, http.StatusNotFound},
		{"completed experiment", server.TrialRequest{Experiment: "done"}, http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/trials", tc.body)
			assert.Equal(t, tc.want, w.Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/trials", strings.NewReader("{"))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodOptions, "/api/trials", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTrialStatus(t *testing.T) {
	srv, s := setupServer(t)
	ctx := context.Background()
	_, err := s.CreateExperiment(ctx, "resume", "a", "b", "")
	require.NoError(t, err)
	trial, err := s.AddTrial(ctx, "resume", stats.GroupA, "", "applied")
	require.NoError(t, err)

	w := do(t, srv, http.MethodPost, "/api/trials/"+trial.ID+"/status", server.StatusRequest{Status: "Offer"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.TrialResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, stats.OutcomeOffer, resp.Outcome)
	assert.Equal(t, stats.GroupA, resp.Group)

	w = do(t, srv, http.MethodPost, "/api/trials/missing/status", server.StatusRequest{Status: "offer"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodPost, "/api/trials/"+trial.ID, server.StatusRequest{Status: "offer"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/api/trials/"+trial.ID+"/status", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestExperimentsAPI(t *testing.T) {
	srv, s := setupServer(t)

	w := do(t, srv, http.MethodGet, "/api/experiments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	_, err := s.CreateExperiment(context.Background(), "resume", "one page", "two pages", "")
	require.NoError(t, err)

	w = do(t, srv, http.MethodGet, "/api/experiments", nil)
	var list []server.ExperimentSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "two pages", list[0].VariantB)
	assert.Nil(t, list[0].Results)
}

func TestExperimentResultsAPI(t *testing.T) {
	srv, s := setupServer(t)
	ctx := context.Background()
	_, err := s.CreateExperiment(ctx, "resume", "a", "b", "")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := s.AddTrial(ctx, "resume", stats.GroupA, "", "interview")
		require.NoError(t, err)
	}

	w := do(t, srv, http.MethodGet, "/api/experiments/resume/results", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary server.ExperimentSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	require.NotNil(t, summary.Results)
	assert.Equal(t, 3, summary.Results.A.Metrics.Total)
	assert.Nil(t, summary.Results.Significance.PValue)
	assert.Equal(t, stats.ReasonInsufficientSample, summary.Results.Significance.Reason)
	assert.Equal(t, stats.WinnerNone, summary.Results.Winner)

	w = do(t, srv, http.MethodGet, "/api/experiments/nope/results", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodGet, "/api/experiments/resume", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := setupServer(t)

	w := do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
