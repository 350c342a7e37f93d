package errors

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/internal/analysis"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestHandleErrorAPIError(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/datasets/abc/quality", nil)

	h.HandleError(rec, req, DatasetNotFoundError("abc"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ProblemContentType, rec.Header().Get("Content-Type"))
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeDatasetNotFound, problem["type"])
	assert.Equal(t, "DATASET_NOT_FOUND", problem["error_code"])
	assert.Equal(t, "/api/datasets/abc/quality", problem["instance"])
}

func TestHandleErrorAnalysisRequestError(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/datasets/abc/analyze", nil)

	h.HandleError(rec, req, &analysis.RequestError{StatusCode: 500, Body: "engine exploded"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeAnalysisFailed, problem["type"])
	assert.Equal(t, "engine exploded", problem["detail"])
	assert.Equal(t, float64(500), problem["engine_status"])
}

func TestHandleErrorQualityGate(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/datasets/abc/analyze", nil)

	h.HandleError(rec, req, QualityGateError(20))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeQualityGate, problem["type"])
}

func TestHandleErrorContextDeadline(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)

	h.HandleError(rec, req, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestHandleErrorGeneric(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)

	h.HandleError(rec, req, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, problem["type"])
	// Internal details never leak to the client.
	assert.NotContains(t, problem["detail"], assert.AnError.Error())
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	pd := NewProblemDetails(400, TypeValidation, "Validation Failed", "bad field", "/x").
		WithExtension("field", "name")

	raw, err := json.Marshal(pd)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"field":"name"`)
	assert.Contains(t, string(raw), `"status":400`)
}
