package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "datalens/internal/errors"
	"datalens/internal/middleware"
)

// sentimentRequest is the POST /api/analyze-text body.
type sentimentRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
}

// SentimentHandler forwards free text to the analytics engine's sentiment
// endpoint.
type SentimentHandler struct {
	analyzer     TextAnalyzer
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewSentimentHandler creates a new sentiment handler.
func NewSentimentHandler(analyzer TextAnalyzer, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SentimentHandler {
	return &SentimentHandler{
		analyzer:     analyzer,
		validator:    middleware.NewValidator(),
		logger:       logger.With(slog.String("component", "sentiment_handler")),
		errorHandler: errorHandler,
	}
}

// AnalyzeText handles POST /api/analyze-text.
func (h *SentimentHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req sentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(fmt.Errorf("parsing request body: %w", err)))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	sentiment, err := h.analyzer.AnalyzeText(r.Context(), req.Text)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, sentiment)
}
