package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"datalens/internal/config"
	"datalens/internal/dataset"
)

// maxErrorBody caps how much of an error response body is carried into
// the resulting error message.
const maxErrorBody = 4 << 10

// RequestError reports a non-success response from the analytics engine.
// The message is the response body text, falling back to a generic
// message when the body is empty.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("analytics engine returned status %d", e.StatusCode)
}

// Client calls the remote analytics engine.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an analytics engine client.
func NewClient(cfg config.AnalyticsConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "analysis_client")),
	}
}

// analyzeRequest is the engine's dataset request contract.
type analyzeRequest struct {
	Data *dataset.Dataset `json:"data"`
}

// AnalyzeDataset sends the dataset to the engine and returns its full
// report. The dataset sent is always the caller's current one, cleaned or
// raw; the client does not decide that. Failures are not retried here.
func (c *Client) AnalyzeDataset(ctx context.Context, ds *dataset.Dataset) (*Report, error) {
	c.logger.InfoContext(ctx, "requesting dataset analysis",
		slog.Int("rows", ds.Len()),
		slog.Int("columns", len(ds.Columns)))

	var report Report
	if err := c.post(ctx, "/analyze", analyzeRequest{Data: ds}, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// AnalyzeText sends a single text to the engine's sentiment endpoint.
func (c *Client) AnalyzeText(ctx context.Context, text string) (*TextSentiment, error) {
	body := map[string]string{"text": text}
	var sentiment TextSentiment
	if err := c.post(ctx, "/analyze-text", body, &sentiment); err != nil {
		return nil, err
	}
	return &sentiment, nil
}

// Ping checks that the engine is reachable. Any HTTP response counts as
// reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("analytics engine unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// post performs one JSON request/response round trip.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call analytics engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		reqErr := &RequestError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
		c.logger.ErrorContext(ctx, "analytics engine request failed",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)))
		return reqErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode analysis response: %w", err)
	}

	c.logger.InfoContext(ctx, "analytics engine request completed",
		slog.String("path", path),
		slog.Duration("duration", time.Since(start)))
	return nil
}
