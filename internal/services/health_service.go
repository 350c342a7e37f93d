package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// EnginePinger checks reachability of the external analytics engine.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// HealthService reports process health and readiness.
type HealthService struct {
	version   string
	buildTime string
	pinger    EnginePinger
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health endpoint response.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth is the health of one dependency.
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service with build information.
func NewHealthService(version, buildTime string, pinger EnginePinger, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		pinger:    pinger,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Health returns the overall health status. The analytics engine is
// reported as degraded rather than failing the whole check; the service
// remains useful for assessment and cleaning without it.
func (s *HealthService) Health(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
		Services: map[string]interface{}{},
	}
	if s.buildTime != "" {
		status.Runtime["build_time"] = s.buildTime
	}

	engine := ServiceHealth{Status: "healthy"}
	if err := s.pingEngine(ctx); err != nil {
		engine = ServiceHealth{Status: "unreachable", Message: err.Error()}
		status.Status = "degraded"
	}
	status.Services["analytics_engine"] = engine

	return status
}

// Ready reports whether the service can serve analysis requests. It
// fails when the analytics engine cannot be reached.
func (s *HealthService) Ready(ctx context.Context) error {
	if err := s.pingEngine(ctx); err != nil {
		s.logger.WarnContext(ctx, "readiness check failed",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Version returns the service version string.
func (s *HealthService) Version() string {
	return s.version
}

func (s *HealthService) pingEngine(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.pinger.Ping(ctx)
}
