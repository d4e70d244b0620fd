package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"agricli/internal/store"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	store     *store.Store
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Store     map[string]interface{} `json:"store,omitempty"`
}

// VersionInfo represents version information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, s *store.Store, logger *slog.Logger) *HealthService {
	return &HealthService{
		version:   version,
		store:     s,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns the overall health of the service
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"alloc_bytes":    m.Alloc,
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
	}

	if s.store != nil {
		status.Store = map[string]interface{}{
			"columns":  len(s.store.Columns()),
			"max_year": s.store.MaxYear(),
		}
	}

	return status
}

// LivenessCheck returns a minimal liveness response
func (s *HealthService) LivenessCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now(),
	}
}

// Version returns version information
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{
		Version:   s.version,
		GoVersion: runtime.Version(),
	}
}
