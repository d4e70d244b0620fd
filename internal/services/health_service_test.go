package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthService_HealthCheck(t *testing.T) {
	svc := NewHealthService("1.2.3", nil, testLogger())

	status := svc.HealthCheck(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.NotEmpty(t, status.Runtime)
	assert.Nil(t, status.Store)
}

func TestHealthService_LivenessCheck(t *testing.T) {
	svc := NewHealthService("1.2.3", nil, testLogger())

	resp := svc.LivenessCheck(context.Background())
	assert.Equal(t, "alive", resp["status"])
}

func TestHealthService_Version(t *testing.T) {
	svc := NewHealthService("1.2.3", nil, testLogger())

	v := svc.Version()
	assert.Equal(t, "1.2.3", v.Version)
	assert.NotEmpty(t, v.GoVersion)
}
