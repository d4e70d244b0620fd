package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"agricli/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplySentinelOverride(t *testing.T) {
	tests := []struct {
		name     string
		set      bool
		value    float64
		expected float64
	}{
		{"flag not set keeps config value", false, -9, -1},
		{"explicit override applies", true, -99, -99},
		{"zero override ignored", true, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.PipelineConfig{Sentinel: -1}
			applySentinelOverride(&cfg, tt.set, tt.value, testLogger())
			assert.Equal(t, tt.expected, cfg.Sentinel)
		})
	}
}
