package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tradelens/pkg/contracts"
)

type stubProber struct{ err error }

func (p stubProber) Ready(context.Context) error { return p.err }

type stubCounter int

func (c stubCounter) ClientCount() int { return int(c) }

func TestHealthService_HealthCheck(t *testing.T) {
	hs := NewHealthService(stubProber{}, stubCounter(0), discardLogger())

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, StatusOK, status.Status)
	assert.Equal(t, contracts.Version, status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		prober     ReadinessProber
		hub        ClientCounter
		wantStatus string
		wantReport string
	}{
		{"ready", stubProber{}, stubCounter(2), StatusReady, StatusReady},
		{"source missing", stubProber{err: ErrReportNotConfigured}, stubCounter(0), StatusNotReady, StatusNotReady},
		{"no report service", nil, stubCounter(0), StatusNotReady, StatusNotReady},
		{"no hub", stubProber{}, nil, StatusNotReady, StatusReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthService(tt.prober, tt.hub, discardLogger())

			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, tt.wantReport, status.Services["report"].Status)
		})
	}
}

func TestHealthService_ReadinessMessages(t *testing.T) {
	hs := NewHealthService(stubProber{err: errors.New("disk on fire")}, stubCounter(3), discardLogger())

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "disk on fire", status.Services["report"].Message)
	assert.Equal(t, "3 viewers connected", status.Services["websocket"].Message)
}

func TestHealthService_LivenessCheck(t *testing.T) {
	hs := NewHealthService(nil, nil, discardLogger())

	status := hs.LivenessCheck(context.Background())
	assert.Equal(t, StatusAlive, status.Status)
	assert.Contains(t, status.Runtime, "uptime")
	assert.Contains(t, status.Runtime, "goroutines")
}

func TestHealthService_Version(t *testing.T) {
	hs := NewHealthService(nil, nil, discardLogger())

	info := hs.Version()
	assert.Equal(t, contracts.Version, info["version"])
	assert.Equal(t, contracts.DataFormatVersion, info["data_format"])
	assert.Contains(t, info, "start_time")
}
