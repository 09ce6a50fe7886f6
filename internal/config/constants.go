package config

import "time"

// Application constants
const (
	// Application Info
	AppName   = "tradelens"
	EnvPrefix = "TRADELENS"

	// Server
	DefaultPort           = 4000
	DefaultRequestTimeout = 60 * time.Second

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Report extraction
	DefaultMaxUploadBytes = 20 << 20 // 20MB
	DefaultExtractTimeout = 30 * time.Second
	DefaultConcurrency    = 4

	// WebSocket
	WebSocketPingPeriod      = 30 * time.Second
	WebSocketPongWait        = 60 * time.Second
	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Endpoints
const (
	TradeStatsEndpoint = "/trade-stats"
	ReportsEndpoint    = "/api/reports"
	HealthEndpoint     = "/api/health"
	VersionEndpoint    = "/api/version"
	MetricsEndpoint    = "/metrics"
	WebSocketEndpoint  = "/ws"
)
