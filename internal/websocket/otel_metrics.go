package websocket

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// HubMetrics holds the OpenTelemetry instruments of the websocket hub
type HubMetrics struct {
	activeConnections metric.Int64UpDownCounter
	connectionsTotal  metric.Int64Counter
	messagesSent      metric.Int64Counter
	messagesDropped   metric.Int64Counter
}

// NewHubMetrics creates the hub instruments on the given meter
func NewHubMetrics(meter metric.Meter) (*HubMetrics, error) {
	var (
		m    HubMetrics
		err  error
		errs []error
	)

	m.activeConnections, err = meter.Int64UpDownCounter("websocket_active_connections",
		metric.WithDescription("Number of connected websocket clients"))
	errs = append(errs, err)

	m.connectionsTotal, err = meter.Int64Counter("websocket_connections_total",
		metric.WithDescription("Total websocket connections accepted"))
	errs = append(errs, err)

	m.messagesSent, err = meter.Int64Counter("websocket_messages_sent_total",
		metric.WithDescription("Events delivered to client send buffers"))
	errs = append(errs, err)

	m.messagesDropped, err = meter.Int64Counter("websocket_clients_dropped_total",
		metric.WithDescription("Clients disconnected because their send buffer was full"))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *HubMetrics) recordConnection(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.activeConnections.Add(ctx, delta)
	if delta > 0 {
		m.connectionsTotal.Add(ctx, delta)
	}
}

func (m *HubMetrics) recordBroadcast(ctx context.Context, sent, dropped int) {
	if m == nil {
		return
	}
	m.messagesSent.Add(ctx, int64(sent))
	if dropped > 0 {
		m.messagesDropped.Add(ctx, int64(dropped))
	}
}
