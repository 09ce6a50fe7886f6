package infrastructure

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// DefaultRuntimeInterval is how often runtime statistics are sampled
const DefaultRuntimeInterval = 15 * time.Second

// RuntimeMetrics holds the process-level gauges exported next to the
// extraction metrics.
type RuntimeMetrics struct {
	goroutines  metric.Int64Gauge
	heapInUse   metric.Int64Gauge
	heapObjects metric.Int64Gauge
	gcCycles    metric.Int64Gauge
	gcPause     metric.Float64Histogram
	uptime      metric.Float64Gauge
}

// RuntimeStats is one sample of the Go runtime
type RuntimeStats struct {
	Goroutines  int
	HeapInUse   uint64
	HeapObjects uint64
	GCCycles    uint32
	LastGCPause time.Duration
	Uptime      time.Duration
	Timestamp   time.Time
}

// NewRuntimeMetrics creates the runtime instruments on the given meter
func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	var (
		m    RuntimeMetrics
		err  error
		errs []error
	)

	m.goroutines, err = meter.Int64Gauge("process_goroutines",
		metric.WithDescription("Number of active goroutines"))
	errs = append(errs, err)

	m.heapInUse, err = meter.Int64Gauge("process_heap_inuse_bytes",
		metric.WithDescription("Bytes in in-use heap spans"),
		metric.WithUnit("By"))
	errs = append(errs, err)

	m.heapObjects, err = meter.Int64Gauge("process_heap_objects",
		metric.WithDescription("Number of allocated heap objects"))
	errs = append(errs, err)

	m.gcCycles, err = meter.Int64Gauge("process_gc_cycles",
		metric.WithDescription("Completed garbage collection cycles"))
	errs = append(errs, err)

	m.gcPause, err = meter.Float64Histogram("process_gc_pause_seconds",
		metric.WithDescription("Most recent stop-the-world pause"),
		metric.WithUnit("s"))
	errs = append(errs, err)

	m.uptime, err = meter.Float64Gauge("process_uptime_seconds",
		metric.WithDescription("Seconds since the collector started"),
		metric.WithUnit("s"))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}

// Record samples the runtime and records every gauge
func (m *RuntimeMetrics) Record(ctx context.Context, startTime time.Time) RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := RuntimeStats{
		Goroutines:  runtime.NumGoroutine(),
		HeapInUse:   mem.HeapInuse,
		HeapObjects: mem.HeapObjects,
		GCCycles:    mem.NumGC,
		Uptime:      time.Since(startTime),
		Timestamp:   time.Now(),
	}
	if mem.NumGC > 0 {
		stats.LastGCPause = time.Duration(mem.PauseNs[(mem.NumGC+255)%256])
	}

	if m == nil {
		return stats
	}
	m.goroutines.Record(ctx, int64(stats.Goroutines))
	m.heapInUse.Record(ctx, int64(stats.HeapInUse))
	m.heapObjects.Record(ctx, int64(stats.HeapObjects))
	m.gcCycles.Record(ctx, int64(stats.GCCycles))
	m.uptime.Record(ctx, stats.Uptime.Seconds())
	if stats.LastGCPause > 0 {
		m.gcPause.Record(ctx, stats.LastGCPause.Seconds())
	}
	return stats
}

// RuntimeCollector samples runtime metrics on an interval until stopped
type RuntimeCollector struct {
	metrics   *RuntimeMetrics
	startTime time.Time
	interval  time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRuntimeCollector creates a collector. A non-positive interval selects
// DefaultRuntimeInterval.
func NewRuntimeCollector(meter metric.Meter, interval time.Duration) (*RuntimeCollector, error) {
	metrics, err := NewRuntimeMetrics(meter)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = DefaultRuntimeInterval
	}

	return &RuntimeCollector{
		metrics:   metrics,
		startTime: time.Now(),
		interval:  interval,
		stopCh:    make(chan struct{}),
	}, nil
}

// Start samples once immediately, then on every tick, until ctx is done or
// Stop is called. It blocks; run it in its own goroutine.
func (c *RuntimeCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.metrics.Record(ctx, c.startTime)
	for {
		select {
		case <-ticker.C:
			c.metrics.Record(ctx, c.startTime)
		case <-c.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends collection. Safe to call more than once.
func (c *RuntimeCollector) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}
