package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"

	"tradelens/internal/config"
	"tradelens/internal/infrastructure"
	"tradelens/internal/shared/testutil"
	"tradelens/pkg/contracts/domain"
	"tradelens/pkg/contracts/events"
)

const reportHTML = `<html><body><table>
<tr><th colspan="3"><b>Deals</b></th></tr>
<tr><td><b>Time</b></td><td><b>Symbol</b></td><td><b>Profit</b></td></tr>
<tr><td>2024-01-01</td><td>EURUSD</td><td>15.50</td></tr>
<tr><td>2024-01-02</td><td>GBPUSD</td><td>-5.25</td></tr>
<tr><td></td><td></td><td><b>10.25</b></td></tr>
<tr><td colspan="3"></td></tr>
<tr><td>Balance:</td><td><b>1 010.25</b></td><td></td></tr>
</table></body></html>`

type broadcast struct {
	eventType string
	data      interface{}
	traceID   string
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcast
}

func (b *recordingBroadcaster) BroadcastWithTrace(eventType string, data interface{}, traceID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcast{eventType, data, traceID})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeReport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ReportHistory.html")
	require.NoError(t, os.WriteFile(path, []byte(reportHTML), 0o644))
	return path
}

func newTestService(t *testing.T, source string, b Broadcaster) *ReportService {
	t.Helper()
	metrics, err := infrastructure.CreateBusinessMetrics(metricnoop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	cfg := config.ReportConfig{
		SourcePath:     source,
		MaxUploadBytes: 1 << 20,
		DefaultShape:   "sections",
		ExtractTimeout: 5 * time.Second,
		Concurrency:    2,
	}
	return NewReportService(cfg, b, metrics, nil, discardLogger())
}

func TestReportService_TradeStats(t *testing.T) {
	svc := newTestService(t, writeReport(t), nil)

	report, err := svc.TradeStats(context.Background(), domain.ShapeSections)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Stats.TotalTrades)
	assert.Equal(t, 1, report.Stats.Wins)
	assert.Equal(t, 1, report.Stats.Losses)
	assert.Equal(t, "10.25", report.Stats.TotalProfit)
	assert.Equal(t, []float64{15.5, 10.25}, report.Stats.EquityCurve)

	history, ok := report.TradeData.(*domain.TradeHistory)
	require.True(t, ok)
	assert.Equal(t, []string{"Time", "Symbol", "Profit"}, history.Deals.Headers)
	assert.Equal(t, domain.Summary{"Balance": "1 010.25"}, history.Summary)
}

func TestReportService_TradeStatsRecordsShape(t *testing.T) {
	svc := newTestService(t, writeReport(t), nil)

	report, err := svc.TradeStats(context.Background(), domain.ShapeRecords)
	require.NoError(t, err)

	records, ok := report.TradeData.(domain.RecordsOnly)
	require.True(t, ok)
	assert.Len(t, records.Deals, 2)
	assert.Empty(t, records.Positions)
}

func TestReportService_History(t *testing.T) {
	svc := newTestService(t, writeReport(t), nil)

	ext, err := svc.History(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ReportHistory.html", ext.Document)
	assert.Equal(t, map[string]int{"Positions": 0, "Orders": 0, "Deals": 2}, ext.Records)
	assert.Equal(t, 2, ext.Rows["data"])
	assert.Equal(t, 1, ext.Rows["section_title"])
	assert.Equal(t, 7, ext.TotalRows())
}

func TestReportService_Errors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.html")
	unsupported := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(unsupported, []byte("%PDF"), 0o644))

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{"not configured", "", ErrReportNotConfigured},
		{"missing file", missing, ErrDocumentUnreadable},
		{"unsupported format", unsupported, ErrUnsupportedFormat},
		{"directory", filepath.Join(dir, "dir.html"), ErrDocumentUnreadable},
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.html"), 0o755))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.source, nil)

			_, err := svc.TradeStats(context.Background(), domain.ShapeSections)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.ErrorIs(t, svc.Ready(context.Background()), tt.wantErr)
		})
	}
}

func TestReportService_Section(t *testing.T) {
	svc := newTestService(t, writeReport(t), nil)

	section, err := svc.Section(context.Background(), "Deals")
	require.NoError(t, err)
	assert.Len(t, section.Records, 2)

	section, err = svc.Section(context.Background(), "Orders")
	require.NoError(t, err)
	assert.True(t, section.Empty())

	for _, name := range []string{"Summary", "deals", "Trades", ""} {
		_, err := svc.Section(context.Background(), name)
		assert.ErrorIs(t, err, ErrUnknownSection, name)
	}
}

func TestReportService_SectionCheckedBeforeLoading(t *testing.T) {
	svc := newTestService(t, "", nil)

	_, err := svc.Section(context.Background(), "Summary")
	assert.ErrorIs(t, err, ErrUnknownSection)

	_, err = svc.Section(context.Background(), "Deals")
	assert.ErrorIs(t, err, ErrReportNotConfigured)
}

func TestReportService_ExtractUploadBroadcasts(t *testing.T) {
	b := &recordingBroadcaster{}
	svc := newTestService(t, "", b)

	ctx := infrastructure.WithTraceID(context.Background(), "trace-42")
	ext, err := svc.ExtractUpload(ctx, "upload.htm", strings.NewReader(reportHTML))
	require.NoError(t, err)
	assert.Len(t, ext.History.Deals.Records, 2)

	require.Len(t, b.events, 1)
	ev := b.events[0]
	assert.Equal(t, string(events.MessageTypeReportExtracted), ev.eventType)
	assert.Equal(t, "trace-42", ev.traceID)

	payload, ok := ev.data.(events.ReportExtracted)
	require.True(t, ok)
	assert.Equal(t, "upload.htm", payload.Document)
	assert.Equal(t, "html", payload.Format)
	assert.Equal(t, 2, payload.TotalTrades)
	assert.Equal(t, 2, payload.Records["Deals"])
	assert.Equal(t, 1, payload.SummaryKeys)
}

func TestReportService_ExtractUploadFailureDoesNotBroadcast(t *testing.T) {
	b := &recordingBroadcaster{}
	svc := newTestService(t, "", b)

	_, err := svc.ExtractUpload(context.Background(), "upload.csv", strings.NewReader("a,b"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = svc.ExtractUpload(context.Background(), "upload.xlsx", strings.NewReader("not a zip"))
	assert.ErrorIs(t, err, ErrDocumentUnreadable)

	assert.Empty(t, b.events)
}

func TestReportService_CancelledContext(t *testing.T) {
	svc := newTestService(t, writeReport(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.History(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportService_NilDependencies(t *testing.T) {
	svc := NewReportService(config.ReportConfig{SourcePath: writeReport(t)}, nil, nil, nil, discardLogger())

	report, err := svc.TradeStats(context.Background(), domain.ShapeSections)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Stats.TotalTrades)
	assert.NoError(t, svc.Ready(context.Background()))
}

func TestReportService_Logging(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	cfg := config.ReportConfig{SourcePath: writeReport(t), ExtractTimeout: 5 * time.Second}
	svc := NewReportService(cfg, nil, nil, nil, logger)

	_, err := svc.History(context.Background())
	require.NoError(t, err)
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Report extracted")
	testutil.AssertLogAttr(t, handler, "component", "report_service")
	testutil.AssertLogAttr(t, handler, "format", "html")

	_, err = svc.ExtractFile(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	testutil.AssertLogContains(t, handler, slog.LevelWarn, "Report extraction failed")
	testutil.AssertNoErrors(t, handler)
}
