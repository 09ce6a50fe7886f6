package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"tradelens/internal/config"
	"tradelens/internal/dataprocessing"
	"tradelens/internal/infrastructure"
	"tradelens/internal/validation"
	"tradelens/pkg/contracts/domain"
	"tradelens/pkg/contracts/events"
)

// Broadcaster publishes events to connected viewers
type Broadcaster interface {
	BroadcastWithTrace(eventType string, data interface{}, traceID string)
}

// Extraction is the outcome of running the engine over one document
type Extraction struct {
	Document string
	Format   dataprocessing.Format
	History  *domain.TradeHistory
	// Rows counts the document rows per classification role
	Rows map[string]int
	// Records counts the extracted records per tabular section
	Records  map[string]int
	Duration time.Duration
}

// Report pairs the extracted history with its statistics
func (e *Extraction) Report(shape domain.Shape) domain.TradeReport {
	return dataprocessing.BuildReport(e.History, shape)
}

// TotalRows returns the number of rows the engine consumed
func (e *Extraction) TotalRows() int {
	total := 0
	for _, n := range e.Rows {
		total += n
	}
	return total
}

// ReportService loads report documents and runs the extraction engine
type ReportService struct {
	cfg         config.ReportConfig
	broadcaster Broadcaster
	metrics     *infrastructure.BusinessMetrics
	tracer      trace.Tracer
	validator   *validation.FileValidator
	logger      *slog.Logger
}

// NewReportService creates a report service. broadcaster, metrics and
// tracer may be nil.
func NewReportService(cfg config.ReportConfig, broadcaster Broadcaster, metrics *infrastructure.BusinessMetrics, tracer trace.Tracer, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}

	logger = infrastructure.WithComponent(logger, "report_service")
	return &ReportService{
		cfg:         cfg,
		broadcaster: broadcaster,
		metrics:     metrics,
		tracer:      tracer,
		validator:   validation.NewFileValidator(logger),
		logger:      logger,
	}
}

// Source returns the configured report path
func (s *ReportService) Source() string {
	return s.cfg.SourcePath
}

// History extracts the configured report document
func (s *ReportService) History(ctx context.Context) (*Extraction, error) {
	if s.cfg.SourcePath == "" {
		return nil, ErrReportNotConfigured
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.ExtractFile(ctx, s.cfg.SourcePath)
}

// TradeStats returns the statistics and trade data of the configured report
func (s *ReportService) TradeStats(ctx context.Context, shape domain.Shape) (domain.TradeReport, error) {
	ext, err := s.History(ctx)
	if err != nil {
		return domain.TradeReport{}, err
	}
	return ext.Report(shape), nil
}

// Section returns one tabular section of the configured report. The name
// is checked before the document is loaded.
func (s *ReportService) Section(ctx context.Context, name string) (*domain.TableSection, error) {
	section, ok := domain.ParseSectionName(name)
	if !ok || !section.IsTabular() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}

	ext, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	return ext.History.Section(section), nil
}

// ExtractFile extracts the document at path
func (s *ReportService) ExtractFile(ctx context.Context, path string) (*Extraction, error) {
	return s.extract(ctx, path, func() (*dataprocessing.Document, error) {
		return dataprocessing.OpenSource(path)
	})
}

// ExtractUpload extracts a document read from r and announces the result to
// connected viewers. The name selects the loader.
func (s *ReportService) ExtractUpload(ctx context.Context, name string, r io.Reader) (*Extraction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ext, err := s.extract(ctx, name, func() (*dataprocessing.Document, error) {
		return dataprocessing.ReadSource(name, r)
	})
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		stats := dataprocessing.CalculateStats(ext.History)
		s.broadcaster.BroadcastWithTrace(string(events.MessageTypeReportExtracted), events.ReportExtracted{
			Document:    ext.Document,
			Format:      string(ext.Format),
			Rows:        ext.TotalRows(),
			Records:     ext.Records,
			SummaryKeys: len(ext.History.Summary),
			TotalTrades: stats.TotalTrades,
			DurationMs:  ext.Duration.Milliseconds(),
		}, infrastructure.GetTraceID(ctx))
	}
	return ext, nil
}

// Ready reports whether the configured source can be served
func (s *ReportService) Ready(ctx context.Context) error {
	if s.cfg.SourcePath == "" {
		return ErrReportNotConfigured
	}
	_, err := s.validator.ValidateReportFile(s.cfg.SourcePath)
	return err
}

func (s *ReportService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.ExtractTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.ExtractTimeout)
}

func (s *ReportService) extract(ctx context.Context, name string, load func() (*dataprocessing.Document, error)) (*Extraction, error) {
	ctx, span := s.tracer.Start(ctx, "report.extract",
		trace.WithAttributes(attribute.String("document.name", name)))
	defer span.End()

	start := time.Now()
	format := "unknown"
	if f, err := dataprocessing.DetectFormat(name); err == nil {
		format = string(f)
	}

	fail := func(err error) (*Extraction, error) {
		infrastructure.RecordError(ctx, err)
		infrastructure.RecordExtractionMetrics(ctx, s.metrics, format, time.Since(start), nil, nil, err)
		s.logger.WarnContext(ctx, "Report extraction failed",
			slog.String("document", name),
			slog.String("format", format),
			slog.String("error", err.Error()))
		return nil, err
	}

	doc, err := load()
	if err != nil {
		return fail(err)
	}

	history, tally, err := doc.Extract(ctx)
	if err != nil {
		return fail(fmt.Errorf("extract %s: %w", doc.Name, err))
	}

	ext := &Extraction{
		Document: doc.Name,
		Format:   doc.Format,
		History:  history,
		Rows:     make(map[string]int, len(tally)),
		Records:  make(map[string]int, len(domain.TabularSections)),
		Duration: time.Since(start),
	}
	for role, n := range tally {
		ext.Rows[role.String()] = n
	}
	for _, section := range domain.TabularSections {
		ext.Records[string(section)] = len(history.Section(section).Records)
	}

	infrastructure.RecordExtractionMetrics(ctx, s.metrics, format, ext.Duration, ext.Rows, ext.Records, nil)
	span.SetAttributes(
		attribute.String("document.format", format),
		attribute.Int("document.rows", len(doc.Rows)),
	)

	s.logger.InfoContext(ctx, "Report extracted",
		slog.String("document", ext.Document),
		slog.String("format", format),
		slog.Int("rows", len(doc.Rows)),
		slog.Any("records", ext.Records),
		slog.Int("summary_keys", len(history.Summary)),
		slog.Duration("duration", ext.Duration))

	return ext, nil
}
