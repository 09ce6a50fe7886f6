package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tradelens/internal/config"
	apierrors "tradelens/internal/errors"
	"tradelens/internal/exporter"
	"tradelens/internal/middleware"
	"tradelens/internal/services"
	"tradelens/pkg/contracts/domain"
)

// multipartMemory is the part of an upload kept in memory before spilling to
// a temporary file
const multipartMemory = 8 << 20

// ReportQuery holds the query parameters of the report endpoints
type ReportQuery struct {
	Shape string `query:"shape" validate:"omitempty,shape"`
}

// ReportHandler serves extracted trade histories and statistics
type ReportHandler struct {
	service      ReportServiceInterface
	cfg          config.ReportConfig
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, cfg config.ReportConfig, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service:      service,
		cfg:          cfg,
		validator:    validator,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "report_handler")),
	}
}

// Routes returns the report routes mounted under /api/reports
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/history", h.GetHistory)
	r.With(middleware.ContentTypeValidator(h.errorHandler, "multipart/form-data")).
		Post("/extract", h.ExtractUpload)
	r.Get("/sections/{section}/csv", h.GetSectionCSV)

	return r
}

// GetTradeStats handles GET /trade-stats
func (h *ReportHandler) GetTradeStats(w http.ResponseWriter, r *http.Request) {
	shape, err := h.parseShape(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.TradeStats(r.Context(), shape)
	if err != nil {
		h.errorHandler.HandleError(w, r, reportError(err))
		return
	}

	render.JSON(w, r, report)
}

// GetHistory handles GET /api/reports/history
func (h *ReportHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ext, err := h.service.History(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, reportError(err))
		return
	}

	render.JSON(w, r, ext.History)
}

// ExtractUpload handles POST /api/reports/extract with the document in the
// multipart field "file"
func (h *ReportHandler) ExtractUpload(w http.ResponseWriter, r *http.Request) {
	shape, err := h.parseShape(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, apierrors.PayloadTooLarge(maxBytesErr.Limit))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "file is required"))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "Report upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	ext, err := h.service.ExtractUpload(r.Context(), header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, reportError(err))
		return
	}

	render.JSON(w, r, ext.Report(shape))
}

// GetSectionCSV handles GET /api/reports/sections/{section}/csv
func (h *ReportHandler) GetSectionCSV(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")

	section, err := h.service.Section(r.Context(), name)
	if err != nil {
		if errors.Is(err, services.ErrUnknownSection) {
			h.errorHandler.HandleError(w, r, apierrors.UnknownSection(name))
			return
		}
		h.errorHandler.HandleError(w, r, reportError(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	if err := exporter.WriteSection(w, section, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		// Headers are already sent
		h.logger.ErrorContext(r.Context(), "Failed to write section CSV",
			slog.String("section", name),
			slog.String("error", err.Error()))
	}
}

// parseShape validates the shape query parameter, falling back to the
// configured default
func (h *ReportHandler) parseShape(r *http.Request) (domain.Shape, error) {
	query := ReportQuery{Shape: r.URL.Query().Get("shape")}
	if err := h.validator.ValidateStruct(query); err != nil {
		return "", err
	}
	if query.Shape == "" {
		query.Shape = h.cfg.DefaultShape
	}

	shape, _ := domain.ParseShape(query.Shape)
	return shape, nil
}

// reportError maps service sentinels to API errors
func reportError(err error) error {
	switch {
	case errors.Is(err, services.ErrReportNotConfigured):
		return apierrors.ReportNotConfigured(err)
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.UnsupportedFormat(err)
	case errors.Is(err, services.ErrDocumentUnreadable):
		return apierrors.ReportUnreadable(err)
	}
	return err
}
