package http

import (
	"context"
	"io"

	"tradelens/internal/services"
	"tradelens/pkg/contracts/domain"
)

// ReportServiceInterface defines the interface for report operations
type ReportServiceInterface interface {
	TradeStats(ctx context.Context, shape domain.Shape) (domain.TradeReport, error)
	History(ctx context.Context) (*services.Extraction, error)
	Section(ctx context.Context, name string) (*domain.TableSection, error)
	ExtractUpload(ctx context.Context, name string, r io.Reader) (*services.Extraction, error)
}
