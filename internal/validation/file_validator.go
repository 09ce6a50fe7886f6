package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tradelens/internal/dataprocessing"
)

// FileValidator checks report inputs and export outputs before work starts
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateReportFile checks that path names a supported report document
// that exists and can be opened. Format errors wrap
// dataprocessing.ErrUnsupportedFormat; every other failure wraps
// dataprocessing.ErrDocumentUnreadable.
func (v *FileValidator) ValidateReportFile(path string) (dataprocessing.Format, error) {
	format, err := dataprocessing.DetectFormat(path)
	if err != nil {
		v.logger.Debug("Unsupported report format", slog.String("file", path))
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		v.logger.Debug("Failed to stat report",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", dataprocessing.ErrDocumentUnreadable, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", dataprocessing.ErrDocumentUnreadable, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", dataprocessing.ErrDocumentUnreadable, err)
	}
	file.Close()

	v.logger.Debug("Report validated",
		slog.String("file", path),
		slog.String("format", string(format)),
		slog.Int64("size", info.Size()))
	return format, nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a probe file
	probe, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("directory", filepath.Clean(dir)))
	return nil
}
