package services

import (
	"errors"

	"tradelens/internal/dataprocessing"
)

// Report service errors
var (
	// ErrReportNotConfigured is returned by the read operations when no
	// source document is configured
	ErrReportNotConfigured = errors.New("report source not configured")

	// ErrUnknownSection is returned for section names that carry no table
	ErrUnknownSection = errors.New("unknown section")

	// Loader errors, re-exported so transports only depend on services
	ErrUnsupportedFormat  = dataprocessing.ErrUnsupportedFormat
	ErrDocumentUnreadable = dataprocessing.ErrDocumentUnreadable
)
