// Package services implements the business logic layer of tradelens.
// It sits between the HTTP handlers and the extraction engine so that
// handlers only translate requests and errors.
//
// # Services
//
//	ReportService  loads report documents, runs the extraction engine,
//	               records extraction metrics and announces results on
//	               the websocket hub
//	HealthService  liveness, readiness and version information
//
// # Errors
//
// Services return sentinel errors wrapped with %w. Callers classify them
// with errors.Is:
//
//	ErrReportNotConfigured  no source document configured
//	ErrUnsupportedFormat    file extension has no loader
//	ErrDocumentUnreadable   the document could not be opened or tokenized
//	ErrUnknownSection       the section name carries no table
//
// # Context
//
// Every operation takes a context. Extraction of the configured source runs
// under the configured extraction timeout and stops between rows when the
// context is cancelled.
package services
