// Package http implements the HTTP handlers of the tradelens service.
// Handlers stay thin: they parse the request, call a service and render the
// result or an RFC 7807 problem.
//
// # Routes
//
//	GET  /                                  viewer page
//	GET  /trade-stats                       statistics and trade data of the configured report
//	GET  /api/reports/history               trade history of the configured report
//	POST /api/reports/extract               extract an uploaded document (multipart field "file")
//	GET  /api/reports/sections/{section}/csv  one tabular section as CSV
//	GET  /api/health, /live, /ready         health probes
//	GET  /api/version                       build information
//	GET  /metrics                           Prometheus scrape endpoint
//
// The report endpoints accept ?shape=sections|records.
//
// # Error Handling
//
// Service sentinels are translated to API errors and rendered by
// errors.ErrorHandler:
//
//	{
//	    "type": "/errors/report/unreadable",
//	    "title": "Internal Server Error",
//	    "status": 500,
//	    "detail": "Report could not be read",
//	    "instance": "/trade-stats"
//	}
package http
