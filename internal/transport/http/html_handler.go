package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"tradelens/internal/config"
	"tradelens/pkg/contracts"
)

//go:embed web/index.html
var webFS embed.FS

var viewerTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

// viewerData fills the viewer page template
type viewerData struct {
	Title         string
	Version       string
	StatsPath     string
	ReportsPath   string
	WebSocketPath string
}

// ServeViewer serves the trade history viewer page. The page is rendered
// once; it loads the report through the JSON API.
func ServeViewer(logger *slog.Logger) http.HandlerFunc {
	var buf bytes.Buffer
	err := viewerTemplate.Execute(&buf, viewerData{
		Title:         "TradeLens",
		Version:       contracts.Version,
		StatsPath:     config.TradeStatsEndpoint,
		ReportsPath:   config.ReportsEndpoint,
		WebSocketPath: config.WebSocketEndpoint,
	})
	page := buf.Bytes()

	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			logger.ErrorContext(r.Context(), "Failed to render viewer page", slog.String("error", err.Error()))
			http.Error(w, "Error rendering page", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(page)
	}
}
