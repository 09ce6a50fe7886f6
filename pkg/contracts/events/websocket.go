// Package events contains the event contracts pushed to viewers over the
// WebSocket connection.
package events

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// MessageTypeConnection greets a freshly registered client
	MessageTypeConnection MessageType = "connection"

	// MessageTypeReportExtracted announces a completed document extraction
	MessageTypeReportExtracted MessageType = "report:extracted"
)

// ReportExtracted is the payload of a report:extracted event
type ReportExtracted struct {
	Document    string         `json:"document"`
	Format      string         `json:"format"`
	Rows        int            `json:"rows"`
	Records     map[string]int `json:"records"`
	SummaryKeys int            `json:"summary_keys"`
	TotalTrades int            `json:"total_trades"`
	DurationMs  int64          `json:"duration_ms"`
}
