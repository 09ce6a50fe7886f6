package domain

// RawCell is one document cell as produced by a document tokenizer, before
// colspan expansion.
type RawCell struct {
	Text string `json:"text"`
	// Colspan is the raw attribute value; empty means 1.
	Colspan string `json:"colspan,omitempty"`
	Hidden  bool   `json:"hidden,omitempty"`
	// Emphasized is set for bold/strong markup or bold cell fonts.
	Emphasized bool `json:"emphasized,omitempty"`
	// Heading marks the structural title cell of a row (th in HTML exports).
	Heading bool `json:"heading,omitempty"`
}

// Row is an ordered sequence of raw cells in document order.
type Row []RawCell

// Cell is a normalized logical cell.
type Cell struct {
	Text    string `json:"text"`
	Colspan int    `json:"colspan"`
	Hidden  bool   `json:"hidden"`
}
