package domain

import (
	"bytes"
	"encoding/json"
)

// SectionName identifies one of the logical groupings of a trade history export
type SectionName string

const (
	SectionNone      SectionName = ""
	SectionPositions SectionName = "Positions"
	SectionOrders    SectionName = "Orders"
	SectionDeals     SectionName = "Deals"
	SectionSummary   SectionName = "Summary"
)

// TabularSections lists the sections that carry headers and records, in output order
var TabularSections = []SectionName{SectionPositions, SectionOrders, SectionDeals}

// ParseSectionName returns the section for an exact, case-sensitive title match.
func ParseSectionName(s string) (SectionName, bool) {
	switch SectionName(s) {
	case SectionPositions, SectionOrders, SectionDeals, SectionSummary:
		return SectionName(s), true
	}
	return SectionNone, false
}

// IsTabular reports whether the section holds headers and records
func (s SectionName) IsTabular() bool {
	return s == SectionPositions || s == SectionOrders || s == SectionDeals
}

// Field is one header/value pair of a record
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is one data row zipped with the section headers. It always has
// exactly as many fields as the section has headers, in header order.
type Record []Field

// Get returns the value of the last field with the given name.
func (r Record) Get(name string) (string, bool) {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i].Name == name {
			return r[i].Value, true
		}
	}
	return "", false
}

// Values returns the field values in header order
func (r Record) Values() []string {
	values := make([]string, len(r))
	for i, f := range r {
		values[i] = f.Value
	}
	return values
}

// Map returns the record as a plain mapping. Duplicate headers keep the last value.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalJSON renders the record as a JSON object in header order.
// Duplicate header names appear once, at their first position, carrying the
// last value.
func (r Record) MarshalJSON() ([]byte, error) {
	last := r.Map()
	seen := make(map[string]bool, len(r))

	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, f := range r {
		if seen[f.Name] {
			continue
		}
		if len(seen) > 0 {
			buf.WriteByte(',')
		}
		seen[f.Name] = true

		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(last[f.Name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TableSection is the extracted content of one tabular section
type TableSection struct {
	Headers []string `json:"headers"`
	Records []Record `json:"records"`
}

// Empty reports whether the section has no records
func (t TableSection) Empty() bool {
	return len(t.Records) == 0
}

// Summary holds the key/value pairs of the trailing free-text block
type Summary map[string]string

// TradeHistory is the result of extracting one document
type TradeHistory struct {
	Positions TableSection `json:"Positions"`
	Orders    TableSection `json:"Orders"`
	Deals     TableSection `json:"Deals"`
	Summary   Summary      `json:"Summary"`
}

// NewTradeHistory returns an empty result with every section present.
func NewTradeHistory() *TradeHistory {
	return &TradeHistory{
		Positions: TableSection{Headers: []string{}, Records: []Record{}},
		Orders:    TableSection{Headers: []string{}, Records: []Record{}},
		Deals:     TableSection{Headers: []string{}, Records: []Record{}},
		Summary:   Summary{},
	}
}

// Section returns a pointer to the named tabular section, or nil.
func (h *TradeHistory) Section(name SectionName) *TableSection {
	switch name {
	case SectionPositions:
		return &h.Positions
	case SectionOrders:
		return &h.Orders
	case SectionDeals:
		return &h.Deals
	}
	return nil
}

// RecordsOnly is the projection of a trade history without exposed headers
type RecordsOnly struct {
	Positions []Record `json:"Positions"`
	Orders    []Record `json:"Orders"`
	Deals     []Record `json:"Deals"`
	Summary   Summary  `json:"Summary"`
}

// RecordsOnly drops the header lists.
func (h *TradeHistory) RecordsOnly() RecordsOnly {
	return RecordsOnly{
		Positions: h.Positions.Records,
		Orders:    h.Orders.Records,
		Deals:     h.Deals.Records,
		Summary:   h.Summary,
	}
}
