// Package exporter writes extracted trade history sections as CSV.
//
// A tabular section becomes one CSV document: the header row followed by one
// row per record, values in header order. An optional UTF-8 byte order mark
// lets spreadsheet applications detect the encoding.
//
// Example usage:
//
//	err := exporter.WriteSection(w, &history.Deals, exporter.WriteOptions{BOMPrefix: true})
//
//	paths, err := exporter.ExportSections("out", "ReportHistory", history, exporter.WriteOptions{})
package exporter
