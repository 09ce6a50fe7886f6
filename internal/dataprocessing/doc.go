// Package dataprocessing loads broker trade history exports and turns them
// into trade histories and statistics.
//
// # Architecture
//
// The package sits between the file system (or an HTTP upload) and the
// extraction engine:
//
//  1. Loader: picks an adapter from the file extension (OpenSource, ReadSource)
//  2. Adapters: tokenize HTML reports (ReadHTMLRows) and workbooks (ReadWorkbookRows)
//     into rows of raw cells
//  3. Analytics: computes deal statistics over an extracted history (CalculateStats)
//
// # Usage
//
//	doc, err := dataprocessing.OpenSource("ReportHistory-5012345.html")
//	if err != nil {
//	    return err
//	}
//	history, _, err := doc.Extract(ctx)
//	if err != nil {
//	    return err
//	}
//	stats := dataprocessing.CalculateStats(history)
//
// # Data Flow
//
//	File → Adapter → []domain.Row → extraction.Extractor → TradeHistory → Analytics
//
// # Error Handling
//
// Every open or tokenize failure wraps ErrDocumentUnreadable; unknown file
// extensions return ErrUnsupportedFormat. Extraction itself never fails on
// document content.
package dataprocessing
