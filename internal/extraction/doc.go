// Package extraction turns the rows of a broker trade history export into
// named record sets.
//
// # Pipeline
//
//	domain.Row → Classifier → ClassifiedRow → Advance → Effect → TradeHistory
//
// A Classifier assigns each row one role in a fixed priority order:
// section title, summary (while in Summary), header, totals, data, blank.
// Two classifiers cover the supported document shapes:
//
//	StyledClassifier  HTML exports, titles in bold heading cells, bold headers
//	FlatClassifier    spreadsheet rows, first cell names the section and the
//	                  next row is the header row
//
// The section machine is explicit. Its state is tagged Idle, InSection or
// InSummary, and Advance maps (state, row) to (state', effect) without side
// effects. Machine applies the effects to an accumulating TradeHistory.
//
// # Cells
//
// Cells are expanded before they reach headers or records: a cell with
// colspan k yields k logical columns carrying the same text and hidden cells
// yield none. Header and data rows go through the same expansion so column
// indices stay aligned.
//
// # Errors
//
// Extraction cannot fail. Malformed colspans default to 1, short rows are
// padded, unpaired summary keys are dropped and a document without section
// titles yields empty sections.
package extraction
