package extraction

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelens/pkg/contracts/domain"
)

func dealsDocument(styledRows bool) []domain.Row {
	if styledRows {
		return []domain.Row{
			row(span(heading("Deals"), "3")),
			boldRow("Time", "Symbol", "Profit"),
			flatRow("2024-01-01", "EURUSD", "15.50"),
			row(td(""), td(""), bold("15.50")),
			row(),
		}
	}
	return []domain.Row{
		flatRow("Deals"),
		flatRow("Time", "Symbol", "Profit"),
		flatRow("2024-01-01", "EURUSD", "15.50"),
		flatRow("", "", "15.50"),
		flatRow(),
	}
}

func TestExtract_DealsSection(t *testing.T) {
	tests := []struct {
		name       string
		classifier Classifier
		styled     bool
	}{
		{"styled", StyledClassifier{}, true},
		{"flat", FlatClassifier{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := New(tt.classifier).Extract(dealsDocument(tt.styled))

			require.Len(t, history.Deals.Records, 1)
			assert.Equal(t, []string{"Time", "Symbol", "Profit"}, history.Deals.Headers)

			data, err := json.Marshal(history.Deals.Records[0])
			require.NoError(t, err)
			assert.JSONEq(t, `{"Time":"2024-01-01","Symbol":"EURUSD","Profit":"15.50"}`, string(data))

			assert.True(t, history.Positions.Empty())
			assert.True(t, history.Orders.Empty())
			assert.Empty(t, history.Summary)
		})
	}
}

func TestExtract_NoTitles(t *testing.T) {
	rows := []domain.Row{
		boldRow("Time", "Profit"),
		flatRow("2024-01-01", "1.00"),
		flatRow("", "1.00"),
	}

	history := New(StyledClassifier{}).Extract(rows)

	assert.Equal(t, domain.NewTradeHistory(), history)
}

func TestExtract_ColspanAlignment(t *testing.T) {
	rows := []domain.Row{
		row(heading("Positions")),
		boldRow("Time", "Symbol", "Type", "Profit"),
		row(td("2024-01-02"), span(td("GBPUSD"), "2"), td("-3.20")),
		row(td("2024-01-03"), td("USDJPY"), span(hidden("x"), "5"), td("buy"), td("7.00")),
	}

	history := New(StyledClassifier{}).Extract(rows)

	require.Len(t, history.Positions.Records, 2)
	assert.Equal(t, []string{"2024-01-02", "GBPUSD", "GBPUSD", "-3.20"}, history.Positions.Records[0].Values())
	assert.Equal(t, []string{"2024-01-03", "USDJPY", "buy", "7.00"}, history.Positions.Records[1].Values())
}

func TestExtract_HeaderColspan(t *testing.T) {
	tests := []struct {
		name       string
		classifier Classifier
		title      domain.Row
		header     domain.Row
	}{
		{"styled", StyledClassifier{}, row(heading("Deals")), row(bold("Time"), span(bold("Price"), "2"), bold("Profit"))},
		{"flat", FlatClassifier{}, flatRow("Deals"), row(td("Time"), span(td("Price"), "2"), td("Profit"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []domain.Row{
				tt.title,
				tt.header,
				flatRow("2024-01-01", "1.1000", "1.1050", "5.00"),
				row(td("2024-01-02"), span(td("1.2000"), "2"), td("-1.00")),
			}

			history := New(tt.classifier).Extract(rows)

			assert.Equal(t, []string{"Time", "Price", "Price", "Profit"}, history.Deals.Headers)
			require.Len(t, history.Deals.Records, 2)
			assert.Equal(t, domain.Record{
				{Name: "Time", Value: "2024-01-01"},
				{Name: "Price", Value: "1.1000"},
				{Name: "Price", Value: "1.1050"},
				{Name: "Profit", Value: "5.00"},
			}, history.Deals.Records[0])
			assert.Equal(t, domain.Record{
				{Name: "Time", Value: "2024-01-02"},
				{Name: "Price", Value: "1.2000"},
				{Name: "Price", Value: "1.2000"},
				{Name: "Profit", Value: "-1.00"},
			}, history.Deals.Records[1])
		})
	}
}

func TestExtract_RecordLengthMatchesHeaders(t *testing.T) {
	rows := []domain.Row{
		flatRow("Orders"),
		flatRow("Open Time", "Order", "Symbol"),
		flatRow("2024-01-01"),
		flatRow("2024-01-02", "42", "EURUSD", "extra", "more"),
	}

	history := New(FlatClassifier{}).Extract(rows)

	require.Len(t, history.Orders.Records, 2)
	for _, r := range history.Orders.Records {
		assert.Len(t, r, len(history.Orders.Headers))
	}
	assert.Equal(t, []string{"2024-01-01", "", ""}, history.Orders.Records[0].Values())
	assert.Equal(t, []string{"2024-01-02", "42", "EURUSD"}, history.Orders.Records[1].Values())
}

func TestExtract_TotalsExcluded(t *testing.T) {
	rows := []domain.Row{
		row(heading("Deals")),
		boldRow("Time", "Commission", "Profit"),
		flatRow("2024-01-01", "-0.50", "10.00"),
		flatRow("", "-0.50", "10.00"),
		row(td(""), bold("(1 000,50)"), bold("12.5%")),
		flatRow("2024-01-02", "0.00", "-4.00"),
	}

	history := New(StyledClassifier{}).Extract(rows)

	require.Len(t, history.Deals.Records, 2)
	assert.Equal(t, "2024-01-01", history.Deals.Records[0][0].Value)
	assert.Equal(t, "2024-01-02", history.Deals.Records[1][0].Value)
}

func TestExtract_HeaderReplacement(t *testing.T) {
	rows := []domain.Row{
		row(heading("Deals")),
		boldRow("Time", "Profit"),
		flatRow("2024-01-01", "1.00"),
		boldRow("Date", "Symbol", "Result"),
		flatRow("2024-01-02", "EURUSD", "2.00"),
	}

	history := New(StyledClassifier{}).Extract(rows)

	assert.Equal(t, []string{"Date", "Symbol", "Result"}, history.Deals.Headers)
	require.Len(t, history.Deals.Records, 2)
	assert.Equal(t, domain.Record{{Name: "Time", Value: "2024-01-01"}, {Name: "Profit", Value: "1.00"}}, history.Deals.Records[0])
	v, ok := history.Deals.Records[1].Get("Result")
	require.True(t, ok)
	assert.Equal(t, "2.00", v)
}

func TestExtract_UnknownTitleEndsSection(t *testing.T) {
	rows := []domain.Row{
		row(heading("Deals")),
		boldRow("Time", "Profit"),
		flatRow("2024-01-01", "1.00"),
		row(heading("Results")),
		flatRow("2024-01-02", "2.00"),
	}

	history := New(StyledClassifier{}).Extract(rows)

	assert.Len(t, history.Deals.Records, 1)
}

func TestExtract_Summary(t *testing.T) {
	rows := []domain.Row{
		row(heading("Deals")),
		boldRow("Time", "Profit"),
		flatRow("2024-01-01", "1.00"),
		row(),
		row(td("Balance:"), bold("1000.00"), td("Credit Facility:"), bold("0.00"), td("Floating")),
		row(td("Equity:"), span(bold("1 000.00"), "3")),
		row(heading("Deals")),
		boldRow("Time", "Profit"),
		flatRow("2024-01-02", "2.00"),
	}

	history := New(StyledClassifier{}).Extract(rows)

	assert.Equal(t, domain.Summary{
		"Balance":         "1000.00",
		"Credit Facility": "0.00",
		"Equity":          "1 000.00",
	}, history.Summary)
	assert.Len(t, history.Deals.Records, 1, "summary is terminal")
}

func TestExtract_FlatSummaryTitle(t *testing.T) {
	rows := []domain.Row{
		flatRow("Summary"),
		flatRow("Total Net Profit:", "120.00", "Gross Profit:", "200.00"),
		flatRow("Profit Factor:", "2.50"),
	}

	history := New(FlatClassifier{}).Extract(rows)

	assert.Equal(t, domain.Summary{
		"Total Net Profit": "120.00",
		"Gross Profit":     "200.00",
		"Profit Factor":    "2.50",
	}, history.Summary)
}

// A numeric first row after a title cannot be told apart from a header row in
// an unstyled sheet.
func TestExtract_FlatNumericFirstRowBecomesHeader(t *testing.T) {
	rows := []domain.Row{
		flatRow("Deals"),
		flatRow("1", "2"),
		flatRow("3", "x"),
	}

	history := New(FlatClassifier{}).Extract(rows)

	assert.Equal(t, []string{"1", "2"}, history.Deals.Headers)
	require.Len(t, history.Deals.Records, 1)
	assert.Equal(t, domain.Record{{Name: "1", Value: "3"}, {Name: "2", Value: "x"}}, history.Deals.Records[0])
}

func TestExtract_Deterministic(t *testing.T) {
	e := New(StyledClassifier{})
	doc := append(dealsDocument(true), row(td("Balance:"), td("5.00"), td("Equity:"), td("6.00")))

	first, err := json.Marshal(e.Extract(doc))
	require.NoError(t, err)
	second, err := json.Marshal(e.Extract(doc))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestExtractContext_Tally(t *testing.T) {
	_, tally, err := New(StyledClassifier{}).ExtractContext(context.Background(), dealsDocument(true))
	require.NoError(t, err)

	assert.Equal(t, Tally{
		RoleSectionTitle: 1,
		RoleHeader:       1,
		RoleData:         1,
		RoleTotals:       1,
		RoleBlank:        1,
	}, tally)
}

func TestExtractContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	history, tally, err := New(FlatClassifier{}).ExtractContext(ctx, dealsDocument(false))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, tally)
	assert.Equal(t, domain.NewTradeHistory(), history)
}
