package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradelens/pkg/contracts/domain"
)

var (
	viewIdle       = View{Phase: PhaseIdle}
	viewNoHeaders  = View{Phase: PhaseInSection, Section: domain.SectionDeals}
	viewWithHeader = View{Phase: PhaseInSection, Section: domain.SectionDeals, HeadersKnown: true}
	viewSummary    = View{Phase: PhaseInSummary}
)

func TestStyledClassifier(t *testing.T) {
	c := StyledClassifier{}

	tests := []struct {
		name        string
		row         domain.Row
		view        View
		wantRole    Role
		wantSection domain.SectionName
	}{
		{"known title", row(span(heading("Positions"), "14")), viewIdle, RoleSectionTitle, domain.SectionPositions},
		{"title wins inside section", row(heading("Orders")), viewWithHeader, RoleSectionTitle, domain.SectionOrders},
		{"title is case sensitive", row(heading("deals")), viewIdle, RoleSectionTitle, domain.SectionNone},
		{"unknown title", row(heading("Trade History Report")), viewWithHeader, RoleSectionTitle, domain.SectionNone},
		{"heading needs emphasis", row(domain.RawCell{Text: "Deals", Heading: true}), viewIdle, RoleBlank, ""},
		{"heading among other content is not a title", row(heading("Deals"), td("x")), viewIdle, RoleBlank, ""},
		{"hidden cells ignored for title", row(hidden("x"), heading("Deals")), viewIdle, RoleSectionTitle, domain.SectionDeals},
		{"bold row before headers", boldRow("Time", "Symbol"), viewNoHeaders, RoleHeader, ""},
		{"bold row repeats header", boldRow("Time", "Symbol"), viewWithHeader, RoleHeader, ""},
		{"bold numeric row after headers is totals", row(td(""), bold("0.00"), bold("15.50")), viewWithHeader, RoleTotals, ""},
		{"bold numeric row before headers masquerades as header", boldRow("0.00", "15.50"), viewNoHeaders, RoleHeader, ""},
		{"plain numeric row is totals", flatRow("", "", "15.50"), viewWithHeader, RoleTotals, ""},
		{"plain row is data", flatRow("2024-01-01", "EURUSD", "15.50"), viewWithHeader, RoleData, ""},
		{"plain row before headers closes", flatRow("a", "b"), viewNoHeaders, RoleBlank, ""},
		{"empty row", row(), viewWithHeader, RoleBlank, ""},
		{"spacer row", row(span(td(""), "14")), viewWithHeader, RoleBlank, ""},
		{"balance anchor outside section", row(td("Balance:"), bold("1000.00")), viewIdle, RoleSummary, ""},
		{"balance anchor inside section is data", row(td("Balance:"), td("1000.00")), viewWithHeader, RoleData, ""},
		{"anything in summary", flatRow("Equity:", "1.00"), viewSummary, RoleSummary, ""},
		{"blank in summary", row(), viewSummary, RoleSummary, ""},
		{"idle text row", flatRow("Name:", "John"), viewIdle, RoleBlank, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.row, tt.view)
			assert.Equal(t, tt.wantRole, got.Role, "role %s", got.Role)
			assert.Equal(t, tt.wantSection, got.Section)
		})
	}
}

func TestFlatClassifier(t *testing.T) {
	c := FlatClassifier{}

	tests := []struct {
		name        string
		row         domain.Row
		view        View
		wantRole    Role
		wantSection domain.SectionName
	}{
		{"first cell names section", flatRow("Deals", "", ""), viewIdle, RoleSectionTitle, domain.SectionDeals},
		{"leading empty cells skipped", flatRow("", " Orders "), viewIdle, RoleSectionTitle, domain.SectionOrders},
		{"summary title", flatRow("Summary"), viewIdle, RoleSectionTitle, domain.SectionSummary},
		{"other first cell is not a title", flatRow("Results"), viewIdle, RoleBlank, ""},
		{"first row after title is header", flatRow("Time", "Profit"), viewNoHeaders, RoleHeader, ""},
		{"numeric first row is still header", flatRow("1", "2"), viewNoHeaders, RoleHeader, ""},
		{"later rows are data", flatRow("Time", "Profit"), viewWithHeader, RoleData, ""},
		{"numeric later row is totals", flatRow("100", "200"), viewWithHeader, RoleTotals, ""},
		{"empty row closes", flatRow(), viewWithHeader, RoleBlank, ""},
		{"balance anchor", flatRow("Balance:", "10.00"), viewIdle, RoleSummary, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.row, tt.view)
			assert.Equal(t, tt.wantRole, got.Role, "role %s", got.Role)
			assert.Equal(t, tt.wantSection, got.Section)
		})
	}
}

func TestClassify_ExpandsCells(t *testing.T) {
	got := StyledClassifier{}.Classify(row(td("a"), span(td(" b "), "2"), hidden("h")), viewWithHeader)

	assert.Equal(t, []string{"a", "b", "b"}, got.Texts)
	assert.Equal(t, []string{"a", "b"}, got.Visible)
	assert.Len(t, got.Cells, 3)
}
