package extraction

import (
	"strings"

	"tradelens/pkg/contracts/domain"
)

// Role is the classification of one row
type Role int

const (
	RoleBlank Role = iota
	RoleSectionTitle
	RoleHeader
	RoleData
	RoleTotals
	RoleSummary
)

func (r Role) String() string {
	switch r {
	case RoleSectionTitle:
		return "section_title"
	case RoleHeader:
		return "header"
	case RoleData:
		return "data"
	case RoleTotals:
		return "totals"
	case RoleSummary:
		return "summary"
	default:
		return "blank"
	}
}

// View is the part of the machine state a classifier may look at.
type View struct {
	Phase        Phase
	Section      domain.SectionName
	HeadersKnown bool
}

// ClassifiedRow is a row tagged with its role and its expanded cells.
type ClassifiedRow struct {
	Role Role
	// Section is set for RoleSectionTitle. SectionNone means the title text
	// is not one of the known section names.
	Section domain.SectionName
	// Cells are the logical cells after colspan expansion and hidden-cell removal.
	Cells []domain.Cell
	// Texts are the trimmed texts of Cells.
	Texts []string
	// Visible are the trimmed texts of the non-hidden raw cells, unexpanded.
	Visible []string
}

// Classifier assigns a role to a row given the current machine view.
// Implementations exist per document shape.
type Classifier interface {
	Classify(row domain.Row, view View) ClassifiedRow
}

// shape holds the two shape-specific decisions; the priority order lives in
// classify and is shared.
type shape interface {
	title(row domain.Row) (string, bool)
	header(row domain.Row, texts []string, view View) bool
}

// classify applies the fixed priority: title, summary (while in Summary),
// header, totals, data, blank.
func classify(s shape, row domain.Row, view View) ClassifiedRow {
	cells := ExpandRow(row)
	c := ClassifiedRow{
		Cells:   cells,
		Texts:   trimmedTexts(cells),
		Visible: visibleTexts(row),
	}

	if text, ok := s.title(row); ok {
		c.Role = RoleSectionTitle
		c.Section, _ = domain.ParseSectionName(text)
		return c
	}

	if view.Phase == PhaseInSummary {
		c.Role = RoleSummary
		return c
	}

	if !hasContent(c.Texts) {
		c.Role = RoleBlank
		return c
	}

	switch view.Phase {
	case PhaseInSection:
		switch {
		case s.header(row, c.Texts, view):
			c.Role = RoleHeader
		case view.HeadersKnown && IsTotalsRow(c.Texts):
			c.Role = RoleTotals
		case view.HeadersKnown:
			c.Role = RoleData
		default:
			c.Role = RoleBlank
		}
	case PhaseIdle:
		if containsSummaryAnchor(c.Visible) {
			c.Role = RoleSummary
		}
	}
	return c
}

// StyledClassifier handles HTML-like exports where section titles sit in a
// bold heading cell and header rows are bold.
type StyledClassifier struct{}

func (StyledClassifier) Classify(row domain.Row, view View) ClassifiedRow {
	return classify(styled{}, row, view)
}

type styled struct{}

// title accepts a row whose only content cell is an emphasized heading cell.
func (styled) title(row domain.Row) (string, bool) {
	var titleCell *domain.RawCell
	for i := range row {
		cell := &row[i]
		if cell.Hidden || strings.TrimSpace(cell.Text) == "" {
			continue
		}
		if titleCell != nil {
			return "", false
		}
		titleCell = cell
	}
	if titleCell == nil || !titleCell.Heading || !titleCell.Emphasized {
		return "", false
	}
	return strings.TrimSpace(titleCell.Text), true
}

// header requires every visible content cell to be emphasized. Once headers
// are known, an emphasized all-numeric row is a totals row instead.
func (styled) header(row domain.Row, texts []string, view View) bool {
	for _, cell := range row {
		if cell.Hidden || strings.TrimSpace(cell.Text) == "" {
			continue
		}
		if !cell.Emphasized {
			return false
		}
	}
	return !(view.HeadersKnown && IsTotalsRow(texts))
}

// FlatClassifier handles spreadsheet rows: the first non-empty cell names the
// section and the first row after a title is always the header row.
type FlatClassifier struct{}

func (FlatClassifier) Classify(row domain.Row, view View) ClassifiedRow {
	return classify(flat{}, row, view)
}

type flat struct{}

func (flat) title(row domain.Row) (string, bool) {
	for _, cell := range row {
		if cell.Hidden {
			continue
		}
		text := strings.TrimSpace(cell.Text)
		if text == "" {
			continue
		}
		_, ok := domain.ParseSectionName(text)
		return text, ok
	}
	return "", false
}

func (flat) header(_ domain.Row, _ []string, view View) bool {
	return !view.HeadersKnown
}
