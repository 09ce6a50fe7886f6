package extraction

import (
	"strconv"
	"strings"

	"tradelens/pkg/contracts/domain"
)

// maxColspan matches the HTML limit on the colspan attribute.
const maxColspan = 1000

// NormalizeCell converts a raw cell into the cell model.
func NormalizeCell(raw domain.RawCell) domain.Cell {
	return domain.Cell{
		Text:    raw.Text,
		Colspan: parseColspan(raw.Colspan),
		Hidden:  raw.Hidden,
	}
}

// parseColspan returns the positive integer value of a colspan attribute,
// or 1 when the attribute is missing, malformed or not positive.
func parseColspan(attr string) int {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return 1
	}
	n, err := strconv.Atoi(attr)
	if err != nil || n <= 0 {
		return 1
	}
	if n > maxColspan {
		return maxColspan
	}
	return n
}

// ExpandCell returns the logical columns a cell occupies: none when hidden,
// otherwise colspan copies of its text.
func ExpandCell(c domain.Cell) []domain.Cell {
	if c.Hidden {
		return nil
	}
	span := c.Colspan
	if span < 1 {
		span = 1
	}
	out := make([]domain.Cell, span)
	for i := range out {
		out[i] = domain.Cell{Text: c.Text, Colspan: 1}
	}
	return out
}

// ExpandRow normalizes and expands every cell of a row in order.
func ExpandRow(row domain.Row) []domain.Cell {
	cells := make([]domain.Cell, 0, len(row))
	for _, raw := range row {
		cells = append(cells, ExpandCell(NormalizeCell(raw))...)
	}
	return cells
}

// visibleTexts returns the trimmed text of every non-hidden raw cell, without
// colspan expansion.
func visibleTexts(row domain.Row) []string {
	texts := make([]string, 0, len(row))
	for _, raw := range row {
		if raw.Hidden {
			continue
		}
		texts = append(texts, strings.TrimSpace(raw.Text))
	}
	return texts
}

func trimmedTexts(cells []domain.Cell) []string {
	texts := make([]string, len(cells))
	for i, c := range cells {
		texts[i] = strings.TrimSpace(c.Text)
	}
	return texts
}

func hasContent(texts []string) bool {
	for _, t := range texts {
		if t != "" {
			return true
		}
	}
	return false
}
