package extraction

import "tradelens/pkg/contracts/domain"

func td(text string) domain.RawCell {
	return domain.RawCell{Text: text}
}

func bold(text string) domain.RawCell {
	return domain.RawCell{Text: text, Emphasized: true}
}

func heading(text string) domain.RawCell {
	return domain.RawCell{Text: text, Emphasized: true, Heading: true}
}

func hidden(text string) domain.RawCell {
	return domain.RawCell{Text: text, Hidden: true}
}

func span(c domain.RawCell, colspan string) domain.RawCell {
	c.Colspan = colspan
	return c
}

func row(cells ...domain.RawCell) domain.Row {
	return domain.Row(cells)
}

// flatRow builds an unstyled spreadsheet row.
func flatRow(texts ...string) domain.Row {
	r := make(domain.Row, len(texts))
	for i, t := range texts {
		r[i] = td(t)
	}
	return r
}

func boldRow(texts ...string) domain.Row {
	r := make(domain.Row, len(texts))
	for i, t := range texts {
		r[i] = bold(t)
	}
	return r
}
