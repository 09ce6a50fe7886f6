package dataprocessing

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tradelens/pkg/contracts/domain"
)

// ReadWorkbookRows tokenizes every sheet of a workbook in order. Sheets are
// separated by an empty row so a section never continues across sheets.
// Hidden rows, and rows that only have cells in hidden columns, are skipped.
func ReadWorkbookRows(r io.Reader) ([]domain.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var rows []domain.Row
	for i, sheet := range f.GetSheetList() {
		sheetRows, err := newSheetReader(f, sheet).rows()
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if i > 0 {
			rows = append(rows, domain.Row{})
		}
		rows = append(rows, sheetRows...)
	}
	return rows, nil
}

type cellPos struct {
	col, row int
}

type sheetReader struct {
	f     *excelize.File
	sheet string

	spans      map[cellPos]int
	covered    map[cellPos]bool
	hiddenCols map[int]bool
	boldStyles map[int]bool
}

func newSheetReader(f *excelize.File, sheet string) *sheetReader {
	return &sheetReader{
		f:          f,
		sheet:      sheet,
		spans:      make(map[cellPos]int),
		covered:    make(map[cellPos]bool),
		hiddenCols: make(map[int]bool),
		boldStyles: make(map[int]bool),
	}
}

func (s *sheetReader) rows() ([]domain.Row, error) {
	values, err := s.f.GetRows(s.sheet)
	if err != nil {
		return nil, err
	}
	if err := s.loadMerges(); err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(values))
	for i, rowValues := range values {
		rowNum := i + 1
		visible, err := s.f.GetRowVisible(s.sheet, rowNum)
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}

		row := domain.Row{}
		for j, text := range rowValues {
			pos := cellPos{col: j + 1, row: rowNum}
			if s.covered[pos] {
				continue
			}
			cell := domain.RawCell{
				Text:   text,
				Hidden: s.columnHidden(pos.col),
			}
			if span := s.spans[pos]; span > 1 {
				cell.Colspan = strconv.Itoa(span)
			}
			if strings.TrimSpace(text) != "" {
				cell.Emphasized = s.bold(pos)
			}
			row = append(row, cell)
		}
		if whollyHidden(row) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// loadMerges turns every merged range into a colspan on its leftmost column,
// row by row, and marks the other columns as covered.
func (s *sheetReader) loadMerges() error {
	merges, err := s.f.GetMergeCells(s.sheet)
	if err != nil {
		return err
	}
	for _, m := range merges {
		startCol, startRow, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			return err
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			return err
		}
		for row := startRow; row <= endRow; row++ {
			s.spans[cellPos{col: startCol, row: row}] = endCol - startCol + 1
			for col := startCol + 1; col <= endCol; col++ {
				s.covered[cellPos{col: col, row: row}] = true
			}
		}
	}
	return nil
}

func (s *sheetReader) columnHidden(col int) bool {
	if hidden, ok := s.hiddenCols[col]; ok {
		return hidden
	}
	hidden := false
	if name, err := excelize.ColumnNumberToName(col); err == nil {
		if visible, err := s.f.GetColVisible(s.sheet, name); err == nil {
			hidden = !visible
		}
	}
	s.hiddenCols[col] = hidden
	return hidden
}

func (s *sheetReader) bold(pos cellPos) bool {
	axis, err := excelize.CoordinatesToCellName(pos.col, pos.row)
	if err != nil {
		return false
	}
	styleID, err := s.f.GetCellStyle(s.sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}
	if bold, ok := s.boldStyles[styleID]; ok {
		return bold
	}
	bold := false
	if style, err := s.f.GetStyle(styleID); err == nil && style.Font != nil {
		bold = style.Font.Bold
	}
	s.boldStyles[styleID] = bold
	return bold
}
