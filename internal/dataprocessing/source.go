package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tradelens/internal/extraction"
	"tradelens/pkg/contracts/domain"
)

var (
	// ErrDocumentUnreadable wraps every failure to open or tokenize a document.
	ErrDocumentUnreadable = errors.New("document unreadable")
	// ErrUnsupportedFormat is returned for file names with no known adapter.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Format identifies the shape of an export document.
type Format string

const (
	FormatWorkbook Format = "workbook"
	FormatHTML     Format = "html"
)

// DetectFormat chooses the adapter from the file extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatWorkbook, nil
	case ".htm", ".html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
}

// Classifier returns the row classifier matching the document shape.
func (f Format) Classifier() extraction.Classifier {
	if f == FormatHTML {
		return extraction.StyledClassifier{}
	}
	return extraction.FlatClassifier{}
}

// Document is a tokenized export ready for extraction.
type Document struct {
	Name   string
	Format Format
	Rows   []domain.Row
}

// OpenSource reads and tokenizes the document at path.
func OpenSource(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}
	defer f.Close()

	return readDocument(filepath.Base(path), format, f)
}

// ReadSource tokenizes a document read from r. The name is only used to pick
// the format.
func ReadSource(name string, r io.Reader) (*Document, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	return readDocument(name, format, r)
}

func readDocument(name string, format Format, r io.Reader) (*Document, error) {
	var (
		rows []domain.Row
		err  error
	)
	switch format {
	case FormatHTML:
		rows, err = ReadHTMLRows(r)
	default:
		rows, err = ReadWorkbookRows(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, name, err)
	}
	return &Document{Name: name, Format: format, Rows: rows}, nil
}

// Extract runs the extraction engine over the document rows with the
// classifier of its format.
func (d *Document) Extract(ctx context.Context) (*domain.TradeHistory, extraction.Tally, error) {
	return extraction.New(d.Format.Classifier()).ExtractContext(ctx, d.Rows)
}
