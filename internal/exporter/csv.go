package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"tradelens/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteSection writes the header row and every record of a section
func WriteSection(w io.Writer, section *domain.TableSection, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(section.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range section.Records {
		if err := writer.Write(record.Values()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSectionFile writes a section to filePath, creating parent directories
func WriteSectionFile(filePath string, section *domain.TableSection, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := WriteSection(file, section, options); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ExportSections writes every non-empty tabular section of a history to
// dir/<prefix>_<Section>.csv and returns the written paths.
func ExportSections(dir, prefix string, history *domain.TradeHistory, options WriteOptions) ([]string, error) {
	var written []string
	for _, name := range domain.TabularSections {
		section := history.Section(name)
		if section.Empty() {
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, name))
		if err := WriteSectionFile(path, section, options); err != nil {
			return written, fmt.Errorf("export %s: %w", name, err)
		}

		slog.Debug("Wrote section CSV",
			slog.String("section", string(name)),
			slog.String("path", path),
			slog.Int("record_count", len(section.Records)))
		written = append(written, path)
	}
	return written, nil
}
