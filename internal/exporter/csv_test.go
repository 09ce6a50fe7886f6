package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelens/pkg/contracts/domain"
)

func dealsSection() *domain.TableSection {
	return &domain.TableSection{
		Headers: []string{"Time", "Symbol", "Comment", "Profit"},
		Records: []domain.Record{
			{{Name: "Time", Value: "2024-01-01"}, {Name: "Symbol", Value: "EURUSD"}, {Name: "Comment", Value: "tp, hit"}, {Name: "Profit", Value: "15.50"}},
			{{Name: "Time", Value: "2024-01-02"}, {Name: "Symbol", Value: "GBPUSD"}, {Name: "Comment", Value: `say "hi"`}, {Name: "Profit", Value: "-5.25"}},
		},
	}
}

func TestWriteSection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSection(&buf, dealsSection(), WriteOptions{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Time", "Symbol", "Comment", "Profit"},
		{"2024-01-01", "EURUSD", "tp, hit", "15.50"},
		{"2024-01-02", "GBPUSD", `say "hi"`, "-5.25"},
	}, rows)
}

func TestWriteSection_BOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSection(&buf, dealsSection(), WriteOptions{BOMPrefix: true}))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, buf.String(), "Time,Symbol,Comment,Profit\n")
}

func TestWriteSection_EmptySection(t *testing.T) {
	var buf bytes.Buffer
	section := &domain.TableSection{Headers: []string{}, Records: []domain.Record{}}
	require.NoError(t, WriteSection(&buf, section, WriteOptions{}))
	assert.Equal(t, "\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSection_WriterError(t *testing.T) {
	err := WriteSection(failingWriter{}, dealsSection(), WriteOptions{BOMPrefix: true})
	assert.ErrorContains(t, err, "disk full")

	err = WriteSection(failingWriter{}, dealsSection(), WriteOptions{})
	assert.ErrorContains(t, err, "disk full")
}

func TestExportSections(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	history := domain.NewTradeHistory()
	history.Deals = *dealsSection()

	paths, err := ExportSections(dir, "ReportHistory", history, WriteOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "ReportHistory_Deals.csv")}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-01-02,GBPUSD")
}

func TestExportSections_NothingToWrite(t *testing.T) {
	dir := t.TempDir()

	paths, err := ExportSections(dir, "empty", domain.NewTradeHistory(), WriteOptions{})
	require.NoError(t, err)
	assert.Empty(t, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
