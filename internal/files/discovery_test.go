package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradelens/internal/dataprocessing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("test content"), 0644))
	}
}

func TestNewDiscovery(t *testing.T) {
	discovery := NewDiscovery("/test/base")

	assert.NotNil(t, discovery)
	assert.Equal(t, "/test/base", discovery.basePath)
}

func TestFindReports(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "html and workbook",
			files:    []string{"b.xlsx", "a.html", "c.HTM"},
			expected: []string{"a.html", "b.xlsx", "c.HTM"},
		},
		{
			name:     "mixed file types",
			files:    []string{"report.xlsx", "data.csv", "doc.pdf", "legacy.xls"},
			expected: []string{"report.xlsx"},
		},
		{
			name:     "office lock files skipped",
			files:    []string{"~$report.xlsx", "report.xlsx"},
			expected: []string{"report.xlsx"},
		},
		{
			name:  "no reports",
			files: []string{"readme.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			touch(t, filepath.Join(tmpDir, "exports"), tt.files...)
			require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "exports", "nested.html"), 0755))

			found, err := NewDiscovery(tmpDir).FindReports("exports")
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(tmpDir, "exports", f.Name), f.Path)
				assert.Equal(t, int64(len("test content")), f.Size)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindReports_Format(t *testing.T) {
	tmpDir := t.TempDir()
	touch(t, tmpDir, "a.html", "b.xlsx")

	found, err := NewDiscovery("").FindReports(tmpDir)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, dataprocessing.FormatHTML, found[0].Format)
	assert.Equal(t, dataprocessing.FormatWorkbook, found[1].Format)
}

func TestFindReports_MissingDirectory(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindReports("absent")
	assert.ErrorContains(t, err, "failed to read directory")
}

func TestFindFilesByPattern(t *testing.T) {
	tmpDir := t.TempDir()
	touch(t, tmpDir, "ReportHistory-1.html", "ReportHistory-2.xlsx", "ReportHistory-3.csv", "Other.html")

	found, err := NewDiscovery(tmpDir).FindFilesByPattern("ReportHistory-*")
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "ReportHistory-1.html", found[0].Name)
	assert.Equal(t, "ReportHistory-2.xlsx", found[1].Name)

	_, err = NewDiscovery(tmpDir).FindFilesByPattern("[")
	assert.ErrorContains(t, err, "invalid pattern")
}

func TestExpand(t *testing.T) {
	tmpDir := t.TempDir()
	touch(t, filepath.Join(tmpDir, "exports"), "b.html", "a.xlsx", "notes.txt")
	touch(t, tmpDir, "single.html", "glob-1.htm", "glob-2.htm")

	discovery := NewDiscovery(tmpDir)
	paths, err := discovery.Expand([]string{"single.html", "exports", "glob-*.htm", "missing.html"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "single.html"),
		filepath.Join(tmpDir, "exports", "a.xlsx"),
		filepath.Join(tmpDir, "exports", "b.html"),
		filepath.Join(tmpDir, "glob-1.htm"),
		filepath.Join(tmpDir, "glob-2.htm"),
		filepath.Join(tmpDir, "missing.html"),
	}, paths)
}

func TestExpand_NoMatches(t *testing.T) {
	tmpDir := t.TempDir()
	touch(t, filepath.Join(tmpDir, "empty"), "notes.txt")

	discovery := NewDiscovery(tmpDir)

	_, err := discovery.Expand([]string{"empty"})
	assert.ErrorIs(t, err, ErrNoReports)

	_, err = discovery.Expand([]string{"*.xlsx"})
	assert.ErrorIs(t, err, ErrNoReports)
}
