package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tradelens/internal/dataprocessing"
)

// ErrNoReports is returned when a directory or pattern matches no report
var ErrNoReports = errors.New("no report documents found")

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	Format  dataprocessing.Format
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindReports lists the supported report documents in dir, sorted by name.
// Subdirectories are not descended into.
func (d *Discovery) FindReports(dir string) ([]FileInfo, error) {
	fullPath := d.resolvePath(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}

		format, err := dataprocessing.DetectFormat(entry.Name())
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Format:  format,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// FindFilesByPattern finds files matching a glob pattern
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(d.resolvePath(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		format, err := dataprocessing.DetectFormat(match)
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Format:  format,
		})
	}
	return files, nil
}

// Expand resolves a list of command-line paths to report documents. Order
// is preserved; directories and patterns contribute their matches in name
// order. Plain files are returned as given so that missing or unsupported
// files are reported by the loader.
func (d *Discovery) Expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		switch {
		case isPattern(p):
			files, err := d.FindFilesByPattern(p)
			if err != nil {
				return nil, err
			}
			if len(files) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoReports, p)
			}
			out = appendPaths(out, files)

		case d.isDir(p):
			files, err := d.FindReports(p)
			if err != nil {
				return nil, err
			}
			if len(files) == 0 {
				return nil, fmt.Errorf("%w in %s", ErrNoReports, p)
			}
			out = appendPaths(out, files)

		default:
			out = append(out, d.resolvePath(p))
		}
	}
	return out, nil
}

func (d *Discovery) isDir(path string) bool {
	info, err := os.Stat(d.resolvePath(path))
	return err == nil && info.IsDir()
}

func (d *Discovery) resolvePath(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}

func isPattern(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

func appendPaths(out []string, files []FileInfo) []string {
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}
