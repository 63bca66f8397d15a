// Package source loads tabular data files into a domain.Table.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cellgrip/internal/domain"
)

// Supported formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ErrUnsupportedFormat indicates a file extension no loader handles
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoHeader indicates a file without a header row or field names
var ErrNoHeader = errors.New("no header row")

// LoadError represents a failure to load a data file.
type LoadError struct {
	Path   string
	Format string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads path and returns its table. The format is chosen by extension.
func Load(path string) (*domain.Table, error) {
	format := FormatOf(path)

	var load func(string) ([]string, []domain.Row, error)
	switch format {
	case FormatCSV:
		load = loadCSV
	case FormatJSON:
		load = loadJSON
	case FormatXLSX:
		load = loadXLSX
	default:
		return nil, &LoadError{Path: path, Format: format, Err: ErrUnsupportedFormat}
	}

	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Format: format, Err: err}
	}

	fields, rows, err := load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Format: format, Err: err}
	}
	return &domain.Table{
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Columns: columnsFor(fields),
		Rows:    rows,
	}, nil
}

// FormatOf returns the format name for a path's extension
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// TableSource exposes a table to the selection engine
type TableSource struct {
	Table *domain.Table
}

func (s TableSource) Columns() []domain.Column { return s.Table.Columns }
func (s TableSource) Rows() []domain.Row       { return s.Table.Rows }

func columnsFor(fields []string) []domain.Column {
	columns := make([]domain.Column, len(fields))
	for i, f := range fields {
		columns[i] = domain.Column{Field: f}
	}
	return columns
}

// headerFields turns a header row into unique field names. Blank headers
// get their 1-based position; repeats get a numeric suffix.
func headerFields(header []string) []string {
	seen := make(map[string]int, len(header))
	fields := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = strconv.Itoa(i + 1)
		}
		if n := seen[name]; n > 0 {
			base := name
			for seen[name] > 0 {
				n++
				name = fmt.Sprintf("%s_%d", base, n)
			}
			seen[base] = n
		}
		seen[name]++
		fields[i] = name
	}
	return fields
}

// recordRow maps a string record onto fields. Missing trailing values
// become absent keys.
func recordRow(fields, record []string) domain.Row {
	row := make(domain.Row, len(fields))
	for i, f := range fields {
		if i < len(record) {
			row[f] = parseValue(record[i])
		}
	}
	return row
}

// parseValue returns int64 for integers, float64 for decimals, or the string.
// A number is only used when it prints back as s, so leading zeros, signs,
// exponents and out-of-range digits survive a copy.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == s {
			return i
		}
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return f
	}
	return s
}
