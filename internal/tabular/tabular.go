// Package tabular reads and writes the translation table as a spreadsheet:
// XLSX via excelize or plain CSV. The reserved columns are "class" and
// "key"; every other header names a locale column.
package tabular

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"loctab/internal/report"
	"loctab/internal/table"
)

var (
	// ErrInputNotFound wraps a missing source file.
	ErrInputNotFound = errors.New("input file not found")
	// ErrMissingColumns reports a table without the required key column.
	ErrMissingColumns = errors.New("missing required columns")
)

// Reserved header names.
const (
	ColumnClass = "class"
	ColumnKey   = "key"
)

// headerSearchLimit bounds the scan for the header row, tolerating leading
// title or note rows in hand-edited spreadsheets.
const headerSearchLimit = 20

// Read loads a table file, dispatching on the extension (.xlsx or .csv).
func Read(path string, rep report.Reporter) (*table.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readCSV(path, rep)
	case ".xlsx":
		return readXLSX(path, rep)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// Write saves a table file, dispatching on the extension. The file is
// written to a temporary sibling and renamed into place so a crash cannot
// leave a truncated table behind.
func Write(path string, t *table.Table) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return writeCSV(path, t)
	case ".xlsx":
		return writeXLSX(path, t)
	default:
		return fmt.Errorf("unsupported file type: %s", ext)
	}
}

// buildTable converts raw sheet rows into a Table. The header is the first
// row (within the search limit) containing the "key" column. Without a
// "class" column the table is key-only, which the flat JSON workflow uses.
func buildTable(records [][]string, rep report.Reporter) (*table.Table, error) {
	if rep == nil {
		rep = report.Discard
	}

	headerIdx, classCol, keyCol := findHeader(records)
	if headerIdx == -1 {
		return nil, fmt.Errorf("%w: no header row with a %q column", ErrMissingColumns, ColumnKey)
	}
	header := records[headerIdx]

	t := table.New()
	t.KeyOnly = classCol == -1

	localeCols := make(map[int]string)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == classCol || i == keyCol || name == "" {
			continue
		}
		localeCols[i] = name
		t.AddLocale(name)
	}
	if len(localeCols) == 0 {
		rep.Warn("table has no locale columns", "header", strings.Join(header, ","))
	}

	for _, record := range records[headerIdx+1:] {
		group := ""
		if classCol != -1 && classCol < len(record) {
			group = strings.TrimSpace(record[classCol])
		}
		key := ""
		if keyCol < len(record) {
			key = strings.TrimSpace(record[keyCol])
		}
		if group == "" && key == "" {
			continue
		}

		values := make(map[string]string)
		for i, loc := range localeCols {
			if i < len(record) && record[i] != "" {
				values[loc] = record[i]
			}
		}
		if !t.Append(group, key, values) {
			rep.Warn("duplicate table row ignored", "class", group, "key", key)
		}
	}
	return t, nil
}

// findHeader locates the header row and the class/key column indices.
// classCol is -1 for key-only layouts.
func findHeader(records [][]string) (headerIdx, classCol, keyCol int) {
	limit := len(records)
	if limit > headerSearchLimit {
		limit = headerSearchLimit
	}
	for i := 0; i < limit; i++ {
		classCol, keyCol = -1, -1
		for j, cell := range records[i] {
			switch strings.TrimSpace(cell) {
			case ColumnClass:
				classCol = j
			case ColumnKey:
				keyCol = j
			}
		}
		if keyCol != -1 {
			return i, classCol, keyCol
		}
	}
	return -1, -1, -1
}

// headerFor returns the column headers to write for a table.
func headerFor(t *table.Table) []string {
	header := make([]string, 0, len(t.Locales)+2)
	if !t.KeyOnly {
		header = append(header, ColumnClass)
	}
	header = append(header, ColumnKey)
	return append(header, t.Locales...)
}

// recordFor returns one output row in header order. Absent cells are empty.
func recordFor(t *table.Table, row *table.Row) []string {
	record := make([]string, 0, len(t.Locales)+2)
	if !t.KeyOnly {
		record = append(record, row.Group)
	}
	record = append(record, row.Key)
	for _, loc := range t.Locales {
		record = append(record, row.Values[loc])
	}
	return record
}

func notFound(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	return err
}
