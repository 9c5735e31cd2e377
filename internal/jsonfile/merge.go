package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"loctab/internal/report"
	"loctab/internal/table"
)

// Merge combines per-locale JSON dictionaries from dir into one key-only
// table. The baseline locale's key order drives the row order; keys the
// baseline lacks are appended in discovery order. Missing files are a
// warning, not an error.
func Merge(dir string, locales []string, baseline string, rep report.Reporter) (*table.Table, error) {
	if rep == nil {
		rep = report.Discard
	}
	if len(locales) == 0 {
		return nil, fmt.Errorf("json merge: no locales given")
	}

	// Baseline first; the rest keep their given order.
	ordered := []string{baseline}
	for _, loc := range locales {
		if loc != baseline {
			ordered = append(ordered, loc)
		}
	}

	t := table.New(ordered...)
	t.KeyOnly = true

	for _, loc := range ordered {
		path := filepath.Join(dir, loc+".json")
		f, err := Read(path)
		if err != nil {
			if errors.Is(err, ErrInputNotFound) {
				rep.Warn("locale JSON file not found, skipping", "locale", loc, "path", path)
				continue
			}
			return nil, err
		}
		for _, key := range f.Keys() {
			value, _ := f.Get(key)
			t.Upsert("", key, map[string]string{loc: value})
		}
	}

	if t.Len() == 0 {
		rep.Warn("json merge produced an empty table", "dir", dir)
	}
	return t, nil
}

// Sync applies a table's locale columns onto the per-locale JSON files in
// dir, creating the directory and missing files as needed. It returns the
// number of entries whose value actually changed.
func Sync(t *table.Table, dir string, rep report.Reporter) (int, error) {
	if rep == nil {
		rep = report.Discard
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	changed := 0
	for _, loc := range t.Locales {
		path := filepath.Join(dir, loc+".json")
		f, err := Read(path)
		if err != nil {
			if !errors.Is(err, ErrInputNotFound) {
				rep.Warn("unreadable locale JSON file, starting fresh", "path", path, "error", err)
			}
			f = NewFile()
		}

		for _, row := range t.Rows {
			value, ok := row.Values[loc]
			if !ok {
				continue
			}
			prev, had := f.Get(row.Key)
			f.Set(row.Key, value)
			if !had || prev != value {
				changed++
			}
		}

		if err := Write(path, f); err != nil {
			return changed, err
		}
		rep.Info("wrote locale JSON file", "path", path, "entries", f.Len())
	}
	return changed, nil
}
