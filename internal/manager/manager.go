// Package manager wires the translation table, the nested-document codec
// and the file formats into the tool's actions: update, add, generate,
// scan, and the JSON merge/sync workflow.
package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"loctab/internal/jsonfile"
	"loctab/internal/locale"
	"loctab/internal/nested"
	"loctab/internal/report"
	"loctab/internal/table"
	"loctab/internal/tabular"
)

// Manager operates on one translation table and one nested-documents
// directory.
type Manager struct {
	tablePath  string
	localesDir string
	tab        *table.Table
	rep        report.Reporter
}

// New returns a Manager; Load must be called before any table action.
func New(tablePath, localesDir string, rep report.Reporter) *Manager {
	if rep == nil {
		rep = report.Discard
	}
	return &Manager{tablePath: tablePath, localesDir: localesDir, rep: rep}
}

// Table returns the loaded table.
func (m *Manager) Table() *table.Table { return m.tab }

// Load reads the translation table. The nested-document workflow needs the
// class column, so a key-only table is rejected here.
func (m *Manager) Load() error {
	t, err := tabular.Read(m.tablePath, m.rep)
	if err != nil {
		return err
	}
	if t.KeyOnly {
		return fmt.Errorf("%w: %s has no %q column", tabular.ErrMissingColumns, m.tablePath, tabular.ColumnClass)
	}
	m.tab = t
	m.rep.Info("loaded translation table",
		"path", m.tablePath, "rows", t.Len(), "locales", strings.Join(t.Locales, ","))
	return nil
}

// SaveTable writes the table back to its source path.
func (m *Manager) SaveTable() error {
	if err := tabular.Write(m.tablePath, m.tab); err != nil {
		return err
	}
	m.rep.Info("saved translation table", "path", m.tablePath)
	return nil
}

// Update sets a single cell. An unknown locale column is added with a
// warning; an unmatched (class, key) row is appended with a warning.
func (m *Manager) Update(class, key, loc, value string) {
	localeExisted, rowExisted := m.tab.SetCell(class, key, loc, value)
	if !localeExisted {
		m.rep.Warn("locale column did not exist, added", "locale", loc)
	}
	if !rowExisted {
		m.rep.Warn("no matching row, added new entry", "class", class, "key", key)
		return
	}
	m.rep.Info("updated cell", "class", class, "key", key, "locale", loc)
}

// Add upserts a whole entry. An existing (class, key) row is updated in
// place with a warning.
func (m *Manager) Add(class, key string, values map[string]string) {
	if _, exists := m.tab.Find(class, key); exists {
		m.rep.Warn("entry already exists, updating values", "class", class, "key", key)
	}
	m.tab.Upsert(class, key, values)
	m.rep.Info("added entry", "class", class, "key", key)
}

// Generate writes one nested document per locale column into the locales
// directory, named after the normalized locale code. A table without
// locale columns is a warning and a no-op. Progress, when non-nil,
// receives completion fractions and is never blocked on.
func (m *Manager) Generate(progress chan<- float64) error {
	if len(m.tab.Locales) == 0 {
		m.rep.Warn("no locale columns, nothing to generate")
		return nil
	}
	if err := os.MkdirAll(m.localesDir, 0o755); err != nil {
		return err
	}

	for i, loc := range m.tab.Locales {
		if err := locale.CheckTag(loc); err != nil {
			m.rep.Warn("locale column has an unusual code", "locale", loc, "detail", err.Error())
		}

		doc := m.tab.Project(loc)
		path := filepath.Join(m.localesDir, locale.Normalize(loc)+".js")
		if err := writeFileAtomic(path, []byte(doc.Serialize())); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		m.rep.Info("generated locale file", "path", path, "groups", doc.Len())

		if progress != nil {
			select {
			case progress <- float64(i+1) / float64(len(m.tab.Locales)):
			default:
			}
		}
	}
	return nil
}

// Scan diffs the table against the existing nested documents, applies every
// pending update to the table, saves it, and regenerates all documents.
// It returns the number of applied updates; zero means nothing was touched.
func (m *Manager) Scan() (int, error) {
	updates := table.Diff(m.tab, func(loc string) (string, bool) {
		data, err := os.ReadFile(filepath.Join(m.localesDir, loc+".js"))
		if err != nil {
			return "", false
		}
		return string(data), true
	})
	if len(updates) == 0 {
		m.rep.Info("no pending translation updates")
		return 0, nil
	}

	m.rep.Info("found pending translation updates", "count", len(updates))
	for _, u := range updates {
		m.Update(u.Group, u.Key, u.Locale, u.Value)
		m.rep.Info("applied pending update",
			"action", u.Action, "class", u.Group, "key", u.Key, "locale", u.Locale)
	}

	if err := m.SaveTable(); err != nil {
		return len(updates), err
	}
	if err := m.Generate(nil); err != nil {
		return len(updates), err
	}
	return len(updates), nil
}

// MergeNested rebuilds the table from the nested documents of the given
// locales, the first being the base, and saves it to the table path. Each
// locale's document is read from "<normalized-locale>.js" in the locales
// directory; a missing or malformed document is fatal.
func (m *Manager) MergeNested(locales []string) error {
	docs := make(map[string]*nested.Document, len(locales))
	for _, loc := range locales {
		path := filepath.Join(m.localesDir, locale.Normalize(loc)+".js")
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", tabular.ErrInputNotFound, path)
			}
			return err
		}
		doc, err := nested.Parse(string(data))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		m.rep.Info("parsed locale file", "path", path, "groups", doc.Len())
		docs[loc] = doc
	}

	t, err := table.MergeDocuments(locales, docs, m.rep)
	if err != nil {
		return err
	}
	m.tab = t
	m.rep.Info("merged locale documents", "rows", t.Len(), "locales", len(locales))
	return m.SaveTable()
}

// MergeJSON combines flat per-locale JSON dictionaries into a key-only
// table written to tablePath.
func MergeJSON(jsonDir string, locales []string, baseline, tablePath string, rep report.Reporter) (*table.Table, error) {
	t, err := jsonfile.Merge(jsonDir, locales, baseline, rep)
	if err != nil {
		return nil, err
	}
	if err := tabular.Write(tablePath, t); err != nil {
		return nil, err
	}
	if rep != nil {
		rep.Info("merged JSON dictionaries into table", "path", tablePath, "rows", t.Len())
	}
	return t, nil
}

// SyncJSON applies a table's columns onto the per-locale JSON dictionaries,
// returning the number of changed entries.
func SyncJSON(tablePath, jsonDir string, rep report.Reporter) (int, error) {
	t, err := tabular.Read(tablePath, rep)
	if err != nil {
		return 0, err
	}
	return jsonfile.Sync(t, jsonDir, rep)
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
