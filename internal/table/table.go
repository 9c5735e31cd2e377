// Package table holds the in-memory translation table: one row per
// (group, key) pair, one column per locale, in a stable row order.
package table

import "sort"

// Row is a single translation entry across all locales. A locale missing
// from Values is an absent cell, not an empty translation.
type Row struct {
	Group  string
	Key    string
	Values map[string]string
}

// Value returns the cell for a locale and whether it is present.
func (r *Row) Value(locale string) (string, bool) {
	v, ok := r.Values[locale]
	return v, ok
}

// Table is an ordered set of rows with an ordered locale column list.
// (Group, Key) pairs are unique.
type Table struct {
	Locales []string
	Rows    []*Row

	// KeyOnly marks tables without a class column (the flat JSON
	// workflow); every row's Group is then empty.
	KeyOnly bool

	index map[rowKey]int
}

type rowKey struct {
	group string
	key   string
}

// New returns an empty table with the given locale columns.
func New(locales ...string) *Table {
	return &Table{
		Locales: append([]string(nil), locales...),
		index:   make(map[rowKey]int),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Find returns the row for (group, key), if present.
func (t *Table) Find(group, key string) (*Row, bool) {
	i, ok := t.index[rowKey{group, key}]
	if !ok {
		return nil, false
	}
	return t.Rows[i], true
}

// HasLocale reports whether the table has a column for the locale.
func (t *Table) HasLocale(locale string) bool {
	for _, l := range t.Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// AddLocale appends a locale column if it is not already present, returning
// true when a new column was created. Existing rows keep the cell absent.
func (t *Table) AddLocale(locale string) bool {
	if t.HasLocale(locale) {
		return false
	}
	t.Locales = append(t.Locales, locale)
	return true
}

// Append adds a new row at the end of the table. It returns false without
// modifying the table if (group, key) already exists.
func (t *Table) Append(group, key string, values map[string]string) bool {
	if _, ok := t.index[rowKey{group, key}]; ok {
		return false
	}
	row := &Row{Group: group, Key: key, Values: make(map[string]string, len(values))}
	for _, locale := range sortedLocales(values) {
		t.AddLocale(locale)
		row.Values[locale] = values[locale]
	}
	t.index[rowKey{group, key}] = len(t.Rows)
	t.Rows = append(t.Rows, row)
	return true
}

// Upsert sets the given locale values on the (group, key) row, appending the
// row at the end if it does not exist. New locale columns are added as
// needed. It returns true when a new row was created.
func (t *Table) Upsert(group, key string, values map[string]string) bool {
	row, ok := t.Find(group, key)
	if !ok {
		return t.Append(group, key, values)
	}
	for _, locale := range sortedLocales(values) {
		t.AddLocale(locale)
		row.Values[locale] = values[locale]
	}
	return false
}

// sortedLocales keeps column creation deterministic when values arrive as a
// map.
func sortedLocales(values map[string]string) []string {
	out := make([]string, 0, len(values))
	for locale := range values {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// SetCell sets one cell, creating the locale column and, if needed, the
// row. It reports whether the column and the row already existed.
func (t *Table) SetCell(group, key, locale, value string) (localeExisted, rowExisted bool) {
	localeExisted = !t.AddLocale(locale)
	row, rowExisted := t.Find(group, key)
	if !rowExisted {
		t.Append(group, key, map[string]string{locale: value})
		return localeExisted, false
	}
	row.Values[locale] = value
	return localeExisted, true
}
