package table

import (
	"fmt"
	"sort"
	"strings"

	"loctab/internal/locale"
	"loctab/internal/nested"
	"loctab/internal/report"
)

// MergeDocuments builds a table from per-locale nested documents. The first
// locale in the list is the base: it establishes the full (group, key) row
// set and the row order. Later locales left-join their values onto those
// rows; entries only a later locale has are dropped with a warning. Rows
// the base ordering does not cover sort last, in appearance order.
func MergeDocuments(locales []string, docs map[string]*nested.Document, rep report.Reporter) (*Table, error) {
	if rep == nil {
		rep = report.Discard
	}
	if len(locales) == 0 {
		return nil, fmt.Errorf("merge: no locales given")
	}

	base := locales[0]
	baseDoc, ok := docs[base]
	if !ok || baseDoc == nil {
		return nil, fmt.Errorf("merge: base locale %q has no document", base)
	}
	warnGroupValues(base, baseDoc, rep)
	baseEntries := baseDoc.Flatten()
	if len(baseEntries) == 0 {
		return nil, fmt.Errorf("merge: base locale %q document is empty", base)
	}

	t := New(locales...)
	ranks := make(map[rowKey]nested.Rank, len(baseEntries))
	for _, e := range baseEntries {
		t.Append(e.Group, e.Key, map[string]string{base: e.Value})
		ranks[rowKey{e.Group, e.Key}] = e.Rank
	}

	for _, loc := range locales[1:] {
		doc, ok := docs[loc]
		if !ok || doc == nil {
			rep.Warn("no document for locale, column left empty", "locale", loc)
			continue
		}
		warnGroupValues(loc, doc, rep)
		entries := doc.Flatten()
		if len(entries) == 0 {
			rep.Warn("locale document is empty", "locale", loc)
			continue
		}
		dropped := 0
		for _, e := range entries {
			row, ok := t.Find(e.Group, e.Key)
			if !ok {
				dropped++
				continue
			}
			row.Values[loc] = e.Value
		}
		if dropped > 0 {
			rep.Warn("dropped entries missing from base locale",
				"locale", loc, "base", base, "dropped", dropped)
		}
	}

	t.sortByRank(ranks)
	return t, nil
}

// warnGroupValues reports direct values sitting on group nodes: they have no
// key path, so flattening into table rows drops them.
func warnGroupValues(loc string, doc *nested.Document, rep report.Reporter) {
	for _, name := range doc.Groups() {
		if g, ok := doc.Lookup(name); ok && g.HasValue() {
			rep.Warn("group-level value cannot become a table row, dropped",
				"locale", loc, "group", name)
		}
	}
}

// sortByRank stably reorders rows by base-locale rank; rows without a rank
// keep their relative order at the end.
func (t *Table) sortByRank(ranks map[rowKey]nested.Rank) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		ri, iOK := ranks[rowKey{t.Rows[i].Group, t.Rows[i].Key}]
		rj, jOK := ranks[rowKey{t.Rows[j].Group, t.Rows[j].Key}]
		switch {
		case iOK && jOK:
			return ri.Compare(rj) < 0
		case iOK:
			return true
		default:
			return false
		}
	})
	for i, row := range t.Rows {
		t.index[rowKey{row.Group, row.Key}] = i
	}
}

// Project builds the nested document for one locale column. Group and key
// segments are sanitized and values escaped on the way in; absent cells are
// skipped. A key that is both a terminal value and a prefix of deeper keys
// ends up as a value-plus-children node.
func (t *Table) Project(loc string) *nested.Document {
	doc := nested.NewDocument()
	for _, row := range t.Rows {
		value, ok := row.Values[loc]
		if !ok {
			continue
		}
		group := locale.SanitizeSegment(row.Group)
		segs := strings.Split(locale.SanitizeSegment(row.Key), ".")
		for i := range segs {
			segs[i] = locale.SanitizeSegment(segs[i])
		}
		doc.Set(group, strings.Join(segs, "."), locale.Escape(value))
	}
	return doc
}
