package table

import (
	"fmt"
	"regexp"
	"strings"

	"loctab/internal/locale"
)

// Actions recorded on pending updates.
const (
	ActionNew    = "new"    // document for the locale does not exist yet
	ActionUpdate = "update" // document exists but the cell's pattern was not found
)

// PendingUpdate is one table cell that a locale's nested document does not
// appear to contain yet.
type PendingUpdate struct {
	Group  string
	Key    string
	Locale string
	Value  string
	Action string
}

// Diff scans every present cell against the serialized nested document for
// its locale. readDocument receives a normalized locale code and returns
// the document text and whether the document exists.
//
// Matching is a textual heuristic: the cell counts as covered when the
// document contains "group: { key: '...'" (or the two-level dotted variant)
// as a loose whitespace-tolerant sequence. Formatting that differs without
// a semantic difference produces spurious updates; results are a hint, not
// a guarantee.
func Diff(t *Table, readDocument func(loc string) (string, bool)) []PendingUpdate {
	var updates []PendingUpdate
	for _, row := range t.Rows {
		for _, loc := range t.Locales {
			value, ok := row.Values[loc]
			if !ok {
				continue
			}
			content, exists := readDocument(locale.Normalize(loc))
			if !exists {
				updates = append(updates, PendingUpdate{
					Group: row.Group, Key: row.Key, Locale: loc, Value: value, Action: ActionNew,
				})
				continue
			}
			if !cellPattern(row.Group, row.Key).MatchString(content) {
				updates = append(updates, PendingUpdate{
					Group: row.Group, Key: row.Key, Locale: loc, Value: value, Action: ActionUpdate,
				})
			}
		}
	}
	return updates
}

// cellPattern builds the lookup pattern for a (group, key) cell. Dotted
// keys only match on their first two segments, mirroring the two-level
// shape the serializer produces.
func cellPattern(group, key string) *regexp.Regexp {
	var pat string
	if strings.Contains(key, ".") {
		parts := strings.SplitN(key, ".", 3)
		pat = fmt.Sprintf(`%s:\s*\{\s*%s:\s*\{\s*%s:\s*'[^']*'`,
			regexp.QuoteMeta(group), regexp.QuoteMeta(parts[0]), regexp.QuoteMeta(parts[1]))
	} else {
		pat = fmt.Sprintf(`%s:\s*\{\s*%s:\s*'[^']*'`,
			regexp.QuoteMeta(group), regexp.QuoteMeta(key))
	}
	return regexp.MustCompile(pat)
}
