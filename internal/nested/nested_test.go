package nested

import (
	"reflect"
	"testing"
)

func TestDocumentSetNesting(t *testing.T) {
	d := NewDocument()
	d.Set("text", "a.b", "X")

	g, ok := d.Lookup("text")
	if !ok {
		t.Fatal("group text not created")
	}
	a, ok := g.Child("a")
	if !ok {
		t.Fatal("intermediate node a not created")
	}
	if a.HasValue() {
		t.Error("intermediate node a should not hold a value")
	}
	b, ok := a.Child("b")
	if !ok {
		t.Fatal("leaf b not created")
	}
	if !b.HasValue() || b.Value() != "X" {
		t.Errorf("leaf b = (%q, %v); want (X, true)", b.Value(), b.HasValue())
	}
}

func TestDocumentSetPrefixConflict(t *testing.T) {
	// A direct value at "a" followed by a deeper path through "a" must keep
	// both the value and the children.
	d := NewDocument()
	d.Set("g", "a", "X")
	d.Set("g", "a.b", "Y")

	g, _ := d.Lookup("g")
	a, ok := g.Child("a")
	if !ok {
		t.Fatal("node a missing")
	}
	if !a.HasValue() || a.Value() != "X" {
		t.Errorf("node a value = (%q, %v); want (X, true)", a.Value(), a.HasValue())
	}
	b, ok := a.Child("b")
	if !ok {
		t.Fatal("child b missing")
	}
	if b.Value() != "Y" {
		t.Errorf("child b = %q; want Y", b.Value())
	}

	// Same outcome in the other assignment order.
	d2 := NewDocument()
	d2.Set("g", "a.b", "Y")
	d2.Set("g", "a", "X")
	g2, _ := d2.Lookup("g")
	a2, _ := g2.Child("a")
	if !a2.HasValue() || a2.Value() != "X" {
		t.Error("value assigned after children was lost")
	}
	if b2, ok := a2.Child("b"); !ok || b2.Value() != "Y" {
		t.Error("children assigned before value were lost")
	}
}

func TestFlattenOrder(t *testing.T) {
	d := NewDocument()
	d.Set("text", "title", "T")
	d.Set("text", "menu.open", "O")
	d.Set("text", "menu.close", "C")
	d.Set("tip", "hint", "H")

	entries := d.Flatten()

	want := []struct {
		group string
		key   string
		value string
	}{
		{"text", "title", "T"},
		{"text", "menu.open", "O"},
		{"text", "menu.close", "C"},
		{"tip", "hint", "H"},
	}
	if len(entries) != len(want) {
		t.Fatalf("Flatten() returned %d entries; want %d", len(entries), len(want))
	}
	for i, w := range want {
		e := entries[i]
		if e.Group != w.group || e.Key != w.key || e.Value != w.value {
			t.Errorf("entry %d = (%s, %s, %s); want (%s, %s, %s)",
				i, e.Group, e.Key, e.Value, w.group, w.key, w.value)
		}
	}

	// Ranks are strictly increasing in declaration order.
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Rank.Compare(entries[i].Rank) >= 0 {
			t.Errorf("rank %v not before %v", entries[i-1].Rank, entries[i].Rank)
		}
	}
}

func TestFlattenBothNode(t *testing.T) {
	d := NewDocument()
	d.Set("g", "a", "X")
	d.Set("g", "a.b", "Y")

	entries := d.Flatten()
	if len(entries) != 2 {
		t.Fatalf("Flatten() returned %d entries; want 2", len(entries))
	}
	if entries[0].Key != "a" || entries[0].Value != "X" {
		t.Errorf("entry 0 = (%s, %s); want (a, X)", entries[0].Key, entries[0].Value)
	}
	if entries[1].Key != "a.b" || entries[1].Value != "Y" {
		t.Errorf("entry 1 = (%s, %s); want (a.b, Y)", entries[1].Key, entries[1].Value)
	}
	// The node's own value sorts before its children.
	if entries[0].Rank.Compare(entries[1].Rank) != -1 {
		t.Errorf("rank of a (%v) should precede rank of a.b (%v)", entries[0].Rank, entries[1].Rank)
	}
}

func TestFromEntriesInverse(t *testing.T) {
	d := NewDocument()
	d.Set("text", "title", "T")
	d.Set("text", "menu.open", "O")
	d.Set("tip", "a", "X")
	d.Set("tip", "a.b", "Y")

	rebuilt := FromEntries(d.Flatten())
	if !d.Equal(rebuilt) {
		t.Error("FromEntries(Flatten()) does not reproduce the document")
	}
}

func TestRankCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rank
		expected int
	}{
		{"Equal", Rank{0, 1}, Rank{0, 1}, 0},
		{"Less at tail", Rank{0, 1}, Rank{0, 2}, -1},
		{"Greater at head", Rank{1}, Rank{0, 9}, 1},
		{"Prefix sorts first", Rank{0, 1}, Rank{0, 1, 0}, -1},
		{"Longer sorts after", Rank{0, 1, 0}, Rank{0, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.expected {
				t.Errorf("Compare(%v, %v) = %d; want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestDocumentGroupsOrder(t *testing.T) {
	d := NewDocument()
	d.Set("b", "k", "1")
	d.Set("a", "k", "2")
	d.Set("b", "k2", "3")

	if got := d.Groups(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("Groups() = %v; want [b a]", got)
	}
}
