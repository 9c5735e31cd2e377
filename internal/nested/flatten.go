package nested

// Rank locates an entry in its document's declaration order: the group index
// followed by the child index at every level of the path. Lexicographic
// comparison of ranks is a total order over a document's entries, with a
// node's own value sorting before its children.
type Rank []int

// Compare returns -1, 0, or 1 ordering r against o lexicographically, a
// shorter rank sorting before any rank it prefixes.
func (r Rank) Compare(o Rank) int {
	for i := 0; i < len(r) && i < len(o); i++ {
		switch {
		case r[i] < o[i]:
			return -1
		case r[i] > o[i]:
			return 1
		}
	}
	switch {
	case len(r) < len(o):
		return -1
	case len(r) > len(o):
		return 1
	}
	return 0
}

// Entry is one flattened translation: a group, a dotted key path, the value
// at that path, and the entry's position in the source document.
type Entry struct {
	Group string
	Key   string
	Value string
	Rank  Rank
}

// Flatten converts the document into a flat entry list in declaration order.
// A node holding both a value and children contributes its value at its own
// path before any of its children. A direct value on a group node itself has
// no key path to flatten to and is omitted; callers that care should check
// the group nodes before flattening.
func (d *Document) Flatten() []Entry {
	var out []Entry
	for gi, name := range d.order {
		out = flattenNode(out, name, "", d.groups[name], Rank{gi})
	}
	return out
}

func flattenNode(out []Entry, group, path string, n *Node, rank Rank) []Entry {
	if n.hasValue && path != "" {
		out = append(out, Entry{Group: group, Key: path, Value: n.value, Rank: rank})
	}
	for ci, name := range n.order {
		childPath := name
		if path != "" {
			childPath = path + "." + name
		}
		childRank := append(append(Rank{}, rank...), ci)
		out = flattenNode(out, group, childPath, n.children[name], childRank)
	}
	return out
}

// FromEntries rebuilds a document from flattened entries, preserving the
// given order. The inverse of Flatten for entries with unique (group, key)
// pairs.
func FromEntries(entries []Entry) *Document {
	d := NewDocument()
	for _, e := range entries {
		d.Set(e.Group, e.Key, e.Value)
	}
	return d
}
