// Package nested models per-locale translation documents as ordered trees
// and converts them to and from the restricted JavaScript export grammar.
//
// A Node is a tagged variant: it may hold a direct value (leaf), ordered
// children (branch), or both at once. The "both" shape covers key paths that
// are simultaneously a terminal value and a prefix of deeper paths; the
// reserved sentinel key only ever appears in serialized text, never in the
// in-memory model.
package nested

import "strings"

// Node is one position in a nested document: a value, a set of ordered
// children, or both.
type Node struct {
	value    string
	hasValue bool
	children map[string]*Node
	order    []string
}

// HasValue reports whether the node holds a direct value.
func (n *Node) HasValue() bool { return n.hasValue }

// Value returns the node's direct value, or "" if it has none.
func (n *Node) Value() string { return n.value }

// SetValue assigns the node's direct value. Existing children are untouched.
func (n *Node) SetValue(v string) {
	n.value = v
	n.hasValue = true
}

// Keys returns the node's child names in insertion order.
func (n *Node) Keys() []string { return n.order }

// Child returns the named child, if present.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// child returns the named child, creating it on first use.
func (n *Node) child(name string) *Node {
	if c, ok := n.children[name]; ok {
		return c
	}
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	c := &Node{}
	n.children[name] = c
	n.order = append(n.order, name)
	return c
}

// set walks the dotted key path below n, creating intermediate nodes as
// needed, and assigns the value at the final segment. An intermediate that
// currently holds a direct value simply keeps it; the node becomes a
// value-plus-children variant and nothing is lost.
func (n *Node) set(key, value string) {
	segs := strings.Split(key, ".")
	cur := n
	for _, seg := range segs {
		cur = cur.child(seg)
	}
	cur.SetValue(value)
}

// equal reports deep equality including child order.
func (n *Node) equal(o *Node) bool {
	if n.hasValue != o.hasValue || n.value != o.value {
		return false
	}
	if len(n.order) != len(o.order) {
		return false
	}
	for i, name := range n.order {
		if o.order[i] != name {
			return false
		}
		if !n.children[name].equal(o.children[name]) {
			return false
		}
	}
	return true
}

// Document is an ordered mapping from group name to nested translations for
// a single locale.
type Document struct {
	groups map[string]*Node
	order  []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{groups: make(map[string]*Node)}
}

// Groups returns the group names in insertion order.
func (d *Document) Groups() []string { return d.order }

// Len returns the number of top-level groups.
func (d *Document) Len() int { return len(d.order) }

// Group returns the named group node, creating it on first use.
func (d *Document) Group(name string) *Node {
	if g, ok := d.groups[name]; ok {
		return g
	}
	g := &Node{}
	d.groups[name] = g
	d.order = append(d.order, name)
	return g
}

// Lookup returns the named group node, if present.
func (d *Document) Lookup(name string) (*Node, bool) {
	g, ok := d.groups[name]
	return g, ok
}

// Set assigns a value at the dotted key path inside the named group,
// creating the group and any intermediate nodes as needed. If a shorter
// prefix of the path already holds a direct value, that value stays in the
// node's value slot.
func (d *Document) Set(group, key, value string) {
	d.Group(group).set(key, value)
}

// Equal reports deep equality of two documents, including group and child
// ordering.
func (d *Document) Equal(o *Document) bool {
	if len(d.order) != len(o.order) {
		return false
	}
	for i, name := range d.order {
		if o.order[i] != name {
			return false
		}
		if !d.groups[name].equal(o.groups[name]) {
			return false
		}
	}
	return true
}
