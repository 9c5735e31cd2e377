package nested

import (
	"fmt"
	"strings"
)

// Serialize renders the document in the restricted export grammar with
// two-space indentation per level. Values are written as-is between single
// quotes; they are expected to be in escaped form already.
//
// A node holding both a value and children is written as a direct
// assignment followed by a synthetic "<key>_nested" object holding the
// children. A group node with its own direct value writes it under the
// _value sentinel key. Parse folds both conventions back, so serialization
// round-trips.
func (d *Document) Serialize() string {
	var b strings.Builder
	b.WriteString("export default {\n")
	for _, name := range d.order {
		g := d.groups[name]
		fmt.Fprintf(&b, "  %s: {\n", name)
		if g.hasValue {
			fmt.Fprintf(&b, "    _value: '%s',\n", g.value)
		}
		writeEntries(&b, g, 2)
		b.WriteString("  },\n")
	}
	b.WriteString("};")
	return b.String()
}

func writeEntries(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range n.order {
		c := n.children[name]
		switch {
		case c.hasValue && len(c.order) > 0:
			fmt.Fprintf(b, "%s%s: '%s',\n", indent, name, c.value)
			fmt.Fprintf(b, "%s%s_nested: {\n", indent, name)
			writeEntries(b, c, depth+1)
			fmt.Fprintf(b, "%s},\n", indent)
		case len(c.order) > 0:
			fmt.Fprintf(b, "%s%s: {\n", indent, name)
			writeEntries(b, c, depth+1)
			fmt.Fprintf(b, "%s},\n", indent)
		default:
			fmt.Fprintf(b, "%s%s: '%s',\n", indent, name, c.value)
		}
	}
}
