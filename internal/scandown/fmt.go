package scandown

import (
	"fmt"
	"io"
)

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display. Produces a verbose "<Kind attr=value>" form when
// formatted with `%+v", a terse "L<level> <marker> <content>" form otherwise.
func (item Item) Format(f fmt.State, _ rune) {
	if f.Flag('+') {
		fmt.Fprintf(f, "<%v level=%v indent=%q spacing=%q marker=%q", item.Kind, item.Level, item.Indent, item.Spacing, item.Token)
		if item.Kind == Ordered {
			fmt.Fprintf(f, " number=%v delim=%q", item.Number, item.Delim)
		}
		if item.Checkbox != "" {
			fmt.Fprintf(f, " checkbox=%q", item.Checkbox)
		}
		fmt.Fprintf(f, " trailing=%v content=%q>", len(item.Trailing), item.Content)
	} else {
		fmt.Fprintf(f, "L%v %v %q", item.Level, item.Token, item.Content)
	}
}

// Format writes the marker token, or a verbose form under `%+v`.
func (m Marker) Format(f fmt.State, _ rune) {
	if f.Flag('+') {
		fmt.Fprintf(f, "<%v %q>", m.Kind, m.Token)
	} else {
		io.WriteString(f, m.Token)
	}
}

// Format writes a type string representing the receiver code.
func (k Kind) Format(f fmt.State, _ rune) {
	switch k {
	case noKind:
		io.WriteString(f, "None")
	case Bullet:
		io.WriteString(f, "Bullet")
	case Ordered:
		io.WriteString(f, "Ordered")
	default:
		fmt.Fprintf(f, "InvalidKind%v", int(k))
	}
}
