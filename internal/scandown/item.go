/* Package scandown recognizes markdown list item lines.

A list item line is leading whitespace, a marker, one or more spaces, and
content:

	  - [x] done thing
	  3) third thing

Bullet markers are one of '-', '*', or '+', optionally followed by a space and
a checkbox ("[ ]", "[x]", or "[X]"). Ordered markers are one or more decimal
digits followed by '.' or ')'; numbers too large to advance past do not make a
list item. A marker glued to its content ("-text") does
not make a list item.
*/
package scandown

import (
	"math"
	"strconv"
	"strings"
)

// Kind distinguishes bullet markers from ordered ones.
type Kind int

const (
	noKind Kind = iota
	Bullet
	Ordered
)

// Marker is a parsed list marker token.
type Marker struct {
	Token    string // literal marker text, eg "-", "* [x]", "12)"
	Kind     Kind
	Number   int    // ordered only
	Delim    byte   // ordered only: '.' or ')'
	Checkbox string // "[ ]", "[x]", "[X]" or empty
}

// Item is a list item line split into its parts.
// Indent+Token+Trailing+Content always reproduces the parsed line.
type Item struct {
	Indent     string // leading whitespace, verbatim
	Normalized string // Indent with tabs expanded to tabWidth spaces
	Level      int    // len(Normalized) / tabWidth
	Spacing    string // Normalized past Level*tabWidth
	Marker
	Trailing string // spaces between marker and content, at least one
	Content  string
}

// Parse recognizes a list item line, returning false if line isn't one.
// The tabWidth is clamped to be at least 1.
func Parse(line string, tabWidth int) (item Item, ok bool) {
	if tabWidth < 1 {
		tabWidth = 1
	}

	indent, tail := leadingSpace(line)
	marker, tail := listMarker(tail)
	if marker.Kind == noKind {
		return Item{}, false
	}
	trailing, content := spaces(tail)
	if trailing == "" {
		return Item{}, false
	}

	item.Indent = indent
	item.Normalized = strings.ReplaceAll(indent, "\t", strings.Repeat(" ", tabWidth))
	item.Level = len(item.Normalized) / tabWidth
	item.Spacing = item.Normalized[item.Level*tabWidth:]
	item.Marker = marker
	item.Trailing = trailing
	item.Content = content
	return item, true
}

// ParseMarker parses a standalone marker string, like those found in a
// configured marker template, returning any leading spacing separately.
// Unlike Parse, no trailing space is required.
// If the remainder isn't a recognized marker, it is returned as an opaque
// token with a zero Kind.
func ParseMarker(s string) (spacing string, marker Marker) {
	spacing, tail := spaces(s)
	if m, rest := listMarker(tail + " "); m.Kind != noKind && rest == " " {
		return spacing, m
	}
	return spacing, Marker{Token: tail}
}

// Head returns the item's indentation, marker, and trailing spaces.
func (item Item) Head() string { return item.Indent + item.Token + item.Trailing }

// String returns the full line that was parsed.
func (item Item) String() string { return item.Head() + item.Content }

// FullMarker returns the marker token prefixed by sub-level spacing.
func (item Item) FullMarker() string { return item.Spacing + item.Token }

// IsBlank returns true if item has no content besides whitespace.
func (item Item) IsBlank() bool { return strings.TrimSpace(item.Content) == "" }

// Valid returns true if the marker was recognized.
func (m Marker) Valid() bool { return m.Kind != noKind }

// WithNumber returns a copy of an ordered marker renumbered to n.
// Markers of other kinds are returned unchanged.
func (m Marker) WithNumber(n int) Marker {
	if m.Kind != Ordered {
		return m
	}
	m.Number = n
	m.Token = strconv.Itoa(n) + string(m.Delim)
	return m
}

// WithCheckbox returns a copy of the marker with its checkbox replaced.
// An empty checkbox removes any present.
func (m Marker) WithCheckbox(checkbox string) Marker {
	if m.Kind == noKind {
		return m
	}
	token := m.Token
	if m.Checkbox != "" {
		token = strings.TrimSuffix(token, " "+m.Checkbox)
	}
	if checkbox != "" {
		token += " " + checkbox
	}
	m.Token = token
	m.Checkbox = checkbox
	return m
}

// listMarker recognizes a marker that must be followed by a space; the
// returned tail starts with that space.
func listMarker(s string) (Marker, string) {
	if m, tail := bulletMarker(s); m.Kind != noKind {
		return m, tail
	}
	return orderedMarker(s)
}

func bulletMarker(s string) (Marker, string) {
	if len(s) < 2 || !isByte(s[0], '-', '*', '+') {
		return Marker{}, s
	}
	// checkbox form first, falling back to the bare bullet
	if cb, tail := checkbox(s[1:]); cb != "" && len(tail) > 0 && tail[0] == ' ' {
		return Marker{Token: s[:5], Kind: Bullet, Checkbox: cb}, tail
	}
	if s[1] != ' ' {
		return Marker{}, s
	}
	return Marker{Token: s[:1], Kind: Bullet}, s[1:]
}

// checkbox recognizes a " [?]" suffix.
func checkbox(s string) (string, string) {
	if len(s) < 4 || s[0] != ' ' || s[1] != '[' || s[3] != ']' || !isByte(s[2], ' ', 'x', 'X') {
		return "", s
	}
	return s[1:4], s[4:]
}

func orderedMarker(s string) (Marker, string) {
	width := 0
	for width < len(s) && '0' <= s[width] && s[width] <= '9' {
		width++
	}
	if width == 0 || width+1 >= len(s) {
		return Marker{}, s
	}
	delim := s[width]
	if !isByte(delim, '.', ')') || s[width+1] != ' ' {
		return Marker{}, s
	}
	n, err := strconv.Atoi(s[:width])
	if err != nil || n == math.MaxInt {
		// out of range, or no room to count past
		return Marker{}, s
	}
	return Marker{Token: s[:width+1], Kind: Ordered, Number: n, Delim: delim}, s[width+1:]
}

func leadingSpace(s string) (space, tail string) {
	i := 0
	for i < len(s) && isByte(s[i], ' ', '\t') {
		i++
	}
	return s[:i], s[i:]
}

func spaces(s string) (space, tail string) {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return s[:i], s[i:]
}

func isByte(b byte, any ...byte) bool {
	for _, ab := range any {
		if b == ab {
			return true
		}
	}
	return false
}
