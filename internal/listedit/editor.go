/* Package listedit continues, indents, and outdents markdown list items.

Every operation is a pure function of an Editor snapshot: the document lines,
tab settings, and current selections. Operations never mutate the document;
they accumulate Edits (head replacements, line insertions and deletions) and
default command Invocations into a Transaction that the host applies as one
grouped change.

Marker style and numbering are inferred from surrounding lines: the nearest
list item at each indentation level decides what marker a line gets when it
moves to that level, falling back to the configured default markers.
*/
package listedit

import "fmt"

// Document provides read access to lines of text, without line terminators.
type Document interface {
	LineCount() int
	Line(i int) string
}

// Editor is the host state that operations read.
type Editor interface {
	Document
	TabWidth() int
	InsertSpaces() bool
	Selections() []Selection
}

// Lines is a Document backed by a string slice.
type Lines []string

// LineCount returns len(lines).
func (lines Lines) LineCount() int { return len(lines) }

// Line returns lines[i].
func (lines Lines) Line(i int) string { return lines[i] }

// Position is a 0-indexed line and byte column.
type Position struct {
	Line   int
	Column int
}

// Compare returns -1, 0, or 1 as p is before, equal to, or after other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1) }

// Range is a span between two positions, Start <= End.
type Range struct {
	Start Position
	End   Position
}

// IsEmpty returns true if the range has no extent.
func (r Range) IsEmpty() bool { return r.Start == r.End }

func (r Range) String() string {
	if r.IsEmpty() {
		return r.Start.String()
	}
	return r.Start.String() + "-" + r.End.String()
}

// Selection is a selected range; Anchor is where the selection started, and
// Active is the cursor. When they're equal, the selection is just a cursor.
type Selection struct {
	Anchor Position
	Active Position
}

// Cursor returns a selection with no extent.
func Cursor(line, column int) Selection {
	p := Position{line, column}
	return Selection{p, p}
}

// IsEmpty returns true if the selection is just a cursor.
func (sel Selection) IsEmpty() bool { return sel.Anchor == sel.Active }

// Start returns the lower bound of the selection.
func (sel Selection) Start() Position {
	if sel.Anchor.Compare(sel.Active) <= 0 {
		return sel.Anchor
	}
	return sel.Active
}

// End returns the upper bound of the selection.
func (sel Selection) End() Position {
	if sel.Anchor.Compare(sel.Active) >= 0 {
		return sel.Anchor
	}
	return sel.Active
}

// Range returns the selection as a Range.
func (sel Selection) Range() Range { return Range{sel.Start(), sel.End()} }

func (sel Selection) String() string { return sel.Range().String() }
