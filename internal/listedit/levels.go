package listedit

import (
	"fmt"
	"strings"

	"github.com/jcorbin/mdlist/internal/scandown"
)

// Snapshot is a document along with the editor settings needed to interpret
// its indentation.
type Snapshot struct {
	Document
	TabWidth     int
	InsertSpaces bool
}

// SnapshotOf captures an editor's document and tab settings.
func SnapshotOf(ed Editor) Snapshot {
	return Snapshot{
		Document:     ed,
		TabWidth:     ed.TabWidth(),
		InsertSpaces: ed.InsertSpaces(),
	}
}

// Item parses line i as a list item.
func (s Snapshot) Item(i int) (scandown.Item, bool) {
	return scandown.Parse(s.Line(i), s.TabWidth)
}

func (s Snapshot) checkLine(i int) error {
	if n := s.LineCount(); i < 0 || i >= n {
		return fmt.Errorf("%w: line %d of %d", ErrLineRange, i+1, n)
	}
	return nil
}

// Indentation returns whitespace for the given level: level tabs, or
// level*TabWidth spaces.
func (s Snapshot) Indentation(level int) string {
	if !s.InsertSpaces {
		return strings.Repeat("\t", level)
	}
	return strings.Repeat(" ", level*s.TabWidth)
}

// MarkerTable records the full marker (sub-level spacing and marker token)
// found at each indentation level.
type MarkerTable struct {
	markers []string
	found   []bool
	missing int
}

// Lookup returns the marker recorded at level, if any.
func (table MarkerTable) Lookup(level int) (string, bool) {
	if level < 0 || level >= len(table.found) || !table.found[level] {
		return "", false
	}
	return table.markers[level], true
}

// Len returns the number of levels covered by the table.
func (table MarkerTable) Len() int { return len(table.found) }

func (table MarkerTable) full() bool { return table.missing == 0 }

// record sets the marker at level unless already set.
func (table *MarkerTable) record(level int, marker string) {
	if level < 0 || level >= len(table.found) || table.found[level] {
		return
	}
	table.markers[level] = marker
	table.found[level] = true
	table.missing--
}

func newMarkerTable(maxLevel int) MarkerTable {
	n := maxLevel + 1
	if n < 0 {
		n = 0
	}
	return MarkerTable{
		markers: make([]string, n),
		found:   make([]bool, n),
		missing: n,
	}
}

// BuildLevels builds a marker table for levels 0 through maxLevel.
//
// Lines are considered from active back to the start of the document, then
// forward from just after active to the end; the first marker found at each
// level wins. Scanning stops once every level has a marker.
func (s Snapshot) BuildLevels(active, maxLevel int) MarkerTable {
	table := newMarkerTable(maxLevel)
	for lines := s.around(active); !table.full(); {
		i, ok := lines.next()
		if !ok {
			break
		}
		if item, ok := s.Item(i); ok {
			table.record(item.Level, item.FullMarker())
		}
	}
	return table
}

// lineOrder produces line numbers descending from start to 0, then ascending
// from start+1 to limit.
type lineOrder struct {
	cur, start, limit int
	forward           bool
}

func (s Snapshot) around(start int) *lineOrder {
	n := s.LineCount()
	if start >= n {
		start = n - 1
	}
	return &lineOrder{cur: start, start: start, limit: n}
}

func (lo *lineOrder) next() (int, bool) {
	if !lo.forward {
		if lo.cur >= 0 {
			i := lo.cur
			lo.cur--
			return i, true
		}
		lo.forward = true
		lo.cur = lo.start + 1
		if lo.cur < 0 {
			lo.cur = 0
		}
	}
	if lo.cur < lo.limit {
		i := lo.cur
		lo.cur++
		return i, true
	}
	return -1, false
}

// NextNumber returns the number that an ordered item at level on line from
// should have: one more than the nearest ordered item above it at the same
// level, or 1 if a shallower item, or the start of the document, comes first.
// Non-list lines and deeper items don't interrupt the search.
func (s Snapshot) NextNumber(from, level int) int {
	if n := s.LineCount(); from > n {
		from = n
	}
	for i := from - 1; i >= 0; i-- {
		item, ok := s.Item(i)
		if !ok {
			continue
		}
		if item.Level == level && item.Kind == scandown.Ordered {
			return item.Number + 1
		}
		if item.Level < level {
			return 1
		}
	}
	return 1
}

// DeriveHead computes a new head (indentation, marker, trailing spaces) for
// item, parsed from the given line, moved to level.
//
// The marker comes from cfg.FullMarker; ordered markers are renumbered by
// NextNumber. The item's own checkbox is kept, otherwise any checkbox on the
// resolved marker is. The item's trailing spaces are kept.
func (s Snapshot) DeriveHead(line int, item scandown.Item, level int, table MarkerTable, cfg Config) (string, error) {
	if !item.Valid() {
		return "", fmt.Errorf("%w: cannot derive head for line %d", ErrNotListItem, line+1)
	}
	if level < 0 {
		return "", fmt.Errorf("%w: %d for line %d", ErrLevel, level, line+1)
	}

	spacing, marker := scandown.ParseMarker(cfg.FullMarker(table, level))
	if marker.Kind == scandown.Ordered {
		var err error
		if marker, err = renumber(marker, s.NextNumber(line, level)); err != nil {
			return "", err
		}
	}
	checkbox := item.Checkbox
	if checkbox == "" {
		checkbox = marker.Checkbox
	}
	marker = marker.WithCheckbox(checkbox)

	return s.Indentation(level) + spacing + marker.Token + item.Trailing, nil
}

func renumber(m scandown.Marker, n int) (scandown.Marker, error) {
	if m.Kind != scandown.Ordered {
		return m, fmt.Errorf("%w: %q", ErrNotOrdered, m.Token)
	}
	return m.WithNumber(n), nil
}
