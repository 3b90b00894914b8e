// Package textbuf is a simple line buffer host for listedit operations.
//
// It holds document text and selections, provides the default commands that
// operations fall back to, and applies transactions atomically.
package textbuf

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jcorbin/mdlist/internal/listedit"
)

var (
	// ErrOverlappingEdits is returned when a transaction's edits overlap.
	ErrOverlappingEdits = errors.New("overlapping edits")
	// ErrPosition is returned for positions outside the document.
	ErrPosition = errors.New("position out of range")
	// ErrUnknownCommand is returned for unsupported command invocations.
	ErrUnknownCommand = errors.New("unknown command")
)

// Buffer is an in-memory document with editor settings and selections.
// It implements listedit.Editor.
type Buffer struct {
	lines        []string
	tabWidth     int
	insertSpaces bool
	selections   []listedit.Selection
}

// New creates a buffer holding text, split on "\n". A tabWidth less than 1 is
// treated as 1.
func New(text string, tabWidth int, insertSpaces bool) *Buffer {
	if tabWidth < 1 {
		tabWidth = 1
	}
	return &Buffer{
		lines:        strings.Split(text, "\n"),
		tabWidth:     tabWidth,
		insertSpaces: insertSpaces,
	}
}

// LineCount returns the number of lines; always at least 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line i without its terminator.
func (b *Buffer) Line(i int) string { return b.lines[i] }

// TabWidth returns the configured tab width.
func (b *Buffer) TabWidth() int { return b.tabWidth }

// InsertSpaces returns true if indentation should use spaces.
func (b *Buffer) InsertSpaces() bool { return b.insertSpaces }

// Selections returns a copy of the current selections.
func (b *Buffer) Selections() []listedit.Selection {
	return append([]listedit.Selection(nil), b.selections...)
}

// SetSelections replaces the current selections.
func (b *Buffer) SetSelections(sels ...listedit.Selection) {
	b.selections = append(b.selections[:0], sels...)
}

// String returns the document text.
func (b *Buffer) String() string { return strings.Join(b.lines, "\n") }

// End returns the position just past the last character of the document.
func (b *Buffer) End() listedit.Position {
	last := len(b.lines) - 1
	return listedit.Position{Line: last, Column: len(b.lines[last])}
}

func (b *Buffer) offset(p listedit.Position) (int, error) {
	if p.Line < 0 || p.Line >= len(b.lines) || p.Column < 0 || p.Column > len(b.lines[p.Line]) {
		return 0, fmt.Errorf("%w: %v", ErrPosition, p)
	}
	off := p.Column
	for _, line := range b.lines[:p.Line] {
		off += len(line) + 1
	}
	return off, nil
}

func position(text string, off int) listedit.Position {
	head := text[:off]
	line := strings.Count(head, "\n")
	col := off
	if i := strings.LastIndexByte(head, '\n'); i >= 0 {
		col = off - i - 1
	}
	return listedit.Position{Line: line, Column: col}
}

type span struct {
	start, end int
	text       string
}

// Apply applies a transaction: its edits and the edits of any command
// invocations, all computed against the current document. Either all of
// them are applied or, on error, none are. Selections are mapped through
// the change.
func (b *Buffer) Apply(tx listedit.Transaction) error {
	edits := append([]listedit.Edit(nil), tx.Edits...)
	for _, inv := range tx.Invocations {
		cmdEdits, err := b.commandEdits(inv)
		if err != nil {
			return err
		}
		edits = append(edits, cmdEdits...)
	}
	if len(edits) == 0 {
		return nil
	}

	spans := make([]span, 0, len(edits))
	for _, e := range edits {
		start, err := b.offset(e.Range.Start)
		if err != nil {
			return err
		}
		end, err := b.offset(e.Range.End)
		if err != nil {
			return err
		}
		if end < start {
			start, end = end, start
		}
		spans = append(spans, span{start, end, e.Text})
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})
	for i := 1; i < len(spans); i++ {
		if prior := spans[i-1]; prior.end > spans[i].start {
			return fmt.Errorf("%w: %v..%v and %v..%v", ErrOverlappingEdits,
				prior.start, prior.end, spans[i].start, spans[i].end)
		}
	}

	old := b.String()
	var sb strings.Builder
	sb.Grow(len(old))
	last := 0
	for _, sp := range spans {
		sb.WriteString(old[last:sp.start])
		sb.WriteString(sp.text)
		last = sp.end
	}
	sb.WriteString(old[last:])
	text := sb.String()

	sels := make([]listedit.Selection, len(b.selections))
	for i, sel := range b.selections {
		anchor, err := b.offset(sel.Anchor)
		if err != nil {
			return err
		}
		active, err := b.offset(sel.Active)
		if err != nil {
			return err
		}
		sels[i] = listedit.Selection{
			Anchor: position(text, mapOffset(anchor, spans)),
			Active: position(text, mapOffset(active, spans)),
		}
	}

	b.lines = strings.Split(text, "\n")
	b.selections = sels
	return nil
}

// mapOffset maps an offset in the old text to the new text. Offsets at or
// within an edited span move to its end.
func mapOffset(off int, spans []span) int {
	delta := 0
	for _, sp := range spans {
		if off < sp.start {
			break
		}
		if off < sp.end {
			return sp.start + delta + len(sp.text)
		}
		delta += len(sp.text) - (sp.end - sp.start)
	}
	return off + delta
}
