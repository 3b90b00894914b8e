package textbuf

import (
	"fmt"
	"strings"

	"github.com/jcorbin/mdlist/internal/listedit"
)

func (b *Buffer) commandEdits(inv listedit.Invocation) ([]listedit.Edit, error) {
	switch inv.Command {
	case listedit.DefaultIndent:
		return b.eachLine(inv.Selections, b.indentLine)
	case listedit.DefaultOutdent:
		return b.eachLine(inv.Selections, b.outdentLine)
	case listedit.TypeNewline:
		return newlines(inv.Selections), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCommand, inv.Command)
	}
}

// indentUnit returns one level of indentation.
func (b *Buffer) indentUnit() string {
	if b.insertSpaces {
		return strings.Repeat(" ", b.tabWidth)
	}
	return "\t"
}

// eachLine collects edits from fn for every line spanned by sels, visiting
// each line once.
func (b *Buffer) eachLine(sels []listedit.Selection, fn func(line int) (listedit.Edit, bool)) ([]listedit.Edit, error) {
	var edits []listedit.Edit
	seen := make(map[int]bool)
	for _, sel := range sels {
		start, end := sel.Start().Line, sel.End().Line
		if start < 0 || end >= len(b.lines) {
			return nil, fmt.Errorf("%w: selection %v", ErrPosition, sel)
		}
		for line := start; line <= end; line++ {
			if seen[line] {
				continue
			}
			seen[line] = true
			if e, ok := fn(line); ok {
				edits = append(edits, e)
			}
		}
	}
	return edits, nil
}

// indentLine prefixes a non-empty line with one indent unit.
func (b *Buffer) indentLine(line int) (listedit.Edit, bool) {
	if len(b.lines[line]) == 0 {
		return listedit.Edit{}, false
	}
	at := listedit.Position{Line: line}
	return listedit.Edit{Range: listedit.Range{Start: at, End: at}, Text: b.indentUnit()}, true
}

// outdentLine removes a leading tab, or up to tabWidth leading spaces.
func (b *Buffer) outdentLine(line int) (listedit.Edit, bool) {
	text := b.lines[line]
	n := 0
	if strings.HasPrefix(text, "\t") {
		n = 1
	} else {
		for n < len(text) && n < b.tabWidth && text[n] == ' ' {
			n++
		}
	}
	if n == 0 {
		return listedit.Edit{}, false
	}
	return listedit.Edit{
		Range: listedit.Range{
			Start: listedit.Position{Line: line},
			End:   listedit.Position{Line: line, Column: n},
		},
	}, true
}

// newlines replaces every selection with a newline, as if typed.
func newlines(sels []listedit.Selection) []listedit.Edit {
	edits := make([]listedit.Edit, 0, len(sels))
	seen := make(map[listedit.Range]bool, len(sels))
	for _, sel := range sels {
		r := sel.Range()
		if seen[r] {
			continue
		}
		seen[r] = true
		edits = append(edits, listedit.Edit{Range: r, Text: "\n"})
	}
	return edits
}
