package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jcorbin/mdlist/internal/listedit"
)

var errBadCursor = errors.New("bad cursor")

// parseSelections parses each cursor argument against doc; with no arguments
// a single cursor at the end of the document is returned.
func parseSelections(args []string, doc listedit.Document) ([]listedit.Selection, error) {
	if len(args) == 0 {
		last := doc.LineCount() - 1
		return []listedit.Selection{listedit.Cursor(last, len(doc.Line(last)))}, nil
	}
	sels := make([]listedit.Selection, 0, len(args))
	for _, arg := range args {
		sel, err := parseSelection(arg, doc)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

// parseSelection parses "POS" as a cursor, or "POS-POS" as a selection from
// anchor to cursor.
func parseSelection(s string, doc listedit.Document) (listedit.Selection, error) {
	anchorStr, activeStr := s, s
	if i := strings.IndexByte(s, '-'); i >= 0 {
		anchorStr, activeStr = s[:i], s[i+1:]
	}
	anchor, err := parsePosition(anchorStr, doc)
	if err != nil {
		return listedit.Selection{}, err
	}
	active, err := parsePosition(activeStr, doc)
	if err != nil {
		return listedit.Selection{}, err
	}
	return listedit.Selection{Anchor: anchor, Active: active}, nil
}

// parsePosition parses a 1-based "LINE:COLUMN" position; a missing column
// means the end of the line.
func parsePosition(s string, doc listedit.Document) (listedit.Position, error) {
	lineStr, colStr := s, ""
	if i := strings.IndexByte(s, ':'); i >= 0 {
		lineStr, colStr = s[:i], s[i+1:]
	}

	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return listedit.Position{}, fmt.Errorf("%w %q: invalid line number", errBadCursor, s)
	}
	if line < 1 || line > doc.LineCount() {
		return listedit.Position{}, fmt.Errorf("%w %q: line must be within 1-%d", errBadCursor, s, doc.LineCount())
	}
	line--

	n := len(doc.Line(line))
	if colStr == "" {
		return listedit.Position{Line: line, Column: n}, nil
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return listedit.Position{}, fmt.Errorf("%w %q: invalid column number", errBadCursor, s)
	}
	if col < 1 || col > n+1 {
		return listedit.Position{}, fmt.Errorf("%w %q: column must be within 1-%d", errBadCursor, s, n+1)
	}
	return listedit.Position{Line: line, Column: col - 1}, nil
}
