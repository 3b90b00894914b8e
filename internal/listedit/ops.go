package listedit

import (
	"strings"

	"github.com/jcorbin/mdlist/internal/logutil"
	"github.com/jcorbin/mdlist/internal/scandown"
)

// Continue handles a press of enter at every cursor.
//
// Only if every cursor is on a list item, past its head with nothing but
// whitespace after it, are lists continued; otherwise a TypeNewline invocation
// over all selections is recorded instead. A blank item is outdented or
// removed per cfg.BlankItemBehaviour. Any other item gets a new line below it
// with the same head, ordered numbers advanced.
//
// On error, tx is left unchanged.
func Continue(ed Editor, cfg Config, tx *Transaction) error {
	logger := logutil.Component("listedit")
	s := SnapshotOf(ed)
	sels := ed.Selections()

	type target struct {
		line int
		item scandown.Item
	}
	targets := make([]target, 0, len(sels))
	for _, sel := range sels {
		at := sel.Active
		if err := s.checkLine(at.Line); err != nil {
			return err
		}
		item, ok := s.Item(at.Line)
		if !ok || !continuable(s.Line(at.Line), item, at.Column) {
			logger.Debug().Stringer("cursor", at).Msg("not continuing list, typing newline")
			tx.Invoke(TypeNewline, sels)
			return nil
		}
		targets = append(targets, target{at.Line, item})
	}
	if len(targets) == 0 {
		return nil
	}

	// blank items outdent against one table covering every cursor
	var (
		table     MarkerTable
		haveTable bool
	)
	outdentTable := func() MarkerTable {
		if !haveTable {
			maxLevel := 1
			for _, t := range targets {
				if t.item.Level > maxLevel {
					maxLevel = t.item.Level
				}
			}
			table = s.BuildLevels(targets[0].line, maxLevel-1)
			haveTable = true
		}
		return table
	}

	var out Transaction
	seen := make(map[int]bool, len(targets))
	for _, t := range targets {
		if seen[t.line] {
			continue
		}
		seen[t.line] = true

		if !t.item.IsBlank() {
			head, err := s.continuation(t.line, t.item)
			if err != nil {
				return err
			}
			out.Insert(Position{t.line, len(s.Line(t.line))}, "\n"+head)
			continue
		}

		switch cfg.BlankItemBehaviour {
		case RemoveListItem:
			logger.Debug().Int("line", t.line+1).Msg("removing blank list item")
			out.Delete(s.lineRange(t.line))

		default:
			// NOTE unlike Outdent, this re-derives level 0 heads rather than
			// leaving them alone
			level := t.item.Level - 1
			if level < 0 {
				level = 0
			}
			logger.Debug().Int("line", t.line+1).Int("level", level).Msg("outdenting blank list item")
			head, err := s.DeriveHead(t.line, t.item, level, outdentTable(), cfg)
			if err != nil {
				return err
			}
			out.Replace(headRange(t.line, t.item), head)
		}
	}

	tx.merge(out)
	return nil
}

// Indent moves every list item line spanned by each selection one level
// deeper. See shift for gating.
func Indent(ed Editor, cfg Config, tx *Transaction) error {
	return shift(ed, cfg, tx, 1, DefaultIndent)
}

// Outdent moves every list item line spanned by each selection one level
// shallower; lines already at level 0 are left alone. See shift for gating.
func Outdent(ed Editor, cfg Config, tx *Transaction) error {
	return shift(ed, cfg, tx, -1, DefaultOutdent)
}

// shift handles each selection independently: if the line before it, and
// every line it spans, are list items their heads are re-derived at their
// level plus delta; otherwise the selection is deferred to the fallback
// command. A selection sharing a line with a deferred one is deferred too,
// so no line is shifted twice. All deferred selections share one invocation.
//
// On error, tx is left unchanged.
func shift(ed Editor, cfg Config, tx *Transaction, delta int, fallback Command) error {
	logger := logutil.Component("listedit")
	s := SnapshotOf(ed)

	type plan struct {
		sel   Selection
		items []scandown.Item
		ok    bool
	}
	sels := ed.Selections()
	plans := make([]plan, 0, len(sels))
	for _, sel := range sels {
		if err := s.checkLine(sel.Start().Line); err != nil {
			return err
		}
		if err := s.checkLine(sel.End().Line); err != nil {
			return err
		}
		items, ok := s.span(sel.Start().Line, sel.End().Line)
		if !ok {
			logger.Debug().Stringer("selection", sel).Stringer("fallback", fallback).Msg("selection spans non-list lines")
		}
		plans = append(plans, plan{sel, items, ok})
	}

	deferredLines := make(map[int]bool)
	deferLines := func(sel Selection) {
		for line := sel.Start().Line; line <= sel.End().Line; line++ {
			deferredLines[line] = true
		}
	}
	sharesLine := func(sel Selection) bool {
		for line := sel.Start().Line; line <= sel.End().Line; line++ {
			if deferredLines[line] {
				return true
			}
		}
		return false
	}
	for _, p := range plans {
		if !p.ok {
			deferLines(p.sel)
		}
	}
	for changed := true; changed; {
		changed = false
		for i, p := range plans {
			if p.ok && sharesLine(p.sel) {
				logger.Debug().Stringer("selection", p.sel).Stringer("fallback", fallback).Msg("selection shares a line with a deferred one")
				plans[i].ok = false
				deferLines(p.sel)
				changed = true
			}
		}
	}

	var (
		out      Transaction
		deferred []Selection
		seen     = make(map[int]bool)
	)
	for _, p := range plans {
		if !p.ok {
			deferred = append(deferred, p.sel)
			continue
		}

		maxLevel := 0
		for _, item := range p.items {
			if item.Level > maxLevel {
				maxLevel = item.Level
			}
		}
		table := s.BuildLevels(p.sel.Active.Line, maxLevel+delta)

		start := p.sel.Start().Line
		for i, item := range p.items {
			line := start + i
			if seen[line] {
				continue
			}
			seen[line] = true

			level := item.Level + delta
			if level < 0 {
				continue
			}
			head, err := s.DeriveHead(line, item, level, table, cfg)
			if err != nil {
				return err
			}
			if head != item.Head() {
				out.Replace(headRange(line, item), head)
			}
		}
	}
	if len(deferred) > 0 {
		out.Invoke(fallback, deferred)
	}

	tx.merge(out)
	return nil
}

// span parses lines start through end, along with the line before start if
// any; ok is false if any of them isn't a list item.
func (s Snapshot) span(start, end int) (items []scandown.Item, ok bool) {
	if start > 0 {
		if _, ok := s.Item(start - 1); !ok {
			return nil, false
		}
	}
	items = make([]scandown.Item, 0, end-start+1)
	for i := start; i <= end; i++ {
		item, ok := s.Item(i)
		if !ok {
			return nil, false
		}
		items = append(items, item)
	}
	return items, true
}

// continuation returns the head for a new item following item: the same
// indentation, marker, and spacing, with any ordered number advanced.
func (s Snapshot) continuation(line int, item scandown.Item) (string, error) {
	marker := item.Marker
	if marker.Kind == scandown.Ordered {
		var err error
		if marker, err = renumber(marker, s.NextNumber(line+1, item.Level)); err != nil {
			return "", err
		}
	}
	return item.Indent + marker.Token + item.Trailing, nil
}

// continuable returns true if a cursor at column is at or past item's head
// with only whitespace following it.
func continuable(line string, item scandown.Item, column int) bool {
	if column > len(line) {
		column = len(line)
	} else if column < 0 {
		column = 0
	}
	return column >= len(item.Head()) && strings.TrimSpace(line[column:]) == ""
}

func headRange(line int, item scandown.Item) Range {
	return Range{Position{line, 0}, Position{line, len(item.Head())}}
}

// lineRange covers a whole line and its line break; the last line has no
// break to take, so only its text is covered.
func (s Snapshot) lineRange(line int) Range {
	if line+1 < s.LineCount() {
		return Range{Position{line, 0}, Position{line + 1, 0}}
	}
	return Range{Position{line, 0}, Position{line, len(s.Line(line))}}
}
