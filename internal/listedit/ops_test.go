package listedit_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/mdlist/internal/listedit"
	"github.com/jcorbin/mdlist/internal/textbuf"
)

type operation func(ed Editor, cfg Config, tx *Transaction) error

type opTest struct {
	name     string
	op       operation
	in       []string
	tabWidth int
	tabs     bool
	cfg      *Config
	sels     []Selection

	edits  int // expected number of edits, -1 to not check
	invoke Command
	out    []string
}

func (tc opTest) run(t *testing.T) {
	tabWidth := tc.tabWidth
	if tabWidth == 0 {
		tabWidth = 2
	}
	cfg := DefaultConfig()
	if tc.cfg != nil {
		cfg = *tc.cfg
	}

	buf := textbuf.New(strings.Join(tc.in, "\n"), tabWidth, !tc.tabs)
	buf.SetSelections(tc.sels...)

	var tx Transaction
	require.NoError(t, tc.op(buf, cfg, &tx), "operation must succeed")
	t.Logf("transaction edits:%v invocations:%v", tx.Edits, tx.Invocations)

	if tc.edits >= 0 {
		assert.Len(t, tx.Edits, tc.edits, "expected edit count")
	}
	if tc.invoke != 0 {
		if assert.Len(t, tx.Invocations, 1, "expected one fallback invocation") {
			assert.Equal(t, tc.invoke, tx.Invocations[0].Command, "expected fallback command")
		}
	} else {
		assert.Empty(t, tx.Invocations, "expected no fallback")
	}

	require.NoError(t, buf.Apply(tx), "transaction must apply")
	assert.Equal(t, tc.out, strings.Split(buf.String(), "\n"), "expected document")
}

func TestContinue(t *testing.T) {
	remove := DefaultConfig()
	remove.BlankItemBehaviour = RemoveListItem

	for _, tc := range []opTest{
		{
			name:  "bullet",
			in:    []string{"- item one"},
			sels:  []Selection{Cursor(0, 10)},
			edits: 1,
			out:   []string{"- item one", "- "},
		},
		{
			name:  "ordered renumbers",
			in:    []string{"1. a"},
			sels:  []Selection{Cursor(0, 4)},
			edits: 1,
			out:   []string{"1. a", "2. "},
		},
		{
			name:  "ordered paren mid list",
			in:    []string{"1) a", "  - sub", "2) b", "3) c"},
			sels:  []Selection{Cursor(2, 4)},
			edits: 1,
			out:   []string{"1) a", "  - sub", "2) b", "3) ", "3) c"},
		},
		{
			name:  "keeps indentation and checkbox",
			in:    []string{"- a", "  - [x] done"},
			sels:  []Selection{Cursor(1, 12)},
			edits: 1,
			out:   []string{"- a", "  - [x] done", "  - [x] "},
		},
		{
			name:     "tab indentation verbatim",
			in:       []string{"\t*  a"},
			tabWidth: 4,
			sels:     []Selection{Cursor(0, 5)},
			edits:    1,
			out:      []string{"\t*  a", "\t*  "},
		},
		{
			name:  "trailing whitespace after cursor",
			in:    []string{"- a   "},
			sels:  []Selection{Cursor(0, 3)},
			edits: 1,
			out:   []string{"- a   ", "- "},
		},
		{
			name:  "blank outdents",
			in:    []string{"  - "},
			sels:  []Selection{Cursor(0, 4)},
			edits: 1,
			out:   []string{"- "},
		},
		{
			name:  "blank outdents to context marker",
			in:    []string{"- a", "  * b", "    + "},
			sels:  []Selection{Cursor(2, 6)},
			edits: 1,
			out:   []string{"- a", "  * b", "  * "},
		},
		{
			name:  "blank outdents to ordered context",
			in:    []string{"1. a", "  - b", "  - "},
			sels:  []Selection{Cursor(2, 4)},
			edits: 1,
			out:   []string{"1. a", "  - b", "2. "},
		},
		{
			// NOTE a level 0 blank item is re-derived in place, unlike
			// Outdent which leaves level 0 alone
			name:  "blank at level 0 re-derives the same marker",
			in:    []string{"1. a", "2. "},
			sels:  []Selection{Cursor(1, 3)},
			edits: 1,
			out:   []string{"1. a", "2. "},
		},
		{
			name:  "blank removed",
			in:    []string{"  - "},
			cfg:   &remove,
			sels:  []Selection{Cursor(0, 4)},
			edits: 1,
			out:   []string{""},
		},
		{
			name:  "blank removed mid document",
			in:    []string{"- a", "  - ", "- c"},
			cfg:   &remove,
			sels:  []Selection{Cursor(1, 4)},
			edits: 1,
			out:   []string{"- a", "- c"},
		},
		{
			name:  "multiple cursors",
			in:    []string{"- a", "3. b"},
			sels:  []Selection{Cursor(0, 3), Cursor(1, 4)},
			edits: 2,
			out:   []string{"- a", "- ", "3. b", "4. "},
		},
		{
			name:  "duplicate cursors",
			in:    []string{"- a"},
			sels:  []Selection{Cursor(0, 3), Cursor(0, 3)},
			edits: 1,
			out:   []string{"- a", "- "},
		},
		{
			name:   "cursor inside content",
			in:     []string{"- item"},
			sels:   []Selection{Cursor(0, 3)},
			edits:  0,
			invoke: TypeNewline,
			out:    []string{"- i", "tem"},
		},
		{
			name:   "cursor inside head",
			in:     []string{"-   "},
			sels:   []Selection{Cursor(0, 2)},
			edits:  0,
			invoke: TypeNewline,
			out:    []string{"- ", "  "},
		},
		{
			name:   "any non-list cursor degrades all",
			in:     []string{"- a", "text"},
			sels:   []Selection{Cursor(0, 3), Cursor(1, 4)},
			edits:  0,
			invoke: TypeNewline,
			out:    []string{"- a", "", "text", ""},
		},
		{
			name:   "ordered number with no successor",
			in:     []string{"9223372036854775807. a"},
			sels:   []Selection{Cursor(0, 22)},
			edits:  0,
			invoke: TypeNewline,
			out:    []string{"9223372036854775807. a", ""},
		},
	} {
		tc.op = Continue
		t.Run(tc.name, tc.run)
	}
}

func TestIndent(t *testing.T) {
	orderedDefaults := Config{DefaultMarkers: []string{"-", "1)"}}

	for _, tc := range []opTest{
		{
			name:  "checkbox kept",
			in:    []string{"- [ ] task"},
			sels:  []Selection{Cursor(0, 3)},
			edits: 1,
			out:   []string{"  - [ ] task"},
		},
		{
			name:  "default marker",
			in:    []string{"1. a", "2. b", "3. c"},
			sels:  []Selection{Cursor(1, 4)},
			edits: 1,
			out:   []string{"1. a", "  - b", "3. c"},
		},
		{
			name:  "ordered default starts at 1",
			in:    []string{"1. a", "2. b", "3. c"},
			cfg:   &orderedDefaults,
			sels:  []Selection{Cursor(1, 4)},
			edits: 1,
			out:   []string{"1. a", "  1) b", "3. c"},
		},
		{
			name:  "inherits nearby marker",
			in:    []string{"- a", "  * b", "- c"},
			sels:  []Selection{Cursor(2, 3)},
			edits: 1,
			out:   []string{"- a", "  * b", "  * c"},
		},
		{
			name:  "inherits ordered numbering",
			in:    []string{"- a", "  1. b", "- c"},
			sels:  []Selection{Cursor(2, 3)},
			edits: 1,
			out:   []string{"- a", "  1. b", "  2. c"},
		},
		{
			name:  "selection spans lines",
			in:    []string{"- a", "- b", "- c"},
			sels:  []Selection{{Anchor: Position{2, 1}, Active: Position{1, 0}}},
			edits: 2,
			out:   []string{"- a", "  - b", "  - c"},
		},
		{
			name:     "tabs",
			in:       []string{"- a", "\t* b", "- c"},
			tabWidth: 4,
			tabs:     true,
			sels:     []Selection{Cursor(2, 0)},
			edits:    1,
			out:      []string{"- a", "\t* b", "\t* c"},
		},
		{
			name:  "no upper bound",
			in:    []string{"- a", "      - b"},
			sels:  []Selection{Cursor(1, 0)},
			edits: 1,
			out:   []string{"- a", "        - b"},
		},
		{
			name:   "preceding line not a list item",
			in:     []string{"para", "- a"},
			sels:   []Selection{Cursor(1, 0)},
			edits:  0,
			invoke: DefaultIndent,
			out:    []string{"para", "  - a"},
		},
		{
			name:   "spans a paragraph",
			in:     []string{"- a", "- b", "para"},
			sels:   []Selection{{Anchor: Position{1, 0}, Active: Position{2, 2}}},
			edits:  0,
			invoke: DefaultIndent,
			out:    []string{"- a", "  - b", "  para"},
		},
		{
			name:   "per selection fallback",
			in:     []string{"- a", "- b", "", "text"},
			sels:   []Selection{Cursor(1, 0), Cursor(3, 0)},
			edits:  1,
			invoke: DefaultIndent,
			out:    []string{"- a", "  - b", "", "  text"},
		},
		{
			name:   "shared line follows the fallback",
			in:     []string{"- a", "- b", "para"},
			sels:   []Selection{Cursor(1, 0), {Anchor: Position{1, 0}, Active: Position{2, 0}}},
			edits:  0,
			invoke: DefaultIndent,
			out:    []string{"- a", "  - b", "  para"},
		},
		{
			name:   "deferral spreads across shared lines",
			in:     []string{"- a", "- b", "- c", "para"},
			sels:   []Selection{{Anchor: Position{1, 0}, Active: Position{2, 0}}, {Anchor: Position{2, 0}, Active: Position{3, 0}}, Cursor(1, 0)},
			edits:  0,
			invoke: DefaultIndent,
			out:    []string{"- a", "  - b", "  - c", "  para"},
		},
	} {
		tc.op = Indent
		t.Run(tc.name, tc.run)
	}
}

func TestOutdent(t *testing.T) {
	for _, tc := range []opTest{
		{
			name:  "level 0 is left alone",
			in:    []string{"- a"},
			sels:  []Selection{Cursor(0, 0)},
			edits: 0,
			out:   []string{"- a"},
		},
		{
			name:  "renumbers into parent list",
			in:    []string{"1. a", "  - b", "2. c"},
			sels:  []Selection{Cursor(1, 4)},
			edits: 1,
			out:   []string{"1. a", "2. b", "2. c"},
		},
		{
			name:  "mixed levels",
			in:    []string{"- a", "  - b", "- c"},
			sels:  []Selection{{Anchor: Position{0, 0}, Active: Position{2, 3}}},
			edits: 1,
			out:   []string{"- a", "- b", "- c"},
		},
		{
			name:  "misaligned spacing from context",
			in:    []string{" * a", "   - b"},
			sels:  []Selection{Cursor(1, 0)},
			edits: 1,
			out:   []string{" * a", " * b"},
		},
		{
			name:   "spans a paragraph",
			in:     []string{"- a", "  - b", "para"},
			sels:   []Selection{{Anchor: Position{1, 0}, Active: Position{2, 2}}},
			edits:  0,
			invoke: DefaultOutdent,
			out:    []string{"- a", "- b", "para"},
		},
	} {
		tc.op = Outdent
		t.Run(tc.name, tc.run)
	}
}

func TestContinue_numbering(t *testing.T) {
	buf := textbuf.New("3. first", 2, true)
	cfg := DefaultConfig()
	for i := 0; i < 3; i++ {
		buf.SetSelections(Cursor(buf.End().Line, buf.End().Column))
		var tx Transaction
		require.NoError(t, Continue(buf, cfg, &tx))
		require.NoError(t, buf.Apply(tx))

		var typed Transaction
		typed.Insert(buf.End(), "item")
		require.NoError(t, buf.Apply(typed))
	}
	assert.Equal(t, "3. first\n4. item\n5. item\n6. item", buf.String())
}

func TestOperations_lineRange(t *testing.T) {
	for name, op := range map[string]operation{
		"continue": Continue,
		"indent":   Indent,
		"outdent":  Outdent,
	} {
		t.Run(name, func(t *testing.T) {
			buf := textbuf.New("- a", 2, true)
			buf.SetSelections(Cursor(4, 0))
			var tx Transaction
			assert.ErrorIs(t, op(buf, DefaultConfig(), &tx), ErrLineRange)
			assert.True(t, tx.Empty(), "transaction should be untouched")
		})
	}
}

func TestOperations_emptyDefaults(t *testing.T) {
	cfg := Config{BlankItemBehaviour: OutdentListItem}
	buf := textbuf.New("- a\n- b", 2, true)
	buf.SetSelections(Cursor(1, 0))
	var tx Transaction
	require.NoError(t, Indent(buf, cfg, &tx))
	require.NoError(t, buf.Apply(tx))
	assert.Equal(t, "- a\n  - b", buf.String())
}

func ExampleContinue() {
	buf := textbuf.New("1. milk\n2. eggs", 2, true)
	buf.SetSelections(Cursor(1, 7))

	var tx Transaction
	if err := Continue(buf, DefaultConfig(), &tx); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(tx.Edits)
	if err := buf.Apply(tx); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(buf)

	// Output:
	// [insert@2:8 "\n3. "]
	// 1. milk
	// 2. eggs
	// 3.
}
