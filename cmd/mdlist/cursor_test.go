package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdlist/internal/listedit"
)

func Test_parseSelection(t *testing.T) {
	doc := listedit.Lines{"- one", "", "  2. three"}

	for _, tc := range []struct {
		in     string
		expect listedit.Selection
		err    string
	}{
		{in: "1:1", expect: listedit.Cursor(0, 0)},
		{in: "1:6", expect: listedit.Cursor(0, 5)},
		{in: "1", expect: listedit.Cursor(0, 5)},
		{in: "2", expect: listedit.Cursor(1, 0)},
		{in: "3:3", expect: listedit.Cursor(2, 2)},
		{in: "1:3-3", expect: listedit.Selection{
			Anchor: listedit.Position{Line: 0, Column: 2},
			Active: listedit.Position{Line: 2, Column: 10},
		}},
		{in: "3-1:1", expect: listedit.Selection{
			Anchor: listedit.Position{Line: 2, Column: 10},
			Active: listedit.Position{Line: 0, Column: 0},
		}},
		{in: "0:1", err: `bad cursor "0:1": line must be within 1-3`},
		{in: "4", err: `bad cursor "4": line must be within 1-3`},
		{in: "1:7", err: `bad cursor "1:7": column must be within 1-6`},
		{in: "1:0", err: `bad cursor "1:0": column must be within 1-6`},
		{in: "x:1", err: `bad cursor "x:1": invalid line number`},
		{in: "1:y", err: `bad cursor "1:y": invalid column number`},
		{in: "1-z", err: `bad cursor "z": invalid line number`},
		{in: "", err: `bad cursor "": invalid line number`},
	} {
		t.Run(tc.in, func(t *testing.T) {
			sel, err := parseSelection(tc.in, doc)
			if tc.err != "" {
				assert.EqualError(t, err, tc.err)
				assert.ErrorIs(t, err, errBadCursor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, sel)
		})
	}
}

func Test_parseSelections(t *testing.T) {
	doc := listedit.Lines{"- a", "- bb"}

	sels, err := parseSelections(nil, doc)
	require.NoError(t, err)
	assert.Equal(t, []listedit.Selection{listedit.Cursor(1, 4)}, sels, "defaults to end of document")

	sels, err = parseSelections([]string{"1", "2:1"}, doc)
	require.NoError(t, err)
	assert.Equal(t, []listedit.Selection{listedit.Cursor(0, 3), listedit.Cursor(1, 0)}, sels)

	_, err = parseSelections([]string{"1", "5"}, doc)
	assert.ErrorIs(t, err, errBadCursor)
}
