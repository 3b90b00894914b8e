package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_writeOutline(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "nested lists",
			in:   "- one\n- two\n  1. a\n  2. b\n- three\n",
			out:  "- one\n- two\n  1. a\n  2. b\n- three\n",
		},
		{
			name: "headings and paragraphs",
			in:   "# Title\n\nSome intro.\n\n## Tasks\n\n* [ ] task\n* [x] done\n",
			out:  "# Title\n## Tasks\n* [ ] task\n* [x] done\n",
		},
		{
			name: "first line only",
			in:   "- first line\n  continued\n",
			out:  "- first line\n",
		},
		{
			name: "numbered by position",
			in:   "3. x\n4. y\n",
			out:  "1. x\n2. y\n",
		},
		{
			name: "no lists",
			in:   "just text\n",
			out:  "",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeOutline(&buf, []byte(tc.in)))
			assert.Equal(t, tc.out, buf.String())
		})
	}
}
