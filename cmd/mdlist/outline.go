package main

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/russross/blackfriday"

	"github.com/jcorbin/mdlist/internal/textio"
)

const outlineIndent = "  "

// parseMarkdown parses src the same way for every report.
func parseMarkdown(src []byte) *blackfriday.Node {
	md := blackfriday.New(blackfriday.WithExtensions(0 |
		blackfriday.NoIntraEmphasis |
		blackfriday.FencedCode |
		blackfriday.Autolink |
		blackfriday.Strikethrough |
		blackfriday.SpaceHeadings |
		blackfriday.BackslashLineBreak,
	))
	return md.Parse(src)
}

// writeOutline writes the heading and list structure of a markdown document:
// one line per heading or list item, giving its first line of text. Nested
// lists are indented under their parent item; ordered items are numbered by
// position.
func writeOutline(w io.Writer, src []byte) error {
	sw := textio.NewStickyWriter(w)
	o := outliner{out: sw}
	parseMarkdown(src).Walk(o.visit)
	o.popAll()
	return sw.Err()
}

type outliner struct {
	out    *textio.StickyWriter
	nested []*textio.PrefixWriter
	counts []int
	title  bytes.Buffer
}

func (o *outliner) writer() io.Writer {
	if i := len(o.nested) - 1; i >= 0 {
		return o.nested[i]
	}
	return o.out
}

func (o *outliner) popAll() {
	for len(o.nested) > 0 {
		o.pop()
	}
}

func (o *outliner) pop() {
	i := len(o.nested) - 1
	o.nested[i].Close()
	o.nested = o.nested[:i]
}

func (o *outliner) visit(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	if o.out.Err() != nil {
		return blackfriday.Terminate
	}
	switch n.Type {

	case blackfriday.Document, blackfriday.BlockQuote:
		return blackfriday.GoToNext

	case blackfriday.Heading:
		if entering {
			o.writeLine(strings.Repeat("#", n.Level), n)
		}
		return blackfriday.SkipChildren

	case blackfriday.List:
		nested := n.Parent != nil && n.Parent.Type == blackfriday.Item
		if entering {
			if nested {
				o.nested = append(o.nested, textio.NewPrefixWriter(outlineIndent, o.writer()))
			}
			o.counts = append(o.counts, 0)
		} else {
			if nested {
				o.pop()
			}
			o.counts = o.counts[:len(o.counts)-1]
		}
		return blackfriday.GoToNext

	case blackfriday.Item:
		if entering {
			i := len(o.counts) - 1
			o.counts[i]++
			o.writeLine(itemMarker(n, o.counts[i]), n)
		}
		return blackfriday.GoToNext

	case blackfriday.Paragraph:
		// only item paragraphs may hold nested lists
		if n.Parent != nil && n.Parent.Type == blackfriday.Item {
			return blackfriday.GoToNext
		}
		return blackfriday.SkipChildren

	default:
		return blackfriday.SkipChildren
	}
}

func (o *outliner) writeLine(marker string, n *blackfriday.Node) {
	o.title.Reset()
	o.title.WriteString(marker)
	o.title.WriteByte(' ')
	collectTitle(&o.title, n)
	o.title.WriteByte('\n')
	o.title.WriteTo(o.writer())
}

func itemMarker(n *blackfriday.Node, count int) string {
	if n.ListFlags&blackfriday.ListTypeOrdered != 0 {
		delim := n.Delimiter
		if delim == 0 {
			delim = '.'
		}
		return strconv.Itoa(count) + string(delim)
	}
	if n.BulletChar != 0 {
		return string(n.BulletChar)
	}
	return "-"
}

// collectTitle writes the first line of text within node, stopping at any
// nested list, paragraph break, or line break.
func collectTitle(buf *bytes.Buffer, node *blackfriday.Node) {
	startLen := buf.Len()

	node.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch n.Type {

		case blackfriday.List, blackfriday.CodeBlock, blackfriday.HTMLBlock, blackfriday.Table:
			return blackfriday.Terminate

		case blackfriday.Paragraph, blackfriday.Softbreak, blackfriday.Hardbreak:
			if n != node && buf.Len() > startLen {
				return blackfriday.Terminate
			}
			return blackfriday.GoToNext

		default:
			status := blackfriday.GoToNext
			if entering {
				b := n.Literal
				if buf.Len() == startLen {
					b = bytes.TrimLeftFunc(b, unicode.IsSpace)
				}
				if i := bytes.IndexByte(b, '\n'); i >= 0 {
					b = b[:i]
					status = blackfriday.Terminate
				}
				buf.Write(b)
			}
			return status
		}
	})

	if b := buf.Bytes(); len(b) > startLen {
		buf.Truncate(startLen + len(bytes.TrimRightFunc(b[startLen:], unicode.IsSpace)))
	}
}
