package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jcorbin/mdlist/internal/listedit"
	"github.com/jcorbin/mdlist/internal/logutil"
	"github.com/jcorbin/mdlist/internal/scandown"
	"github.com/jcorbin/mdlist/internal/textbuf"
	"github.com/jcorbin/mdlist/internal/textio"
)

var errNoFile = errors.New("--write requires a FILE argument")

// operation is one of listedit's entry points.
type operation func(ed listedit.Editor, cfg listedit.Config, tx *listedit.Transaction) error

// openStores returns where to read the document named by the first argument,
// and where to put the result: back into the same file if write is set,
// otherwise onto the command's output.
func openStores(c *cli.Command, write bool) (in, out store, _ error) {
	root := c.Root()
	path := c.Args().First()
	if path == "" || path == "-" {
		if write {
			return nil, nil, errNoFile
		}
		ss := &streamStore{r: root.Reader, w: root.Writer}
		return ss, ss, nil
	}
	fst := &fsStore{filename: path}
	if write {
		return fst, fst, nil
	}
	return fst, &streamStore{w: root.Writer}, nil
}

type editCmd struct {
	flags *globalFlags
	name  string
	usage string
	op    operation

	tabWidth int
	tabs     bool
	blank    string
	markers  []string
	cursors  []string
	write    bool
}

func newEditCmd(flags *globalFlags, name, usage string, op operation) *editCmd {
	return &editCmd{flags: flags, name: name, usage: usage, op: op}
}

func (cmd *editCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      cmd.name,
		Usage:     cmd.usage,
		UsageText: "mdlist " + cmd.name + " [--cursor LINE[:COL][-LINE[:COL]]]... [-w] [FILE]",
		Description: `Reads FILE, or stdin if none is given, and prints the edited document.

Cursors are 1-based; a missing column means the end of the line. A range
selects from its first position to its second, which is the cursor. Without
any --cursor, the cursor is at the end of the document.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "cursor",
				Usage:       "cursor or selection to edit at (repeatable)",
				Destination: &cmd.cursors,
			},
			&cli.BoolFlag{
				Name:        "write",
				Aliases:     []string{"w"},
				Usage:       "replace FILE with the result instead of printing it",
				Destination: &cmd.write,
			},
			&cli.IntFlag{
				Name:        "tab-width",
				Usage:       "columns per indentation level (overrides editor.tab_width)",
				Destination: &cmd.tabWidth,
			},
			&cli.BoolFlag{
				Name:        "tabs",
				Usage:       "indent with tabs rather than spaces (overrides editor.insert_spaces)",
				Destination: &cmd.tabs,
			},
			&cli.StringFlag{
				Name:        "blank",
				Usage:       "what continue does on a blank item: outdent or removeListItem",
				Destination: &cmd.blank,
			},
			&cli.StringSliceFlag{
				Name:        "marker",
				Usage:       "default marker, cycled by level (repeatable, overrides list.default_markers)",
				Destination: &cmd.markers,
			},
		},
		Action: cmd.run,
	})
	return app
}

// settings resolves the loaded config with any flag overrides.
func (cmd *editCmd) settings(c *cli.Command) (tabWidth int, insertSpaces bool, list listedit.Config, _ error) {
	cfg := cmd.flags.Config
	if cfg == nil {
		return 0, false, list, errors.New("config not loaded")
	}
	tabWidth = cfg.Editor.TabWidth
	insertSpaces = cfg.Editor.InsertSpaces
	list = cfg.List

	if c.IsSet("tab-width") {
		if cmd.tabWidth < 1 {
			return 0, false, list, fmt.Errorf("--tab-width must be at least 1, got %d", cmd.tabWidth)
		}
		tabWidth = cmd.tabWidth
	}
	if c.IsSet("tabs") {
		insertSpaces = !cmd.tabs
	}
	if c.IsSet("blank") {
		b, err := listedit.ParseBlankItemBehaviour(cmd.blank)
		if err != nil {
			return 0, false, list, err
		}
		list.BlankItemBehaviour = b
	}
	if c.IsSet("marker") {
		list.DefaultMarkers = cmd.markers
	}
	if err := list.Validate(); err != nil {
		return 0, false, list, err
	}
	return tabWidth, insertSpaces, list, nil
}

func (cmd *editCmd) run(ctx context.Context, c *cli.Command) error {
	logger := logutil.Component(cmd.name)

	tabWidth, insertSpaces, list, err := cmd.settings(c)
	if err != nil {
		return err
	}

	in, out, err := openStores(c, cmd.write)
	if err != nil {
		return err
	}
	text, err := readDocument(in)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	buf := textbuf.New(text, tabWidth, insertSpaces)
	sels, err := parseSelections(cmd.cursors, buf)
	if err != nil {
		return err
	}
	buf.SetSelections(sels...)

	var tx listedit.Transaction
	if err := cmd.op(buf, list, &tx); err != nil {
		return fmt.Errorf("%v: %w", cmd.name, err)
	}
	logger.Debug().
		Int("edits", len(tx.Edits)).
		Int("invocations", len(tx.Invocations)).
		Msg("applying transaction")
	if err := buf.Apply(tx); err != nil {
		return fmt.Errorf("apply %v: %w", cmd.name, err)
	}
	for _, sel := range buf.Selections() {
		logger.Info().Stringer("cursor", sel.Active).Msg("cursor after edit")
	}

	if err := writeDocument(out, buf.String()); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

type parseCmd struct {
	flags    *globalFlags
	tabWidth int
	detail   bool
}

func newParseCmd(flags *globalFlags) *parseCmd {
	return &parseCmd{flags: flags}
}

func (cmd *parseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "parse",
		Usage:     "Print how each line of a document is classified",
		UsageText: "mdlist parse [--detail] [FILE]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "tab-width",
				Usage:       "columns per indentation level (overrides editor.tab_width)",
				Destination: &cmd.tabWidth,
			},
			&cli.BoolFlag{
				Name:        "detail",
				Aliases:     []string{"v"},
				Usage:       "print every parsed field of list items",
				Destination: &cmd.detail,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *parseCmd) run(ctx context.Context, c *cli.Command) error {
	tabWidth := cmd.tabWidth
	if !c.IsSet("tab-width") && cmd.flags.Config != nil {
		tabWidth = cmd.flags.Config.Editor.TabWidth
	}

	in, _, err := openStores(c, false)
	if err != nil {
		return err
	}
	text, err := readDocument(in)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	format := "%d\t%v\n"
	if cmd.detail {
		format = "%d\t%+v\n"
	}
	lines := strings.Split(text, "\n")
	i := 0
	return textio.WriteLines(c.Root().Writer, func(w io.Writer) bool {
		if i >= len(lines) {
			return false
		}
		if item, ok := scandown.Parse(lines[i], tabWidth); ok {
			fmt.Fprintf(w, format, i+1, item)
		} else {
			fmt.Fprintf(w, "%d\ttext %q\n", i+1, lines[i])
		}
		i++
		return true
	})
}

type outlineCmd struct{}

func newOutlineCmd() *outlineCmd { return &outlineCmd{} }

func (cmd *outlineCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "outline",
		Usage:     "Print the heading and list structure of a document",
		UsageText: "mdlist outline [FILE]",
		Action:    cmd.run,
	})
	return app
}

func (cmd *outlineCmd) run(ctx context.Context, c *cli.Command) error {
	in, _, err := openStores(c, false)
	if err != nil {
		return err
	}
	text, err := readDocument(in)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	return writeOutline(c.Root().Writer, []byte(text))
}
