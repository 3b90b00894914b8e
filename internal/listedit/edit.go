package listedit

import "fmt"

// Edit replaces a range of the document with new text.
type Edit struct {
	Range Range
	Text  string
}

func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("insert@%v %q", e.Range, e.Text)
	}
	if e.Text == "" {
		return fmt.Sprintf("delete@%v", e.Range)
	}
	return fmt.Sprintf("replace@%v %q", e.Range, e.Text)
}

// Command names a host command that operations fall back to when they decline
// to handle some selections themselves.
type Command int

const (
	noCommand Command = iota
	// DefaultIndent performs the host's ordinary line indent.
	DefaultIndent
	// DefaultOutdent performs the host's ordinary line outdent.
	DefaultOutdent
	// TypeNewline inserts a literal newline at each cursor, as if typed.
	TypeNewline
)

func (cmd Command) String() string {
	switch cmd {
	case DefaultIndent:
		return "defaultIndent"
	case DefaultOutdent:
		return "defaultOutdent"
	case TypeNewline:
		return "typeNewline"
	default:
		return fmt.Sprintf("InvalidCommand%d", int(cmd))
	}
}

// Invocation asks the host to run a command over some selections.
type Invocation struct {
	Command    Command
	Selections []Selection
}

// Transaction accumulates the edits and command invocations of an operation.
// All edit ranges refer to the document as it was before any of them are
// applied; the host applies everything together or not at all.
type Transaction struct {
	Edits       []Edit
	Invocations []Invocation
}

// Empty returns true if the transaction holds nothing to apply.
func (tx *Transaction) Empty() bool { return len(tx.Edits) == 0 && len(tx.Invocations) == 0 }

// Replace records replacement of r with text.
func (tx *Transaction) Replace(r Range, text string) { tx.Edits = append(tx.Edits, Edit{r, text}) }

// Insert records insertion of text at p.
func (tx *Transaction) Insert(p Position, text string) { tx.Replace(Range{p, p}, text) }

// Delete records deletion of r.
func (tx *Transaction) Delete(r Range) { tx.Replace(r, "") }

// Invoke records a command invocation over the given selections.
func (tx *Transaction) Invoke(cmd Command, sels []Selection) {
	tx.Invocations = append(tx.Invocations, Invocation{cmd, sels})
}

func (tx *Transaction) merge(other Transaction) {
	tx.Edits = append(tx.Edits, other.Edits...)
	tx.Invocations = append(tx.Invocations, other.Invocations...)
}
