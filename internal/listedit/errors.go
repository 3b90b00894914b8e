package listedit

import "errors"

// Contract violations; an operation returning one of these must be abandoned.
var (
	ErrNotListItem = errors.New("line is not a list item")
	ErrNotOrdered  = errors.New("marker is not ordered")
	ErrLineRange   = errors.New("line out of range")
	ErrLevel       = errors.New("negative indentation level")
)
