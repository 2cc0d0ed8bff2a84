package resolver

import "github.com/smarthome-go/lox/lox/errors"

// Identifies one occurrence of a name in the source
type Key struct {
	Name     string
	Filename string
	Line     uint
	Column   uint
}

func KeyOf(name string, span errors.Span) Key {
	return Key{
		Name:     name,
		Filename: span.Filename,
		Line:     span.Start.Line,
		Column:   span.Start.Column,
	}
}

// Position of a local variable relative to the frame which is active where it is referenced
type Local struct {
	// Number of enclosing-frame hops
	Depth int
	// Slot index inside the target frame
	Index int
}

// Maps every resolved occurrence of a local variable to its position.
// Occurrences without an entry refer to globals.
type Table map[Key]Local

func NewTable() Table {
	return make(Table)
}

func (self Table) Lookup(name string, span errors.Span) (Local, bool) {
	local, found := self[KeyOf(name, span)]
	return local, found
}

func (self Table) set(name string, span errors.Span, local Local) {
	self[KeyOf(name, span)] = local
}
