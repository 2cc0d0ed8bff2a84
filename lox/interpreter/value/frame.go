package value

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// A frame stores the local variables of one block, call or class scope.
// Slots are addressed positionally; the positions are computed ahead of time by the resolver.
// Frames are shared: every closure created while a frame is active keeps a pointer to it,
// so a write through one holder is visible to all others.
type Frame struct {
	values    []Value
	enclosing *Frame
}

func NewFrame(enclosing *Frame) *Frame {
	return &Frame{
		values:    make([]Value, 0),
		enclosing: enclosing,
	}
}

func (self *Frame) Enclosing() *Frame { return self.enclosing }
func (self *Frame) Len() int          { return len(self.values) }

// Appends a new slot
func (self *Frame) Define(value Value) {
	self.values = append(self.values, value)
}

func (self *Frame) ancestor(depth int) *Frame {
	frame := self
	for hop := 0; hop < depth; hop++ {
		if frame.enclosing == nil {
			panic(fmt.Sprintf("Frame ancestor not found at depth %d (only %d enclosing frames exist)", depth, hop))
		}
		frame = frame.enclosing
	}
	return frame
}

func (self *Frame) slot(depth int, index int) *Frame {
	frame := self.ancestor(depth)
	if index < 0 || index >= len(frame.values) {
		panic(fmt.Sprintf("Slot %d at depth %d was never defined, frame contents: %s", index, depth, spew.Sdump(frame.values)))
	}
	return frame
}

func (self *Frame) GetAt(depth int, index int) Value {
	return self.slot(depth, index).values[index]
}

func (self *Frame) AssignAt(depth int, index int, value Value) {
	self.slot(depth, index).values[index] = value
}
