package resolver

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
)

type variableKind uint8

const (
	variableKindVariable variableKind = iota
	variableKindParameter
	variableKindFunction
	variableKindClass
	// `this` and `super` are never reported as unused
	variableKindImplicit
)

func (self variableKind) String() string {
	switch self {
	case variableKindVariable:
		return "local variable"
	case variableKindParameter:
		return "parameter"
	case variableKindFunction:
		return "local function"
	case variableKindClass:
		return "local class"
	case variableKindImplicit:
		return "implicit variable"
	default:
		panic("A new variable kind was added without updating this code")
	}
}

type variable struct {
	name    string
	index   int
	defined bool
	used    bool
	kind    variableKind
	span    errors.Span
}

// Mirrors one runtime frame
type scope struct {
	variables map[string]*variable
	// Declaration order, used for deterministic diagnostics
	order []*variable
}

func newScope() *scope {
	return &scope{
		variables: make(map[string]*variable),
		order:     make([]*variable, 0),
	}
}

func (self *scope) get(name string) (*variable, bool) {
	item, found := self.variables[name]
	return item, found
}

// Adds a new variable which occupies the next free slot
func (self *scope) add(name string, kind variableKind, span errors.Span) *variable {
	item := &variable{
		name:    name,
		index:   len(self.order),
		defined: false,
		used:    false,
		kind:    kind,
		span:    span,
	}
	self.variables[name] = item
	self.order = append(self.order, item)
	return item
}

func (self *scope) String() string {
	return fmt.Sprintf("scope(%d variables)", len(self.order))
}
