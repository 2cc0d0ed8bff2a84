package interpreter

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/smarthome-go/lox/lox/interpreter/value"
)

// Names further away than this are never suggested
const maxSuggestionDistance = 2

// The global variables of one interpreter.
// Globals can be defined and overwritten but are never removed.
type Globals struct {
	values map[string]value.Value
}

func NewGlobals() Globals {
	return Globals{
		values: make(map[string]value.Value),
	}
}

func (self *Globals) Get(name string) (value.Value, bool) {
	val, found := self.values[name]
	return val, found
}

// Creates or overwrites a global
func (self *Globals) Define(name string, val value.Value) {
	self.values[name] = val
}

// Overwrites an existing global, returns false if the global does not exist
func (self *Globals) Assign(name string, val value.Value) bool {
	if _, found := self.values[name]; !found {
		return false
	}
	self.values[name] = val
	return true
}

// Returns all global names in ascending order
func (self *Globals) Names() []string {
	names := make([]string, 0, len(self.values))
	for name := range self.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Returns the most similar existing global name
func (self *Globals) Suggest(name string) (string, bool) {
	best := ""
	bestDistance := maxSuggestionDistance + 1

	for _, candidate := range self.Names() {
		distance := levenshtein.ComputeDistance(name, candidate)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	return best, best != ""
}
