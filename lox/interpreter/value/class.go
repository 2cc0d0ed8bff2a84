package value

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
)

const InitializerName = "init"

type ValueClass struct {
	NameInternal string
	// Is nil if the class has no superclass
	Superclass    *ValueClass
	Methods       map[string]*ValueFunction
	Getters       map[string]*ValueFunction
	StaticMethods map[string]*ValueFunction
}

func (_ *ValueClass) Kind() ValueKind { return ClassValueKind }

func (self *ValueClass) Display() string {
	return fmt.Sprintf("<class %s>", self.NameInternal)
}

func (self *ValueClass) IsEqual(other Value) bool {
	otherClass, ok := other.(*ValueClass)
	return ok && otherClass == self
}

func (self *ValueClass) Name() string { return self.NameInternal }

func (self *ValueClass) Arity() int {
	if init, found := self.FindMethod(InitializerName); found {
		return init.Arity()
	}
	return 0
}

// Calling a class constructs a new instance and runs the initializer if there is one
func (self *ValueClass) Call(runtime Runtime, arguments []Value, span errors.Span) (Value, *RuntimeError) {
	instance := NewValueInstance(self)

	if init, found := self.FindMethod(InitializerName); found {
		if _, err := init.Bind(instance).Call(runtime, arguments, span); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

// Looks up an instance method along the superclass chain
func (self *ValueClass) FindMethod(name string) (*ValueFunction, bool) {
	for class := self; class != nil; class = class.Superclass {
		if method, found := class.Methods[name]; found {
			return method, true
		}
	}
	return nil, false
}

// Looks up a method or getter along the superclass chain.
// On each level of the chain, methods take precedence over getters.
func (self *ValueClass) FindMember(name string) (member *ValueFunction, isGetter bool, found bool) {
	for class := self; class != nil; class = class.Superclass {
		if method, found := class.Methods[name]; found {
			return method, false, true
		}
		if getter, found := class.Getters[name]; found {
			return getter, true, true
		}
	}
	return nil, false, false
}

// Resolves `Class.name`, which refers to a static method
func (self *ValueClass) GetStatic(name string, span errors.Span) (Value, *RuntimeError) {
	for class := self; class != nil; class = class.Superclass {
		if method, found := class.StaticMethods[name]; found {
			return method, nil
		}
	}
	return nil, NewUndefinedPropertyError(span, name)
}

// Binds the member to `instance`; getters are invoked right away
func (self *ValueClass) BindMember(runtime Runtime, instance *ValueInstance, name string, span errors.Span) (Value, bool, *RuntimeError) {
	member, isGetter, found := self.FindMember(name)
	if !found {
		return nil, false, nil
	}

	bound := member.Bind(instance)
	if !isGetter {
		return bound, true, nil
	}

	result, err := runtime.Invoke(bound, make([]Value, 0), span)
	if err != nil {
		return nil, true, err
	}
	return result, true, nil
}

func NewValueClass(
	name string,
	superclass *ValueClass,
	methods map[string]*ValueFunction,
	getters map[string]*ValueFunction,
	staticMethods map[string]*ValueFunction,
) *ValueClass {
	return &ValueClass{
		NameInternal:  name,
		Superclass:    superclass,
		Methods:       methods,
		Getters:       getters,
		StaticMethods: staticMethods,
	}
}
