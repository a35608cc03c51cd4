package model

import (
	"log"
	"slices"
)

// ListVariable describes one list planning variable of the domain model. It gives access to the
// ordered values each entity holds and to the domain rules (pinning, value ranges) that moves must honor.
type ListVariable interface {
	// Returns the variable's name, used for diagnostics
	Name() string

	// Returns the current list of the entity. Callers must not keep the slice across mutations
	Elements(entity Entity) []Value

	// Replaces the list of the entity
	SetElements(entity Entity, elements []Value)

	// Checks whether a value may belong to no entity at all
	AllowsUnassignedValues() bool

	// Checks whether the domain model declares pinning for this variable
	SupportsPinning() bool

	// Checks whether the whole list of the entity is immutable
	IsEntityPinned(entity Entity) bool

	// Returns the length of the immutable prefix of the entity's list
	FirstUnpinnedIndex(entity Entity) int

	// Checks whether every entity accepts every value (i.e. the value range is global)
	IsValueRangeEntityIndependent() bool

	// Checks whether the entity's value range accepts the value
	IsValueInRange(entity Entity, value Value) bool
}

// ListVariableDescriptor binds a ListVariable to the accessors of a concrete domain model.
// Get and Set are mandatory; a nil PinToIndex/PinnedEntity disables pinning and a nil ValueRange
// makes the value range entity independent.
type ListVariableDescriptor struct {
	Name             string
	Get              func(entity Entity) []Value
	Set              func(entity Entity, elements []Value)
	PinnedEntity     func(entity Entity) bool
	PinToIndex       func(entity Entity) int
	ValueRange       func(entity Entity) []Value
	AllowsUnassigned bool
}

type listVariableImplementation struct {
	descriptor ListVariableDescriptor
}

func NewListVariable(descriptor ListVariableDescriptor) ListVariable {
	if descriptor.Get == nil || descriptor.Set == nil {
		log.Panicf("list variable \"%v\" requires both a getter and a setter", descriptor.Name)
	}
	return &listVariableImplementation{
		descriptor: descriptor,
	}
}

func (variable *listVariableImplementation) Name() string {
	return variable.descriptor.Name
}

func (variable *listVariableImplementation) Elements(entity Entity) []Value {
	return variable.descriptor.Get(entity)
}

func (variable *listVariableImplementation) SetElements(entity Entity, elements []Value) {
	variable.descriptor.Set(entity, elements)
}

func (variable *listVariableImplementation) AllowsUnassignedValues() bool {
	return variable.descriptor.AllowsUnassigned
}

func (variable *listVariableImplementation) SupportsPinning() bool {
	return variable.descriptor.PinnedEntity != nil || variable.descriptor.PinToIndex != nil
}

func (variable *listVariableImplementation) IsEntityPinned(entity Entity) bool {
	return variable.descriptor.PinnedEntity != nil && variable.descriptor.PinnedEntity(entity)
}

func (variable *listVariableImplementation) FirstUnpinnedIndex(entity Entity) int {
	if variable.IsEntityPinned(entity) {
		return len(variable.Elements(entity))
	}
	if variable.descriptor.PinToIndex == nil {
		return 0
	}
	return variable.descriptor.PinToIndex(entity)
}

func (variable *listVariableImplementation) IsValueRangeEntityIndependent() bool {
	return variable.descriptor.ValueRange == nil
}

func (variable *listVariableImplementation) IsValueInRange(entity Entity, value Value) bool {
	if variable.descriptor.ValueRange == nil {
		return true
	}
	return slices.Contains(variable.descriptor.ValueRange(entity), value)
}

func (variable *listVariableImplementation) String() string {
	return variable.descriptor.Name
}
