// Package testdomain provides a tiny list-variable domain model used by the tests of the engine packages.
package testdomain

import (
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/samber/lo"
)

type Value struct {
	Name string
}

func (value *Value) String() string {
	return value.Name
}

type Entity struct {
	Name       string
	Values     []model.Value
	PinToIndex int
	Pinned     bool
	Range      []model.Value
}

func (entity *Entity) String() string {
	return entity.Name
}

// Options toggles the optional domain rules of the variable built by NewVariable
type Options struct {
	Pinning          bool
	EntityValueRange bool
	AllowsUnassigned bool
}

func NewValues(names ...string) []*Value {
	return lo.Map(names, func(name string, _ int) *Value { return &Value{Name: name} })
}

func NewEntity(name string, values ...*Value) *Entity {
	return &Entity{
		Name:   name,
		Values: lo.Map(values, func(value *Value, _ int) model.Value { return value }),
	}
}

func NewVariable(options Options) model.ListVariable {
	descriptor := model.ListVariableDescriptor{
		Name:             "values",
		Get:              func(entity model.Entity) []model.Value { return entity.(*Entity).Values },
		Set:              func(entity model.Entity, elements []model.Value) { entity.(*Entity).Values = elements },
		AllowsUnassigned: options.AllowsUnassigned,
	}
	if options.Pinning {
		descriptor.PinnedEntity = func(entity model.Entity) bool { return entity.(*Entity).Pinned }
		descriptor.PinToIndex = func(entity model.Entity) int { return entity.(*Entity).PinToIndex }
	}
	if options.EntityValueRange {
		descriptor.ValueRange = func(entity model.Entity) []model.Value { return entity.(*Entity).Range }
	}
	return model.NewListVariable(descriptor)
}

func NewSolution(variable model.ListVariable, entities []*Entity, values []*Value) *model.Solution {
	return &model.Solution{
		Variable: variable,
		Entities: lo.Map(entities, func(entity *Entity, _ int) model.Entity { return entity }),
		Values:   lo.Map(values, func(value *Value, _ int) model.Value { return value }),
	}
}

// WithRange sets the entity's value range and returns the entity
func (entity *Entity) WithRange(values ...*Value) *Entity {
	entity.Range = lo.Map(values, func(value *Value, _ int) model.Value { return value })
	return entity
}

// Names renders values (or entities) by name, which keeps assertions readable
func Names[T any](objects []T) []string {
	return lo.Map(objects, func(object T, _ int) string {
		if stringer, ok := any(object).(interface{ String() string }); ok {
			return stringer.String()
		}
		return "?"
	})
}

// List renders the entity's current list by name
func (entity *Entity) List() []string {
	return Names(entity.Values)
}
