// Package director defines the notification contract between the move engine and the incremental
// score recalculation that observes the working solution.
package director

import "github.com/limaJavier/listmoves/pkg/model"

// Director is notified around every mutation of a list variable. For each mutation the move engine calls
// BeforeListVariableChanged, mutates the list, then calls AfterListVariableChanged with the half-open
// range of indices whose contents changed: the before-range in pre-mutation indices, the after-range in
// post-mutation indices. Values entering or leaving the lists are additionally bracketed by the
// assigned/unassigned notifications.
type Director interface {
	BeforeListVariableChanged(variable model.ListVariable, entity model.Entity, fromIndex, toIndex int)
	AfterListVariableChanged(variable model.ListVariable, entity model.Entity, fromIndex, toIndex int)

	BeforeListVariableElementAssigned(variable model.ListVariable, element model.Value)
	AfterListVariableElementAssigned(variable model.ListVariable, element model.Value)

	BeforeListVariableElementUnassigned(variable model.ListVariable, element model.Value)
	AfterListVariableElementUnassigned(variable model.ListVariable, element model.Value)

	// Flushes pending shadow-variable updates once a move has been completely executed
	TriggerVariableListeners()
}

type multiDirector struct {
	directors []Director
}

// Multi fans every notification out to the given directors, in order
func Multi(directors ...Director) Director {
	return &multiDirector{directors: directors}
}

func (multi *multiDirector) BeforeListVariableChanged(variable model.ListVariable, entity model.Entity, fromIndex, toIndex int) {
	for _, director := range multi.directors {
		director.BeforeListVariableChanged(variable, entity, fromIndex, toIndex)
	}
}

func (multi *multiDirector) AfterListVariableChanged(variable model.ListVariable, entity model.Entity, fromIndex, toIndex int) {
	for _, director := range multi.directors {
		director.AfterListVariableChanged(variable, entity, fromIndex, toIndex)
	}
}

func (multi *multiDirector) BeforeListVariableElementAssigned(variable model.ListVariable, element model.Value) {
	for _, director := range multi.directors {
		director.BeforeListVariableElementAssigned(variable, element)
	}
}

func (multi *multiDirector) AfterListVariableElementAssigned(variable model.ListVariable, element model.Value) {
	for _, director := range multi.directors {
		director.AfterListVariableElementAssigned(variable, element)
	}
}

func (multi *multiDirector) BeforeListVariableElementUnassigned(variable model.ListVariable, element model.Value) {
	for _, director := range multi.directors {
		director.BeforeListVariableElementUnassigned(variable, element)
	}
}

func (multi *multiDirector) AfterListVariableElementUnassigned(variable model.ListVariable, element model.Value) {
	for _, director := range multi.directors {
		director.AfterListVariableElementUnassigned(variable, element)
	}
}

func (multi *multiDirector) TriggerVariableListeners() {
	for _, director := range multi.directors {
		director.TriggerVariableListeners()
	}
}

// Find returns the first director of type T that accepts, looking through the directors Multi fans out to
func Find[T any](scoreDirector Director, accept func(T) bool) (T, bool) {
	if multi, ok := scoreDirector.(*multiDirector); ok {
		for _, director := range multi.directors {
			if found, ok := Find(director, accept); ok {
				return found, true
			}
		}
	}
	if found, ok := scoreDirector.(T); ok && accept(found) {
		return found, true
	}
	var zero T
	return zero, false
}

// Nop ignores every notification
type Nop struct{}

func (Nop) BeforeListVariableChanged(model.ListVariable, model.Entity, int, int) {}
func (Nop) AfterListVariableChanged(model.ListVariable, model.Entity, int, int)  {}
func (Nop) BeforeListVariableElementAssigned(model.ListVariable, model.Value)    {}
func (Nop) AfterListVariableElementAssigned(model.ListVariable, model.Value)     {}
func (Nop) BeforeListVariableElementUnassigned(model.ListVariable, model.Value)  {}
func (Nop) AfterListVariableElementUnassigned(model.ListVariable, model.Value)   {}
func (Nop) TriggerVariableListeners()                                            {}
