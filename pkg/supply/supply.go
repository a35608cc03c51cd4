// Package supply answers where each value of a list variable currently is. It stays current by
// listening to the same notifications the move engine sends to the score recalculation.
package supply

import (
	"log"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
)

// ListVariableStateSupply is the value state query service of a list variable
type ListVariableStateSupply interface {
	director.Director

	// Rebuilds the state from scratch by scanning every entity's list
	Initialize(solution *model.Solution)

	// Returns the solution the state was last initialized from
	Solution() *model.Solution

	Variable() model.ListVariable

	// Returns where the value currently is
	ElementPosition(value model.Value) model.ElementPosition

	// Returns the current size of the entity's list
	ListSize(entity model.Entity) int

	// Checks whether the element at entity.list[index] belongs to the immutable prefix
	IsPinned(entity model.Entity, index int) bool

	// Returns how many values of the solution are not held by any entity
	UnassignedCount() int
}

type listVariableState struct {
	director.Nop
	variable        model.ListVariable
	solution        *model.Solution
	positions       map[model.Value]model.PositionInList
	unassignedCount int
}

func NewListVariableStateSupply(variable model.ListVariable) ListVariableStateSupply {
	return &listVariableState{
		variable:  variable,
		positions: make(map[model.Value]model.PositionInList),
	}
}

func (state *listVariableState) Initialize(solution *model.Solution) {
	state.solution = solution
	clear(state.positions)
	for _, entity := range solution.Entities {
		for index, element := range state.variable.Elements(entity) {
			if previous, ok := state.positions[element]; ok {
				log.Panicf("value %v appears twice in list variable \"%v\": at %v and at %v", element, state.variable.Name(), previous, model.Assigned(entity, index))
			}
			state.positions[element] = model.Assigned(entity, index)
		}
	}
	state.unassignedCount = len(solution.Values) - len(state.positions)
}

func (state *listVariableState) ElementPosition(value model.Value) model.ElementPosition {
	if position, ok := state.positions[value]; ok {
		return position
	}
	return model.Unassigned()
}

func (state *listVariableState) ListSize(entity model.Entity) int {
	return model.ListSize(state.variable, entity)
}

func (state *listVariableState) IsPinned(entity model.Entity, index int) bool {
	if !state.variable.SupportsPinning() {
		return false
	}
	return state.variable.IsEntityPinned(entity) || index < state.variable.FirstUnpinnedIndex(entity)
}

func (state *listVariableState) Solution() *model.Solution {
	return state.solution
}

func (state *listVariableState) Variable() model.ListVariable {
	return state.variable
}

func (state *listVariableState) UnassignedCount() int {
	return state.unassignedCount
}

// Re-indexes the changed range and every shifted element after it, stopping at the first element past
// the range whose recorded position is already correct
func (state *listVariableState) AfterListVariableChanged(_ model.ListVariable, entity model.Entity, fromIndex, toIndex int) {
	elements := state.variable.Elements(entity)
	for index := fromIndex; index < len(elements); index++ {
		position := model.Assigned(entity, index)
		if previous, ok := state.positions[elements[index]]; ok && index >= toIndex && previous == position {
			break
		}
		state.positions[elements[index]] = position
	}
}

func (state *listVariableState) AfterListVariableElementAssigned(_ model.ListVariable, element model.Value) {
	if _, ok := state.positions[element]; !ok {
		log.Panicf("the state supply of list variable \"%v\" is corrupted: value %v was assigned but never placed in a list", state.variable.Name(), element)
	}
	state.unassignedCount--
}

func (state *listVariableState) AfterListVariableElementUnassigned(_ model.ListVariable, element model.Value) {
	if _, ok := state.positions[element]; !ok {
		log.Panicf("the state supply of list variable \"%v\" is corrupted: value %v was unassigned twice", state.variable.Name(), element)
	}
	delete(state.positions, element)
	state.unassignedCount++
}
