package selector

import (
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/supply"
)

//** Original

type originalValueSelector struct {
	values func() []model.Value
}

// NewOriginalValueSelector iterates the solution's values in order
func NewOriginalValueSelector(solution *model.Solution) ValueSelector {
	return &originalValueSelector{values: func() []model.Value { return solution.Values }}
}

// NewFixedValueSelector iterates the given values in order
func NewFixedValueSelector(values []model.Value) ValueSelector {
	values = slices.Clone(values)
	return &originalValueSelector{values: func() []model.Value { return values }}
}

func (selector *originalValueSelector) Iterate() iter.Seq[model.Value] {
	return func(yield func(model.Value) bool) {
		for _, value := range selector.values() {
			if !yield(value) {
				return
			}
		}
	}
}

func (selector *originalValueSelector) Size() int64 {
	return int64(len(selector.values()))
}

func (selector *originalValueSelector) IsNeverEnding() bool {
	return false
}

//** Random

type randomValueSelector struct {
	solution *model.Solution
	random   *rand.Rand
}

// NewRandomValueSelector draws values uniformly, forever
func NewRandomValueSelector(solution *model.Solution, random *rand.Rand) ValueSelector {
	return &randomValueSelector{solution: solution, random: random}
}

func (selector *randomValueSelector) Iterate() iter.Seq[model.Value] {
	return func(yield func(model.Value) bool) {
		values := selector.solution.Values
		if len(values) == 0 {
			return
		}
		for yield(values[selector.random.IntN(len(values))]) {
		}
	}
}

func (selector *randomValueSelector) Size() int64 {
	return int64(len(selector.solution.Values))
}

func (selector *randomValueSelector) IsNeverEnding() bool {
	return true
}

//** Pin filter

type movableValueSelector struct {
	child  ValueSelector
	supply supply.ListVariableStateSupply
}

// FilterPinnedValues drops the values currently assigned inside a pinned part of a list. When the variable
// does not support pinning the child is returned unwrapped, which saves a position lookup per value.
func FilterPinnedValues(child ValueSelector, variable model.ListVariable, stateSupply supply.ListVariableStateSupply) ValueSelector {
	if !variable.SupportsPinning() {
		return child
	}
	return &movableValueSelector{child: child, supply: stateSupply}
}

func (selector *movableValueSelector) Iterate() iter.Seq[model.Value] {
	return filtered(selector.child, selector.isMovable)
}

func (selector *movableValueSelector) isMovable(value model.Value) bool {
	switch position := selector.supply.ElementPosition(value).(type) {
	case model.PositionInList:
		return !selector.supply.IsPinned(position.Entity, position.Index)
	case model.UnassignedPosition:
		return true
	default:
		return false
	}
}

func (selector *movableValueSelector) Size() int64 {
	if selector.child.IsNeverEnding() {
		return selector.child.Size()
	}
	return count[model.Value](selector)
}

func (selector *movableValueSelector) IsNeverEnding() bool {
	return selector.child.IsNeverEnding()
}
