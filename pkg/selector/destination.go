package selector

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/supply"
)

type elementDestinationSelector struct {
	entities EntitySelector
	values   ValueSelector
	variable model.ListVariable
	supply   supply.ListVariableStateSupply
	random   *rand.Rand
}

// NewElementDestinationSelector selects the places a value can be moved to: the first unpinned slot of
// each entity, the slot right after each assigned value and, when the variable allows it, the unassigned
// destination. Random selection draws from the same places, each with the same probability.
//
// The entity selector should skip pinned entities and the value selector pinned values; see
// FilterPinnedEntities and FilterPinnedValues.
func NewElementDestinationSelector(entities EntitySelector, values ValueSelector, variable model.ListVariable, stateSupply supply.ListVariableStateSupply, random *rand.Rand) (DestinationSelector, error) {
	if entities == nil || values == nil || stateSupply == nil {
		return nil, fmt.Errorf("element destination selector of \"%v\": %w: entity selector, value selector and state supply are required", variable.Name(), ErrMissingCollaborator)
	}
	if random == nil && (entities.IsNeverEnding() || values.IsNeverEnding()) {
		return nil, fmt.Errorf("element destination selector of \"%v\": %w", variable.Name(), ErrNeverEndingChild)
	}
	if random != nil && (!entities.IsNeverEnding() || !values.IsNeverEnding()) {
		return nil, fmt.Errorf("element destination selector of \"%v\": random selection requires random entity and value selectors", variable.Name())
	}
	return &elementDestinationSelector{
		entities: entities,
		values:   values,
		variable: variable,
		supply:   stateSupply,
		random:   random,
	}, nil
}

func (selector *elementDestinationSelector) Iterate() iter.Seq[model.ElementPosition] {
	if selector.random != nil {
		return selector.iterateRandomly()
	}
	return selector.iterateOriginally()
}

func (selector *elementDestinationSelector) iterateOriginally() iter.Seq[model.ElementPosition] {
	return func(yield func(model.ElementPosition) bool) {
		for entity := range selector.entities.Iterate() {
			if !yield(model.Assigned(entity, selector.variable.FirstUnpinnedIndex(entity))) {
				return
			}
		}
		for value := range selector.values.Iterate() {
			position, ok := selector.after(value)
			if ok && !yield(position) {
				return
			}
		}
		if selector.variable.AllowsUnassignedValues() {
			yield(model.Unassigned())
		}
	}
}

func (selector *elementDestinationSelector) iterateRandomly() iter.Seq[model.ElementPosition] {
	return func(yield func(model.ElementPosition) bool) {
		nextEntity, stopEntities := iter.Pull(selector.entities.Iterate())
		defer stopEntities()
		nextValue, stopValues := iter.Pull(selector.values.Iterate())
		defer stopValues()

		rejected := 0
		for {
			entityCount, valueCount := selector.entities.Size(), selector.values.Size()
			total := entityCount + valueCount
			if selector.variable.AllowsUnassignedValues() {
				total++
			}
			if total == 0 {
				return
			}

			var destination model.ElementPosition
			switch draw := selector.random.Int64N(total); {
			case draw < entityCount:
				entity, ok := nextEntity()
				if !ok {
					return
				}
				destination = model.Assigned(entity, selector.variable.FirstUnpinnedIndex(entity))
			case draw < entityCount+valueCount:
				value, ok := nextValue()
				if !ok {
					return
				}
				position, assigned := selector.after(value)
				if !assigned {
					// An unassigned value offers no place; draw again
					if rejected++; rejected > bailOutSize {
						return
					}
					continue
				}
				destination = position
			default:
				destination = model.Unassigned()
			}

			rejected = 0
			if !yield(destination) {
				return
			}
		}
	}
}

// Returns the slot right after the value, if the value is assigned
func (selector *elementDestinationSelector) after(value model.Value) (model.ElementPosition, bool) {
	position, ok := selector.supply.ElementPosition(value).(model.PositionInList)
	if !ok {
		return nil, false
	}
	return model.Assigned(position.Entity, position.Index+1), true
}

func (selector *elementDestinationSelector) Size() int64 {
	size := selector.entities.Size() + selector.values.Size()
	if selector.variable.AllowsUnassignedValues() {
		size++
	}
	return size
}

func (selector *elementDestinationSelector) IsNeverEnding() bool {
	return selector.random != nil
}
