package selector

import (
	"fmt"
	"iter"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/limaJavier/listmoves/pkg/supply"
)

type listChangeMoveSelector struct {
	values       ValueSelector
	destinations DestinationSelector
	variable     model.ListVariable
	supply       supply.ListVariableStateSupply
	random       bool
}

// NewListChangeMoveSelector pairs values with destinations. Original selection nests destinations inside
// values; random selection pairs one draw of each.
func NewListChangeMoveSelector(values ValueSelector, destinations DestinationSelector, variable model.ListVariable, stateSupply supply.ListVariableStateSupply, random bool) (MoveSelector, error) {
	if values == nil || destinations == nil || stateSupply == nil {
		return nil, fmt.Errorf("list change move selector of \"%v\": %w: value selector, destination selector and state supply are required", variable.Name(), ErrMissingCollaborator)
	}
	if !random && (values.IsNeverEnding() || destinations.IsNeverEnding()) {
		return nil, fmt.Errorf("list change move selector of \"%v\": %w", variable.Name(), ErrNeverEndingChild)
	}
	return &listChangeMoveSelector{
		values:       values,
		destinations: destinations,
		variable:     variable,
		supply:       stateSupply,
		random:       random,
	}, nil
}

func (selector *listChangeMoveSelector) Iterate() iter.Seq[move.Move] {
	if selector.random {
		return func(yield func(move.Move) bool) {
			for value, destination := range paired(selector.values, selector.destinations) {
				if !yield(buildListChangeMove(selector.variable, selector.supply, value, destination)) {
					return
				}
			}
		}
	}
	return func(yield func(move.Move) bool) {
		for value := range selector.values.Iterate() {
			for destination := range selector.destinations.Iterate() {
				if !yield(buildListChangeMove(selector.variable, selector.supply, value, destination)) {
					return
				}
			}
		}
	}
}

func (selector *listChangeMoveSelector) Size() int64 {
	return selector.values.Size() * selector.destinations.Size()
}

func (selector *listChangeMoveSelector) IsNeverEnding() bool {
	return selector.random || selector.values.IsNeverEnding() || selector.destinations.IsNeverEnding()
}

// Advances both selectors together, one selection each per pair, until either runs out
func paired[L, R any](left Selector[L], right Selector[R]) iter.Seq2[L, R] {
	return func(yield func(L, R) bool) {
		nextLeft, stopLeft := iter.Pull(left.Iterate())
		defer stopLeft()
		nextRight, stopRight := iter.Pull(right.Iterate())
		defer stopRight()

		for {
			leftSelection, ok := nextLeft()
			if !ok {
				return
			}
			rightSelection, ok := nextRight()
			if !ok {
				return
			}
			if !yield(leftSelection, rightSelection) {
				return
			}
		}
	}
}
