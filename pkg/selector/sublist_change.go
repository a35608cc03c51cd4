package selector

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
)

type subListChangeMoveSelector struct {
	subLists               SubListSelector
	destinations           DestinationSelector
	variable               model.ListVariable
	selectReversingMoveToo bool
	random                 *rand.Rand
}

// NewSubListChangeMoveSelector pairs runs with destinations. With selectReversingMoveToo, original
// selection yields every move twice, plain then reversed, and random selection reverses half of the draws.
// A nil random means original selection.
func NewSubListChangeMoveSelector(subLists SubListSelector, destinations DestinationSelector, variable model.ListVariable, selectReversingMoveToo bool, random *rand.Rand) (MoveSelector, error) {
	if subLists == nil || destinations == nil {
		return nil, fmt.Errorf("sub-list change move selector of \"%v\": %w: sub-list selector and destination selector are required", variable.Name(), ErrMissingCollaborator)
	}
	if random == nil && (subLists.IsNeverEnding() || destinations.IsNeverEnding()) {
		return nil, fmt.Errorf("sub-list change move selector of \"%v\": %w", variable.Name(), ErrNeverEndingChild)
	}
	return &subListChangeMoveSelector{
		subLists:               subLists,
		destinations:           destinations,
		variable:               variable,
		selectReversingMoveToo: selectReversingMoveToo,
		random:                 random,
	}, nil
}

func (selector *subListChangeMoveSelector) Iterate() iter.Seq[move.Move] {
	if selector.random != nil {
		return func(yield func(move.Move) bool) {
			for subList, destination := range paired(selector.subLists, selector.destinations) {
				reversing := selector.selectReversingMoveToo && selector.random.IntN(2) == 1
				if !yield(buildSubListChangeMove(selector.variable, subList, destination, reversing)) {
					return
				}
			}
		}
	}
	return func(yield func(move.Move) bool) {
		for subList := range selector.subLists.Iterate() {
			for destination := range selector.destinations.Iterate() {
				if !yield(buildSubListChangeMove(selector.variable, subList, destination, false)) {
					return
				}
				if selector.selectReversingMoveToo && model.IsAssigned(destination) &&
					!yield(buildSubListChangeMove(selector.variable, subList, destination, true)) {
					return
				}
			}
		}
	}
}

// Size is an upper bound, like the destination selector's: the unassigned destination has no reversed variant
func (selector *subListChangeMoveSelector) Size() int64 {
	subLists, destinations := selector.subLists.Size(), selector.destinations.Size()
	size := subLists * destinations
	if selector.selectReversingMoveToo {
		if selector.variable.AllowsUnassignedValues() {
			destinations--
		}
		size += subLists * destinations
	}
	return size
}

func (selector *subListChangeMoveSelector) IsNeverEnding() bool {
	return selector.random != nil
}
