package selector

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
)

type subListSwapMoveSelector struct {
	leftSubLists           SubListSelector
	rightSubLists          SubListSelector
	variable               model.ListVariable
	selectReversingMoveToo bool
	random                 *rand.Rand
}

// NewSubListSwapMoveSelector pairs runs with runs. A nil random means original selection, which skips
// pairing a run with itself.
func NewSubListSwapMoveSelector(leftSubLists, rightSubLists SubListSelector, variable model.ListVariable, selectReversingMoveToo bool, random *rand.Rand) (MoveSelector, error) {
	if leftSubLists == nil || rightSubLists == nil {
		return nil, fmt.Errorf("sub-list swap move selector of \"%v\": %w: both sub-list selectors are required", variable.Name(), ErrMissingCollaborator)
	}
	if random == nil && (leftSubLists.IsNeverEnding() || rightSubLists.IsNeverEnding()) {
		return nil, fmt.Errorf("sub-list swap move selector of \"%v\": %w", variable.Name(), ErrNeverEndingChild)
	}
	return &subListSwapMoveSelector{
		leftSubLists:           leftSubLists,
		rightSubLists:          rightSubLists,
		variable:               variable,
		selectReversingMoveToo: selectReversingMoveToo,
		random:                 random,
	}, nil
}

func (selector *subListSwapMoveSelector) Iterate() iter.Seq[move.Move] {
	if selector.random != nil {
		return func(yield func(move.Move) bool) {
			for left, right := range paired(selector.leftSubLists, selector.rightSubLists) {
				reversing := selector.selectReversingMoveToo && selector.random.IntN(2) == 1
				if !yield(move.NewSubListSwapMove(selector.variable, left, right, reversing)) {
					return
				}
			}
		}
	}
	return func(yield func(move.Move) bool) {
		for left := range selector.leftSubLists.Iterate() {
			for right := range selector.rightSubLists.Iterate() {
				if left == right {
					continue
				}
				if !yield(move.NewSubListSwapMove(selector.variable, left, right, false)) {
					return
				}
				if selector.selectReversingMoveToo && !yield(move.NewSubListSwapMove(selector.variable, left, right, true)) {
					return
				}
			}
		}
	}
}

func (selector *subListSwapMoveSelector) Size() int64 {
	size := selector.leftSubLists.Size() * selector.rightSubLists.Size()
	if selector.selectReversingMoveToo {
		size *= 2
	}
	return size
}

func (selector *subListSwapMoveSelector) IsNeverEnding() bool {
	return selector.random != nil
}
