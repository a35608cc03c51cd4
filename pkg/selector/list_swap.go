package selector

import (
	"fmt"
	"iter"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/limaJavier/listmoves/pkg/supply"
)

type listSwapMoveSelector struct {
	leftValues  ValueSelector
	rightValues ValueSelector
	variable    model.ListVariable
	supply      supply.ListVariableStateSupply
	random      bool
}

func NewListSwapMoveSelector(leftValues, rightValues ValueSelector, variable model.ListVariable, stateSupply supply.ListVariableStateSupply, random bool) (MoveSelector, error) {
	if leftValues == nil || rightValues == nil || stateSupply == nil {
		return nil, fmt.Errorf("list swap move selector of \"%v\": %w: both value selectors and the state supply are required", variable.Name(), ErrMissingCollaborator)
	}
	if !random && (leftValues.IsNeverEnding() || rightValues.IsNeverEnding()) {
		return nil, fmt.Errorf("list swap move selector of \"%v\": %w", variable.Name(), ErrNeverEndingChild)
	}
	return &listSwapMoveSelector{
		leftValues:  leftValues,
		rightValues: rightValues,
		variable:    variable,
		supply:      stateSupply,
		random:      random,
	}, nil
}

func (selector *listSwapMoveSelector) Iterate() iter.Seq[move.Move] {
	if selector.random {
		return func(yield func(move.Move) bool) {
			for left, right := range paired(selector.leftValues, selector.rightValues) {
				if !yield(buildListSwapMove(selector.variable, selector.supply, left, right)) {
					return
				}
			}
		}
	}
	return func(yield func(move.Move) bool) {
		for left := range selector.leftValues.Iterate() {
			for right := range selector.rightValues.Iterate() {
				if !yield(buildListSwapMove(selector.variable, selector.supply, left, right)) {
					return
				}
			}
		}
	}
}

func (selector *listSwapMoveSelector) Size() int64 {
	return selector.leftValues.Size() * selector.rightValues.Size()
}

func (selector *listSwapMoveSelector) IsNeverEnding() bool {
	return selector.random || selector.leftValues.IsNeverEnding() || selector.rightValues.IsNeverEnding()
}
