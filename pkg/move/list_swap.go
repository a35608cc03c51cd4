package move

import (
	"fmt"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
)

// ListSwapMove exchanges the values at left.list[leftIndex] and right.list[rightIndex]
type ListSwapMove struct {
	variable    model.ListVariable
	leftEntity  model.Entity
	leftIndex   int
	rightEntity model.Entity
	rightIndex  int
	leftValue   resolvedOnce[model.Value]
	rightValue  resolvedOnce[model.Value]
}

type listSwapKey struct {
	leftEntity  model.Entity
	leftIndex   int
	rightEntity model.Entity
	rightIndex  int
}

func NewListSwapMove(variable model.ListVariable, leftEntity model.Entity, leftIndex int, rightEntity model.Entity, rightIndex int) *ListSwapMove {
	return &ListSwapMove{
		variable:    variable,
		leftEntity:  leftEntity,
		leftIndex:   leftIndex,
		rightEntity: rightEntity,
		rightIndex:  rightIndex,
	}
}

func (move *ListSwapMove) Left() model.PositionInList {
	return model.Assigned(move.leftEntity, move.leftIndex)
}

func (move *ListSwapMove) Right() model.PositionInList {
	return model.Assigned(move.rightEntity, move.rightIndex)
}

func (move *ListSwapMove) LeftValue() model.Value {
	return move.leftValue.get(func() model.Value {
		return model.Element(move.variable, move.leftEntity, move.leftIndex)
	})
}

func (move *ListSwapMove) RightValue() model.Value {
	return move.rightValue.get(func() model.Value {
		return model.Element(move.variable, move.rightEntity, move.rightIndex)
	})
}

func (move *ListSwapMove) IsDoable() bool {
	sameEntity := move.leftEntity == move.rightEntity
	if sameEntity && move.leftIndex == move.rightIndex {
		return false
	}
	if !indexInList(move.variable, move.leftEntity, move.leftIndex) || !indexInList(move.variable, move.rightEntity, move.rightIndex) {
		return false
	}
	if sameEntity || move.variable.IsValueRangeEntityIndependent() {
		return true
	}
	return move.variable.IsValueInRange(move.rightEntity, move.LeftValue()) &&
		move.variable.IsValueInRange(move.leftEntity, move.RightValue())
}

func (move *ListSwapMove) Execute(scoreDirector director.Director) {
	leftValue := move.LeftValue()
	rightValue := move.RightValue()

	if move.leftEntity == move.rightEntity {
		fromIndex := min(move.leftIndex, move.rightIndex)
		toIndex := max(move.leftIndex, move.rightIndex) + 1
		scoreDirector.BeforeListVariableChanged(move.variable, move.leftEntity, fromIndex, toIndex)
		model.SetElement(move.variable, move.leftEntity, move.leftIndex, rightValue)
		model.SetElement(move.variable, move.rightEntity, move.rightIndex, leftValue)
		scoreDirector.AfterListVariableChanged(move.variable, move.leftEntity, fromIndex, toIndex)
		return
	}

	scoreDirector.BeforeListVariableChanged(move.variable, move.leftEntity, move.leftIndex, move.leftIndex+1)
	model.SetElement(move.variable, move.leftEntity, move.leftIndex, rightValue)
	scoreDirector.AfterListVariableChanged(move.variable, move.leftEntity, move.leftIndex, move.leftIndex+1)

	scoreDirector.BeforeListVariableChanged(move.variable, move.rightEntity, move.rightIndex, move.rightIndex+1)
	model.SetElement(move.variable, move.rightEntity, move.rightIndex, leftValue)
	scoreDirector.AfterListVariableChanged(move.variable, move.rightEntity, move.rightIndex, move.rightIndex+1)
}

// The undo swaps right before left, which makes its notifications the mirror of this move's
func (move *ListSwapMove) CreateUndoMove() Move {
	undo := NewListSwapMove(move.variable, move.rightEntity, move.rightIndex, move.leftEntity, move.leftIndex)
	undo.leftValue, undo.rightValue = move.leftValue, move.rightValue
	return undo
}

func (move *ListSwapMove) Rebase(rebaser model.Rebaser) Move {
	return NewListSwapMove(move.variable, rebaser.Rebase(move.leftEntity), move.leftIndex, rebaser.Rebase(move.rightEntity), move.rightIndex)
}

func (move *ListSwapMove) PlanningEntities() []model.Entity {
	return uniqueEntities(move.leftEntity, move.rightEntity)
}

func (move *ListSwapMove) PlanningValues() []model.Value {
	return uniqueValues(move.LeftValue(), move.RightValue())
}

func (move *ListSwapMove) key() any {
	return listSwapKey{move.leftEntity, move.leftIndex, move.rightEntity, move.rightIndex}
}

func (move *ListSwapMove) String() string {
	return fmt.Sprintf("%v {%v} <-> %v {%v}", move.LeftValue(), move.Left(), move.RightValue(), move.Right())
}

func indexInList(variable model.ListVariable, entity model.Entity, index int) bool {
	return index >= 0 && index < model.ListSize(variable, entity)
}
