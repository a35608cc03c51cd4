package move

import (
	"fmt"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
)

// ListChangeMove relocates the value at source.list[sourceIndex] to destination.list[destinationIndex].
// When both entities are the same, destinationIndex is an index of the list after the value was detached.
type ListChangeMove struct {
	variable          model.ListVariable
	sourceEntity      model.Entity
	sourceIndex       int
	destinationEntity model.Entity
	destinationIndex  int
	movedValue        resolvedOnce[model.Value]
}

type listChangeKey struct {
	sourceEntity      model.Entity
	sourceIndex       int
	destinationEntity model.Entity
	destinationIndex  int
}

func NewListChangeMove(variable model.ListVariable, sourceEntity model.Entity, sourceIndex int, destinationEntity model.Entity, destinationIndex int) *ListChangeMove {
	return &ListChangeMove{
		variable:          variable,
		sourceEntity:      sourceEntity,
		sourceIndex:       sourceIndex,
		destinationEntity: destinationEntity,
		destinationIndex:  destinationIndex,
	}
}

func (move *ListChangeMove) Source() model.PositionInList {
	return model.Assigned(move.sourceEntity, move.sourceIndex)
}

func (move *ListChangeMove) Destination() model.PositionInList {
	return model.Assigned(move.destinationEntity, move.destinationIndex)
}

// MovedValue returns the relocated value, reading it from the source list on first use
func (move *ListChangeMove) MovedValue() model.Value {
	return move.movedValue.get(func() model.Value {
		return model.Element(move.variable, move.sourceEntity, move.sourceIndex)
	})
}

func (move *ListChangeMove) IsDoable() bool {
	sameEntity := move.sourceEntity == move.destinationEntity
	if sameEntity && move.sourceIndex == move.destinationIndex {
		return false
	}

	sourceSize := model.ListSize(move.variable, move.sourceEntity)
	if move.sourceIndex < 0 || move.sourceIndex >= sourceSize || move.destinationIndex < 0 {
		return false
	}
	if sameEntity {
		return move.destinationIndex < sourceSize
	}

	if move.destinationIndex > model.ListSize(move.variable, move.destinationEntity) {
		return false
	}
	return move.variable.IsValueRangeEntityIndependent() || move.variable.IsValueInRange(move.destinationEntity, move.MovedValue())
}

func (move *ListChangeMove) Execute(scoreDirector director.Director) {
	value := move.MovedValue()

	if move.sourceEntity == move.destinationEntity {
		fromIndex := min(move.sourceIndex, move.destinationIndex)
		toIndex := max(move.sourceIndex, move.destinationIndex) + 1
		scoreDirector.BeforeListVariableChanged(move.variable, move.sourceEntity, fromIndex, toIndex)
		model.RemoveElement(move.variable, move.sourceEntity, move.sourceIndex)
		model.AddElement(move.variable, move.destinationEntity, move.destinationIndex, value)
		scoreDirector.AfterListVariableChanged(move.variable, move.sourceEntity, fromIndex, toIndex)
		return
	}

	scoreDirector.BeforeListVariableChanged(move.variable, move.sourceEntity, move.sourceIndex, move.sourceIndex+1)
	model.RemoveElement(move.variable, move.sourceEntity, move.sourceIndex)
	scoreDirector.AfterListVariableChanged(move.variable, move.sourceEntity, move.sourceIndex, move.sourceIndex)

	scoreDirector.BeforeListVariableChanged(move.variable, move.destinationEntity, move.destinationIndex, move.destinationIndex)
	model.AddElement(move.variable, move.destinationEntity, move.destinationIndex, value)
	scoreDirector.AfterListVariableChanged(move.variable, move.destinationEntity, move.destinationIndex, move.destinationIndex+1)
}

func (move *ListChangeMove) CreateUndoMove() Move {
	undo := NewListChangeMove(move.variable, move.destinationEntity, move.destinationIndex, move.sourceEntity, move.sourceIndex)
	if move.movedValue.resolved {
		undo.movedValue = move.movedValue
	}
	return undo
}

func (move *ListChangeMove) Rebase(rebaser model.Rebaser) Move {
	return NewListChangeMove(move.variable, rebaser.Rebase(move.sourceEntity), move.sourceIndex, rebaser.Rebase(move.destinationEntity), move.destinationIndex)
}

func (move *ListChangeMove) PlanningEntities() []model.Entity {
	return uniqueEntities(move.sourceEntity, move.destinationEntity)
}

func (move *ListChangeMove) PlanningValues() []model.Value {
	return []model.Value{move.MovedValue()}
}

func (move *ListChangeMove) key() any {
	return listChangeKey{move.sourceEntity, move.sourceIndex, move.destinationEntity, move.destinationIndex}
}

func (move *ListChangeMove) String() string {
	return fmt.Sprintf("%v {%v->%v}", move.MovedValue(), move.Source(), move.Destination())
}
