package move

import (
	"fmt"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
)

// ListAssignMove inserts an unassigned value at destination.list[destinationIndex]
type ListAssignMove struct {
	variable          model.ListVariable
	value             model.Value
	destinationEntity model.Entity
	destinationIndex  int
}

type listAssignKey struct {
	value             model.Value
	destinationEntity model.Entity
	destinationIndex  int
}

func NewListAssignMove(variable model.ListVariable, value model.Value, destinationEntity model.Entity, destinationIndex int) *ListAssignMove {
	return &ListAssignMove{
		variable:          variable,
		value:             value,
		destinationEntity: destinationEntity,
		destinationIndex:  destinationIndex,
	}
}

func (move *ListAssignMove) Value() model.Value {
	return move.value
}

func (move *ListAssignMove) Destination() model.PositionInList {
	return model.Assigned(move.destinationEntity, move.destinationIndex)
}

func (move *ListAssignMove) IsDoable() bool {
	if move.destinationIndex < 0 || move.destinationIndex > model.ListSize(move.variable, move.destinationEntity) {
		return false
	}
	return move.variable.IsValueRangeEntityIndependent() || move.variable.IsValueInRange(move.destinationEntity, move.value)
}

func (move *ListAssignMove) Execute(scoreDirector director.Director) {
	scoreDirector.BeforeListVariableElementAssigned(move.variable, move.value)
	scoreDirector.BeforeListVariableChanged(move.variable, move.destinationEntity, move.destinationIndex, move.destinationIndex)
	model.AddElement(move.variable, move.destinationEntity, move.destinationIndex, move.value)
	scoreDirector.AfterListVariableChanged(move.variable, move.destinationEntity, move.destinationIndex, move.destinationIndex+1)
	scoreDirector.AfterListVariableElementAssigned(move.variable, move.value)
}

func (move *ListAssignMove) CreateUndoMove() Move {
	undo := NewListUnassignMove(move.variable, move.destinationEntity, move.destinationIndex)
	undo.movedValue.get(func() model.Value { return move.value })
	return undo
}

func (move *ListAssignMove) Rebase(rebaser model.Rebaser) Move {
	return NewListAssignMove(move.variable, rebaser.Rebase(move.value), rebaser.Rebase(move.destinationEntity), move.destinationIndex)
}

func (move *ListAssignMove) PlanningEntities() []model.Entity {
	return []model.Entity{move.destinationEntity}
}

func (move *ListAssignMove) PlanningValues() []model.Value {
	return []model.Value{move.value}
}

func (move *ListAssignMove) key() any {
	return listAssignKey{move.value, move.destinationEntity, move.destinationIndex}
}

func (move *ListAssignMove) String() string {
	return fmt.Sprintf("%v {null->%v}", move.value, move.Destination())
}

// ListUnassignMove removes the value at source.list[sourceIndex], leaving it unassigned
type ListUnassignMove struct {
	variable     model.ListVariable
	sourceEntity model.Entity
	sourceIndex  int
	movedValue   resolvedOnce[model.Value]
}

type listUnassignKey struct {
	sourceEntity model.Entity
	sourceIndex  int
}

func NewListUnassignMove(variable model.ListVariable, sourceEntity model.Entity, sourceIndex int) *ListUnassignMove {
	return &ListUnassignMove{
		variable:     variable,
		sourceEntity: sourceEntity,
		sourceIndex:  sourceIndex,
	}
}

func (move *ListUnassignMove) Source() model.PositionInList {
	return model.Assigned(move.sourceEntity, move.sourceIndex)
}

func (move *ListUnassignMove) MovedValue() model.Value {
	return move.movedValue.get(func() model.Value {
		return model.Element(move.variable, move.sourceEntity, move.sourceIndex)
	})
}

func (move *ListUnassignMove) IsDoable() bool {
	return indexInList(move.variable, move.sourceEntity, move.sourceIndex)
}

func (move *ListUnassignMove) Execute(scoreDirector director.Director) {
	value := move.MovedValue()
	scoreDirector.BeforeListVariableElementUnassigned(move.variable, value)
	scoreDirector.BeforeListVariableChanged(move.variable, move.sourceEntity, move.sourceIndex, move.sourceIndex+1)
	model.RemoveElement(move.variable, move.sourceEntity, move.sourceIndex)
	scoreDirector.AfterListVariableChanged(move.variable, move.sourceEntity, move.sourceIndex, move.sourceIndex)
	scoreDirector.AfterListVariableElementUnassigned(move.variable, value)
}

func (move *ListUnassignMove) CreateUndoMove() Move {
	return NewListAssignMove(move.variable, move.MovedValue(), move.sourceEntity, move.sourceIndex)
}

func (move *ListUnassignMove) Rebase(rebaser model.Rebaser) Move {
	return NewListUnassignMove(move.variable, rebaser.Rebase(move.sourceEntity), move.sourceIndex)
}

func (move *ListUnassignMove) PlanningEntities() []model.Entity {
	return []model.Entity{move.sourceEntity}
}

func (move *ListUnassignMove) PlanningValues() []model.Value {
	return []model.Value{move.MovedValue()}
}

func (move *ListUnassignMove) key() any {
	return listUnassignKey{move.sourceEntity, move.sourceIndex}
}

func (move *ListUnassignMove) String() string {
	return fmt.Sprintf("%v {%v->null}", move.MovedValue(), move.Source())
}
