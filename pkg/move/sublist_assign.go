package move

import (
	"fmt"
	"slices"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
)

// SubListUnassignMove detaches a run of values, leaving each of them unassigned
type SubListUnassignMove struct {
	variable    model.ListVariable
	source      model.SubList
	movedValues resolvedOnce[[]model.Value]
}

type subListUnassignKey struct {
	source model.SubList
}

func NewSubListUnassignMove(variable model.ListVariable, source model.SubList) *SubListUnassignMove {
	return &SubListUnassignMove{
		variable: variable,
		source:   source,
	}
}

func (move *SubListUnassignMove) Source() model.SubList {
	return move.source
}

func (move *SubListUnassignMove) MovedValues() []model.Value {
	return move.movedValues.get(func() []model.Value {
		return model.CopyRange(move.variable, move.source.Entity, move.source.FromIndex, move.source.ToIndex(), false)
	})
}

func (move *SubListUnassignMove) IsDoable() bool {
	return move.source.FitsIn(model.ListSize(move.variable, move.source.Entity))
}

// Each value gets its own unassigned notifications around the single change bracket
func (move *SubListUnassignMove) Execute(scoreDirector director.Director) {
	values := move.MovedValues()
	source := move.source

	for _, value := range values {
		scoreDirector.BeforeListVariableElementUnassigned(move.variable, value)
	}
	scoreDirector.BeforeListVariableChanged(move.variable, source.Entity, source.FromIndex, source.ToIndex())
	model.RemoveRange(move.variable, source.Entity, source.FromIndex, source.ToIndex())
	scoreDirector.AfterListVariableChanged(move.variable, source.Entity, source.FromIndex, source.FromIndex)
	for _, value := range values {
		scoreDirector.AfterListVariableElementUnassigned(move.variable, value)
	}
}

func (move *SubListUnassignMove) CreateUndoMove() Move {
	return NewSubListAssignMove(move.variable, move.MovedValues(), move.source.Entity, move.source.FromIndex)
}

func (move *SubListUnassignMove) Rebase(rebaser model.Rebaser) Move {
	return NewSubListUnassignMove(move.variable, move.source.Rebase(rebaser))
}

func (move *SubListUnassignMove) PlanningEntities() []model.Entity {
	return []model.Entity{move.source.Entity}
}

func (move *SubListUnassignMove) PlanningValues() []model.Value {
	return slices.Clone(move.MovedValues())
}

func (move *SubListUnassignMove) key() any {
	return subListUnassignKey{move.source}
}

func (move *SubListUnassignMove) String() string {
	return fmt.Sprintf("|%d| {%v[%d..%d]->null}", move.source.Length, move.source.Entity, move.source.FromIndex, move.source.ToIndex())
}

// SubListAssignMove inserts unassigned values, in order, at destination.list[destinationIndex]. It's the
// inverse of SubListUnassignMove: the per-value notifications are emitted last value first.
type SubListAssignMove struct {
	variable          model.ListVariable
	values            []model.Value
	destinationEntity model.Entity
	destinationIndex  int
}

type subListAssignKey struct {
	values            any
	destinationEntity model.Entity
	destinationIndex  int
}

func NewSubListAssignMove(variable model.ListVariable, values []model.Value, destinationEntity model.Entity, destinationIndex int) *SubListAssignMove {
	return &SubListAssignMove{
		variable:          variable,
		values:            slices.Clone(values),
		destinationEntity: destinationEntity,
		destinationIndex:  destinationIndex,
	}
}

func (move *SubListAssignMove) Values() []model.Value {
	return slices.Clone(move.values)
}

func (move *SubListAssignMove) Destination() model.PositionInList {
	return model.Assigned(move.destinationEntity, move.destinationIndex)
}

func (move *SubListAssignMove) IsDoable() bool {
	if len(move.values) == 0 || move.destinationIndex < 0 || move.destinationIndex > model.ListSize(move.variable, move.destinationEntity) {
		return false
	}
	return model.AllInRange(move.variable, move.destinationEntity, move.values)
}

func (move *SubListAssignMove) Execute(scoreDirector director.Director) {
	length := len(move.values)
	for index := length - 1; index >= 0; index-- {
		scoreDirector.BeforeListVariableElementAssigned(move.variable, move.values[index])
	}
	scoreDirector.BeforeListVariableChanged(move.variable, move.destinationEntity, move.destinationIndex, move.destinationIndex)
	model.AddAll(move.variable, move.destinationEntity, move.destinationIndex, slices.Clone(move.values))
	scoreDirector.AfterListVariableChanged(move.variable, move.destinationEntity, move.destinationIndex, move.destinationIndex+length)
	for index := length - 1; index >= 0; index-- {
		scoreDirector.AfterListVariableElementAssigned(move.variable, move.values[index])
	}
}

func (move *SubListAssignMove) CreateUndoMove() Move {
	undo := NewSubListUnassignMove(move.variable, model.NewSubList(move.destinationEntity, move.destinationIndex, len(move.values)))
	undo.movedValues.get(func() []model.Value { return slices.Clone(move.values) })
	return undo
}

func (move *SubListAssignMove) Rebase(rebaser model.Rebaser) Move {
	return NewSubListAssignMove(move.variable, rebaseAll(move.values, rebaser), rebaser.Rebase(move.destinationEntity), move.destinationIndex)
}

func (move *SubListAssignMove) PlanningEntities() []model.Entity {
	return []model.Entity{move.destinationEntity}
}

func (move *SubListAssignMove) PlanningValues() []model.Value {
	return slices.Clone(move.values)
}

func (move *SubListAssignMove) key() any {
	return subListAssignKey{chainOf(move.values), move.destinationEntity, move.destinationIndex}
}

func (move *SubListAssignMove) String() string {
	return fmt.Sprintf("|%d| {null->%v}", len(move.values), move.Destination())
}
