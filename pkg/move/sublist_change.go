package move

import (
	"fmt"
	"slices"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/samber/lo"
)

// SubListChangeMove detaches a run of values and inserts it, optionally reversed, at
// destination.list[destinationIndex]. When both entities are the same, destinationIndex is an index of
// the list after the run was detached.
type SubListChangeMove struct {
	variable          model.ListVariable
	source            model.SubList
	destinationEntity model.Entity
	destinationIndex  int
	reversing         bool
	movedValues       resolvedOnce[[]model.Value]
}

type subListChangeKey struct {
	source            model.SubList
	destinationEntity model.Entity
	destinationIndex  int
	reversing         bool
}

func NewSubListChangeMove(variable model.ListVariable, source model.SubList, destinationEntity model.Entity, destinationIndex int, reversing bool) *SubListChangeMove {
	return &SubListChangeMove{
		variable:          variable,
		source:            source,
		destinationEntity: destinationEntity,
		destinationIndex:  destinationIndex,
		reversing:         reversing,
	}
}

func (move *SubListChangeMove) Source() model.SubList {
	return move.source
}

func (move *SubListChangeMove) Destination() model.PositionInList {
	return model.Assigned(move.destinationEntity, move.destinationIndex)
}

func (move *SubListChangeMove) IsReversing() bool {
	return move.reversing
}

// MovedValues returns the run in its source order, reading it on first use
func (move *SubListChangeMove) MovedValues() []model.Value {
	return move.movedValues.get(func() []model.Value {
		return model.CopyRange(move.variable, move.source.Entity, move.source.FromIndex, move.source.ToIndex(), false)
	})
}

func (move *SubListChangeMove) IsDoable() bool {
	sourceSize := model.ListSize(move.variable, move.source.Entity)
	if !move.source.FitsIn(sourceSize) || move.destinationIndex < 0 {
		return false
	}

	if move.source.Entity == move.destinationEntity {
		if move.destinationIndex == move.source.FromIndex && (!move.reversing || move.source.Length == 1) {
			return false
		}
		return move.destinationIndex+move.source.Length <= sourceSize
	}

	if move.destinationIndex > model.ListSize(move.variable, move.destinationEntity) {
		return false
	}
	return model.AllInRange(move.variable, move.destinationEntity, move.MovedValues())
}

func (move *SubListChangeMove) Execute(scoreDirector director.Director) {
	move.MovedValues()
	source := move.source

	if source.Entity == move.destinationEntity {
		fromIndex := min(source.FromIndex, move.destinationIndex)
		toIndex := max(source.FromIndex, move.destinationIndex) + source.Length
		scoreDirector.BeforeListVariableChanged(move.variable, source.Entity, fromIndex, toIndex)
		values := model.RemoveRange(move.variable, source.Entity, source.FromIndex, source.ToIndex())
		model.AddAll(move.variable, source.Entity, move.destinationIndex, move.ordered(values))
		scoreDirector.AfterListVariableChanged(move.variable, source.Entity, fromIndex, toIndex)
		return
	}

	scoreDirector.BeforeListVariableChanged(move.variable, source.Entity, source.FromIndex, source.ToIndex())
	values := model.RemoveRange(move.variable, source.Entity, source.FromIndex, source.ToIndex())
	scoreDirector.AfterListVariableChanged(move.variable, source.Entity, source.FromIndex, source.FromIndex)

	scoreDirector.BeforeListVariableChanged(move.variable, move.destinationEntity, move.destinationIndex, move.destinationIndex)
	model.AddAll(move.variable, move.destinationEntity, move.destinationIndex, move.ordered(values))
	scoreDirector.AfterListVariableChanged(move.variable, move.destinationEntity, move.destinationIndex, move.destinationIndex+source.Length)
}

func (move *SubListChangeMove) ordered(values []model.Value) []model.Value {
	if move.reversing {
		return lo.Reverse(values)
	}
	return values
}

func (move *SubListChangeMove) CreateUndoMove() Move {
	destination := model.NewSubList(move.destinationEntity, move.destinationIndex, move.source.Length)
	undo := NewSubListChangeMove(move.variable, destination, move.source.Entity, move.source.FromIndex, move.reversing)
	if move.movedValues.resolved {
		undo.movedValues.get(func() []model.Value { return move.ordered(slices.Clone(move.movedValues.value)) })
	}
	return undo
}

func (move *SubListChangeMove) Rebase(rebaser model.Rebaser) Move {
	return NewSubListChangeMove(move.variable, move.source.Rebase(rebaser), rebaser.Rebase(move.destinationEntity), move.destinationIndex, move.reversing)
}

func (move *SubListChangeMove) PlanningEntities() []model.Entity {
	return uniqueEntities(move.source.Entity, move.destinationEntity)
}

func (move *SubListChangeMove) PlanningValues() []model.Value {
	return slices.Clone(move.MovedValues())
}

func (move *SubListChangeMove) key() any {
	return subListChangeKey{move.source, move.destinationEntity, move.destinationIndex, move.reversing}
}

func (move *SubListChangeMove) String() string {
	arrow := "->"
	if move.reversing {
		arrow = "-reversing->"
	}
	return fmt.Sprintf("|%d| {%v[%d..%d]%v%v[%d]}",
		move.source.Length, move.source.Entity, move.source.FromIndex, move.source.ToIndex(), arrow, move.destinationEntity, move.destinationIndex)
}
