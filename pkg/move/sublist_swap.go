package move

import (
	"fmt"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/samber/lo"
)

// SubListSwapMove exchanges two runs of values that may differ in length. Runs of the same entity are
// ordered on construction so that the left run starts first.
type SubListSwapMove struct {
	variable    model.ListVariable
	left        model.SubList
	right       model.SubList
	reversing   bool
	leftValues  resolvedOnce[[]model.Value]
	rightValues resolvedOnce[[]model.Value]
}

type subListSwapKey struct {
	left      model.SubList
	right     model.SubList
	reversing bool
}

func NewSubListSwapMove(variable model.ListVariable, left, right model.SubList, reversing bool) *SubListSwapMove {
	if left.Entity == right.Entity && left.FromIndex > right.FromIndex {
		left, right = right, left
	}
	return &SubListSwapMove{
		variable:  variable,
		left:      left,
		right:     right,
		reversing: reversing,
	}
}

func (move *SubListSwapMove) Left() model.SubList {
	return move.left
}

func (move *SubListSwapMove) Right() model.SubList {
	return move.right
}

func (move *SubListSwapMove) IsReversing() bool {
	return move.reversing
}

func (move *SubListSwapMove) LeftValues() []model.Value {
	return move.leftValues.get(func() []model.Value {
		return model.CopyRange(move.variable, move.left.Entity, move.left.FromIndex, move.left.ToIndex(), false)
	})
}

func (move *SubListSwapMove) RightValues() []model.Value {
	return move.rightValues.get(func() []model.Value {
		return model.CopyRange(move.variable, move.right.Entity, move.right.FromIndex, move.right.ToIndex(), false)
	})
}

func (move *SubListSwapMove) IsDoable() bool {
	if !move.left.FitsIn(model.ListSize(move.variable, move.left.Entity)) ||
		!move.right.FitsIn(model.ListSize(move.variable, move.right.Entity)) {
		return false
	}
	if move.left.Entity == move.right.Entity {
		return move.right.FromIndex >= move.left.ToIndex()
	}
	return model.AllInRange(move.variable, move.right.Entity, move.LeftValues()) &&
		model.AllInRange(move.variable, move.left.Entity, move.RightValues())
}

func (move *SubListSwapMove) Execute(scoreDirector director.Director) {
	left, right := move.left, move.right
	leftCopy := move.ordered(move.LeftValues())
	rightCopy := move.ordered(move.RightValues())

	if left.Entity == right.Entity {
		entity := left.Entity
		scoreDirector.BeforeListVariableChanged(move.variable, entity, left.FromIndex, right.ToIndex())
		model.RemoveRange(move.variable, entity, right.FromIndex, right.ToIndex())
		model.RemoveRange(move.variable, entity, left.FromIndex, left.ToIndex())
		model.AddAll(move.variable, entity, left.FromIndex, rightCopy)
		model.AddAll(move.variable, entity, right.FromIndex+right.Length-left.Length, leftCopy)
		scoreDirector.AfterListVariableChanged(move.variable, entity, left.FromIndex, right.ToIndex())
		return
	}

	scoreDirector.BeforeListVariableChanged(move.variable, left.Entity, left.FromIndex, left.ToIndex())
	model.RemoveRange(move.variable, left.Entity, left.FromIndex, left.ToIndex())
	model.AddAll(move.variable, left.Entity, left.FromIndex, rightCopy)
	scoreDirector.AfterListVariableChanged(move.variable, left.Entity, left.FromIndex, left.FromIndex+right.Length)

	scoreDirector.BeforeListVariableChanged(move.variable, right.Entity, right.FromIndex, right.ToIndex())
	model.RemoveRange(move.variable, right.Entity, right.FromIndex, right.ToIndex())
	model.AddAll(move.variable, right.Entity, right.FromIndex, leftCopy)
	scoreDirector.AfterListVariableChanged(move.variable, right.Entity, right.FromIndex, right.FromIndex+left.Length)
}

// Returns a fresh copy of the values in insertion order
func (move *SubListSwapMove) ordered(values []model.Value) []model.Value {
	copied := append([]model.Value(nil), values...)
	if move.reversing {
		return lo.Reverse(copied)
	}
	return copied
}

// The undo swaps the relocated runs, right one first, which mirrors this move's notifications
func (move *SubListSwapMove) CreateUndoMove() Move {
	left, right := move.left, move.right
	relocatedLeft := model.NewSubList(left.Entity, left.FromIndex, right.Length)
	relocatedRight := model.NewSubList(right.Entity, right.FromIndex, left.Length)
	if left.Entity == right.Entity {
		relocatedRight.FromIndex = right.FromIndex + right.Length - left.Length
	}

	undo := NewSubListSwapMove(move.variable, relocatedRight, relocatedLeft, move.reversing)
	if move.leftValues.resolved && move.rightValues.resolved {
		relocatedLeftValues, relocatedRightValues := move.ordered(move.rightValues.value), move.ordered(move.leftValues.value)
		if undo.left == relocatedLeft {
			undo.leftValues.get(func() []model.Value { return relocatedLeftValues })
			undo.rightValues.get(func() []model.Value { return relocatedRightValues })
		} else {
			undo.leftValues.get(func() []model.Value { return relocatedRightValues })
			undo.rightValues.get(func() []model.Value { return relocatedLeftValues })
		}
	}
	return undo
}

func (move *SubListSwapMove) Rebase(rebaser model.Rebaser) Move {
	return NewSubListSwapMove(move.variable, move.left.Rebase(rebaser), move.right.Rebase(rebaser), move.reversing)
}

func (move *SubListSwapMove) PlanningEntities() []model.Entity {
	return uniqueEntities(move.left.Entity, move.right.Entity)
}

func (move *SubListSwapMove) PlanningValues() []model.Value {
	return uniqueValues(append(append([]model.Value(nil), move.LeftValues()...), move.RightValues()...)...)
}

func (move *SubListSwapMove) key() any {
	return subListSwapKey{move.left, move.right, move.reversing}
}

func (move *SubListSwapMove) String() string {
	arrow := "<->"
	if move.reversing {
		arrow = "<-reversing->"
	}
	return fmt.Sprintf("{%v[%d..%d]} %v {%v[%d..%d]}",
		move.left.Entity, move.left.FromIndex, move.left.ToIndex(), arrow, move.right.Entity, move.right.FromIndex, move.right.ToIndex())
}
