package move

import (
	"log"
	"strings"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/samber/lo"
)

// CompositeMove executes its children in order as one move
type CompositeMove struct {
	children  []Move
	undoMoves []Move
}

type compositeKey struct {
	children any
}

func NewCompositeMove(children ...Move) *CompositeMove {
	return &CompositeMove{children: children}
}

func (move *CompositeMove) Children() []Move {
	return append([]Move(nil), move.children...)
}

func (move *CompositeMove) IsDoable() bool {
	return lo.SomeBy(move.children, func(child Move) bool {
		return child.IsDoable()
	})
}

// Each child's undo is built right after that child ran, before later children change the state
func (move *CompositeMove) Execute(scoreDirector director.Director) {
	move.undoMoves = make([]Move, 0, len(move.children))
	for _, child := range move.children {
		child.Execute(scoreDirector)
		move.undoMoves = append(move.undoMoves, child.CreateUndoMove())
	}
}

func (move *CompositeMove) CreateUndoMove() Move {
	if move.undoMoves == nil {
		log.Panicf("cannot create the undo move of %v before it was executed", move)
	}
	return NewCompositeMove(lo.Reverse(append([]Move(nil), move.undoMoves...))...)
}

func (move *CompositeMove) Rebase(rebaser model.Rebaser) Move {
	return NewCompositeMove(lo.Map(move.children, func(child Move, _ int) Move {
		return child.Rebase(rebaser)
	})...)
}

func (move *CompositeMove) PlanningEntities() []model.Entity {
	return lo.Uniq(lo.FlatMap(move.children, func(child Move, _ int) []model.Entity {
		return child.PlanningEntities()
	}))
}

func (move *CompositeMove) PlanningValues() []model.Value {
	return lo.Uniq(lo.FlatMap(move.children, func(child Move, _ int) []model.Value {
		return child.PlanningValues()
	}))
}

func (move *CompositeMove) key() any {
	return compositeKey{chainOf(lo.Map(move.children, func(child Move, _ int) any {
		return child.key()
	}))}
}

func (move *CompositeMove) String() string {
	return strings.Join(lo.Map(move.children, func(child Move, _ int) string {
		return child.String()
	}), "+")
}

// NoChangeMove stands for a selection that would leave the solution untouched. It's never doable.
type NoChangeMove struct{}

type noChangeKey struct{}

func NewNoChangeMove() *NoChangeMove {
	return &NoChangeMove{}
}

func (move *NoChangeMove) IsDoable() bool                   { return false }
func (move *NoChangeMove) Execute(director.Director)        {}
func (move *NoChangeMove) CreateUndoMove() Move             { return move }
func (move *NoChangeMove) Rebase(model.Rebaser) Move        { return move }
func (move *NoChangeMove) PlanningEntities() []model.Entity { return nil }
func (move *NoChangeMove) PlanningValues() []model.Value    { return nil }
func (move *NoChangeMove) key() any                         { return noChangeKey{} }
func (move *NoChangeMove) String() string                   { return "No change" }
