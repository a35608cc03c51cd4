// Package move implements the list-variable moves: relocating, swapping, assigning and unassigning
// single values or contiguous runs of values, plus ruin-and-recreate. Every move notifies the score
// director with exact index ranges and can build the move that undoes it.
package move

import (
	"fmt"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/samber/lo"
)

// Move is a proposed change of the working solution. The set of implementations is closed: it is the
// moves of this package.
type Move interface {
	fmt.Stringer

	// Checks whether executing the move in the current state would produce a different, valid state
	IsDoable() bool

	// Mutates the lists, bracketing every mutation with the director's notifications. Callers must check
	// IsDoable first
	Execute(scoreDirector director.Director)

	// Returns the move that restores the state this move started from
	CreateUndoMove() Move

	// Rebuilds the move against another solution instance, keeping every index
	Rebase(rebaser model.Rebaser) Move

	// Returns the entities the move touches, in insertion order and without duplicates
	PlanningEntities() []model.Entity

	// Returns the values the move touches, in insertion order and without duplicates
	PlanningValues() []model.Value

	key() any
}

// Do executes the move, flushes the variable listeners and returns the undo move
func Do(move Move, scoreDirector director.Director) Move {
	move.Execute(scoreDirector)
	scoreDirector.TriggerVariableListeners()
	return move.CreateUndoMove()
}

// Key returns a comparable identity of the move: two moves have equal keys iff they are structurally equal
func Key(move Move) any {
	return move.key()
}

// Equal checks structural equality (variant, entity identities, indices and flags)
func Equal(left, right Move) bool {
	return left.key() == right.key()
}

//** Keys

// chain is a comparable encoding of an ordered sequence; tail holds the next chain or nil
type chain struct {
	head any
	tail any
}

func chainOf[T any](items []T) any {
	var encoded any
	for index := len(items) - 1; index >= 0; index-- {
		encoded = chain{head: items[index], tail: encoded}
	}
	return encoded
}

//** Lazily resolved values

// resolvedOnce holds something read from the lists the first time it is needed. Once resolved it is
// never written again, so the move keeps a stable identity.
type resolvedOnce[T any] struct {
	resolved bool
	value    T
}

func (once *resolvedOnce[T]) get(resolve func() T) T {
	if !once.resolved {
		once.value = resolve()
		once.resolved = true
	}
	return once.value
}

func uniqueEntities(entities ...model.Entity) []model.Entity {
	return lo.Uniq(entities)
}

func uniqueValues(values ...model.Value) []model.Value {
	return lo.Uniq(values)
}

func rebaseAll(values []model.Value, rebaser model.Rebaser) []model.Value {
	return lo.Map(values, func(value model.Value, _ int) model.Value {
		return rebaser.Rebase(value)
	})
}
