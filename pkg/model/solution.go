package model

import (
	"log"
	"slices"
)

// Solution is the working solution a move engine mutates: the entities owning the list variable
// and every value that can be placed in those lists.
type Solution struct {
	Variable ListVariable
	Entities []Entity
	Values   []Value
}

// Snapshot copies every entity's list; it's used to compare states, never to restore them
func (solution *Solution) Snapshot() map[Entity][]Value {
	snapshot := make(map[Entity][]Value, len(solution.Entities))
	for _, entity := range solution.Entities {
		snapshot[entity] = slices.Clone(solution.Variable.Elements(entity))
	}
	return snapshot
}

// Rebaser maps an entity or value of one solution instance to its counterpart in another one
type Rebaser interface {
	Rebase(object any) any
}

// RebaserFunc adapts an ordinary function to the Rebaser interface
type RebaserFunc func(object any) any

func (function RebaserFunc) Rebase(object any) any {
	return function(object)
}

// NewLookupRebaser returns a Rebaser backed by an explicit lookup table; unknown objects are a contract violation
func NewLookupRebaser(lookup map[any]any) Rebaser {
	return RebaserFunc(func(object any) any {
		rebased, ok := lookup[object]
		if !ok {
			log.Panicf("cannot rebase %v: it has no counterpart in the destination solution", object)
		}
		return rebased
	})
}

// RebasePosition rebuilds a position against another solution instance
func RebasePosition(position ElementPosition, rebaser Rebaser) ElementPosition {
	switch position := position.(type) {
	case PositionInList:
		return PositionInList{Entity: rebaser.Rebase(position.Entity), Index: position.Index}
	case UnassignedPosition:
		return position
	default:
		log.Panicf("unknown element position kind %T", position)
		return nil
	}
}
