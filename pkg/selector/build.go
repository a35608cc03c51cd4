package selector

import (
	"log"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/limaJavier/listmoves/pkg/supply"
)

// Picks the move that takes the value from where it currently is to the destination
func buildListChangeMove(variable model.ListVariable, stateSupply supply.ListVariableStateSupply, value model.Value, destination model.ElementPosition) move.Move {
	switch source := stateSupply.ElementPosition(value).(type) {
	case model.PositionInList:
		switch destination := destination.(type) {
		case model.PositionInList:
			return move.NewListChangeMove(variable, source.Entity, source.Index, destination.Entity, destination.Index)
		case model.UnassignedPosition:
			return move.NewListUnassignMove(variable, source.Entity, source.Index)
		}
	case model.UnassignedPosition:
		switch destination := destination.(type) {
		case model.PositionInList:
			return move.NewListAssignMove(variable, value, destination.Entity, destination.Index)
		case model.UnassignedPosition:
			return move.NewNoChangeMove()
		}
	}
	log.Panicf("cannot build a change move of value %v to destination %v", value, destination)
	return nil
}

// Picks the move that exchanges the places of two values. When only one of them is assigned, the other
// takes its place and it becomes unassigned.
func buildListSwapMove(variable model.ListVariable, stateSupply supply.ListVariableStateSupply, leftValue, rightValue model.Value) move.Move {
	if leftValue == rightValue {
		return move.NewNoChangeMove()
	}

	leftPosition, rightPosition := stateSupply.ElementPosition(leftValue), stateSupply.ElementPosition(rightValue)
	switch left := leftPosition.(type) {
	case model.PositionInList:
		switch right := rightPosition.(type) {
		case model.PositionInList:
			return move.NewListSwapMove(variable, left.Entity, left.Index, right.Entity, right.Index)
		case model.UnassignedPosition:
			return replaceAssigned(variable, left, rightValue)
		}
	case model.UnassignedPosition:
		switch right := rightPosition.(type) {
		case model.PositionInList:
			return replaceAssigned(variable, right, leftValue)
		case model.UnassignedPosition:
			return move.NewNoChangeMove()
		}
	}
	log.Panicf("cannot build a swap move of values %v (%v) and %v (%v)", leftValue, leftPosition, rightValue, rightPosition)
	return nil
}

func replaceAssigned(variable model.ListVariable, assigned model.PositionInList, replacement model.Value) move.Move {
	return move.NewCompositeMove(
		move.NewListUnassignMove(variable, assigned.Entity, assigned.Index),
		move.NewListAssignMove(variable, replacement, assigned.Entity, assigned.Index),
	)
}

// Picks the move that takes the run to the destination
func buildSubListChangeMove(variable model.ListVariable, subList model.SubList, destination model.ElementPosition, reversing bool) move.Move {
	switch destination := destination.(type) {
	case model.PositionInList:
		return move.NewSubListChangeMove(variable, subList, destination.Entity, destination.Index, reversing)
	case model.UnassignedPosition:
		return move.NewSubListUnassignMove(variable, subList)
	}
	log.Panicf("cannot build a sub-list change move of %v to destination %v", subList, destination)
	return nil
}
