package model

import (
	"fmt"
	"log"
)

// Entity is an opaque planning entity owning a list variable. Entities are compared by identity,
// therefore the dynamic type must be comparable (typically a pointer).
type Entity = any

// Value is an opaque planning value placed into list variables. The dynamic type must be comparable.
type Value = any

// ElementPosition tells whether a value is placed in some entity's list (and where) or unassigned.
// The only implementations are PositionInList and UnassignedPosition.
type ElementPosition interface {
	fmt.Stringer
	isElementPosition()
}

// PositionInList locates a value at Entity.list[Index]
type PositionInList struct {
	Entity Entity
	Index  int
}

// UnassignedPosition marks a value that belongs to no entity's list
type UnassignedPosition struct{}

func (PositionInList) isElementPosition()     {}
func (UnassignedPosition) isElementPosition() {}

func (position PositionInList) String() string {
	return fmt.Sprintf("%v[%d]", position.Entity, position.Index)
}

func (UnassignedPosition) String() string {
	return "null"
}

// Assigned builds the position of a value held at entity.list[index]
func Assigned(entity Entity, index int) PositionInList {
	return PositionInList{Entity: entity, Index: index}
}

// Unassigned returns the position of a value held by no entity
func Unassigned() UnassignedPosition {
	return UnassignedPosition{}
}

// IsAssigned checks whether the position points into some entity's list
func IsAssigned(position ElementPosition) bool {
	switch position.(type) {
	case PositionInList:
		return true
	case UnassignedPosition:
		return false
	default:
		log.Panicf("unknown element position kind %T", position)
		return false
	}
}

// EnsureAssigned returns the position in list or panics when the value is unassigned
func EnsureAssigned(position ElementPosition) PositionInList {
	switch position := position.(type) {
	case PositionInList:
		return position
	case UnassignedPosition:
		log.Panicf("expected an assigned element position but the value is unassigned")
	default:
		log.Panicf("unknown element position kind %T", position)
	}
	return PositionInList{}
}
