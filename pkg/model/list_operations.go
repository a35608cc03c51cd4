package model

import (
	"slices"

	"github.com/samber/lo"
)

// ListSize returns the number of values the entity currently holds
func ListSize(variable ListVariable, entity Entity) int {
	return len(variable.Elements(entity))
}

// Element returns the value at entity.list[index]
func Element(variable ListVariable, entity Entity, index int) Value {
	return variable.Elements(entity)[index]
}

// SetElement overwrites entity.list[index] and returns the previous value
func SetElement(variable ListVariable, entity Entity, index int, value Value) Value {
	elements := variable.Elements(entity)
	previous := elements[index]
	elements[index] = value
	variable.SetElements(entity, elements)
	return previous
}

// AddElement inserts the value at index, shifting the tail to the right
func AddElement(variable ListVariable, entity Entity, index int, value Value) {
	variable.SetElements(entity, slices.Insert(variable.Elements(entity), index, value))
}

// AddAll inserts the values starting at index, keeping their order
func AddAll(variable ListVariable, entity Entity, index int, values []Value) {
	variable.SetElements(entity, slices.Insert(variable.Elements(entity), index, values...))
}

// RemoveElement detaches entity.list[index] and returns it
func RemoveElement(variable ListVariable, entity Entity, index int) Value {
	elements := variable.Elements(entity)
	removed := elements[index]
	variable.SetElements(entity, slices.Delete(elements, index, index+1))
	return removed
}

// RemoveRange detaches entity.list[fromIndex:toIndex] and returns a copy of the removed values
func RemoveRange(variable ListVariable, entity Entity, fromIndex, toIndex int) []Value {
	elements := variable.Elements(entity)
	removed := slices.Clone(elements[fromIndex:toIndex])
	variable.SetElements(entity, slices.Delete(elements, fromIndex, toIndex))
	return removed
}

// CopyRange returns a copy of entity.list[fromIndex:toIndex], optionally in reverse order.
// The copy survives later mutations of the list.
func CopyRange(variable ListVariable, entity Entity, fromIndex, toIndex int, reversing bool) []Value {
	copied := slices.Clone(variable.Elements(entity)[fromIndex:toIndex])
	if reversing {
		return lo.Reverse(copied)
	}
	return copied
}

// AllInRange checks whether the entity's value range accepts every value
func AllInRange(variable ListVariable, entity Entity, values []Value) bool {
	if variable.IsValueRangeEntityIndependent() {
		return true
	}
	return lo.EveryBy(values, func(value Value) bool {
		return variable.IsValueInRange(entity, value)
	})
}
