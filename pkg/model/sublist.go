package model

import "fmt"

// SubList identifies the contiguous run Entity.list[FromIndex : FromIndex+Length]
type SubList struct {
	Entity    Entity
	FromIndex int
	Length    int
}

func NewSubList(entity Entity, fromIndex, length int) SubList {
	return SubList{Entity: entity, FromIndex: fromIndex, Length: length}
}

// Exclusive end of the run
func (subList SubList) ToIndex() int {
	return subList.FromIndex + subList.Length
}

// Checks whether the run fits inside a list of the given size
func (subList SubList) FitsIn(size int) bool {
	return subList.FromIndex >= 0 && subList.Length > 0 && subList.ToIndex() <= size
}

func (subList SubList) Rebase(rebaser Rebaser) SubList {
	return SubList{Entity: rebaser.Rebase(subList.Entity), FromIndex: subList.FromIndex, Length: subList.Length}
}

func (subList SubList) String() string {
	return fmt.Sprintf("%v[%d+%d]", subList.Entity, subList.FromIndex, subList.Length)
}
