// Package selector enumerates the moves of a list variable. Original selectors walk the whole
// neighbourhood in a deterministic order; random selectors draw from it forever.
package selector

import (
	"errors"
	"iter"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
)

var (
	ErrNeverEndingChild    = errors.New("an original selector cannot iterate a never-ending child selector")
	ErrInvalidSubListSize  = errors.New("invalid sub-list size bounds")
	ErrInvalidRuinedCount  = errors.New("invalid ruined value count bounds")
	ErrMissingCollaborator = errors.New("missing collaborator")
)

// Selector is a source of selections
type Selector[T any] interface {
	// Returns a fresh iteration over the selections. Selections are computed against the current state of
	// the working solution, so moves should be executed (and undone) between two pulls, never skipped ahead
	Iterate() iter.Seq[T]

	// Returns the number of distinct selections; used for progress estimation only
	Size() int64

	// Checks whether Iterate never runs out of selections
	IsNeverEnding() bool
}

type (
	EntitySelector      = Selector[model.Entity]
	ValueSelector       = Selector[model.Value]
	DestinationSelector = Selector[model.ElementPosition]
	SubListSelector     = Selector[model.SubList]
	MoveSelector        = Selector[move.Move]
)

// Counts the selections of a finite selector by walking it
func count[T any](selector Selector[T]) int64 {
	var total int64
	for range selector.Iterate() {
		total++
	}
	return total
}
