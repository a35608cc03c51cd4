package selector

import (
	"iter"
	"math/rand/v2"

	"github.com/limaJavier/listmoves/pkg/model"
)

//** Original

type originalEntitySelector struct {
	solution *model.Solution
}

// NewOriginalEntitySelector iterates the solution's entities in order
func NewOriginalEntitySelector(solution *model.Solution) EntitySelector {
	return &originalEntitySelector{solution: solution}
}

func (selector *originalEntitySelector) Iterate() iter.Seq[model.Entity] {
	return func(yield func(model.Entity) bool) {
		for _, entity := range selector.solution.Entities {
			if !yield(entity) {
				return
			}
		}
	}
}

func (selector *originalEntitySelector) Size() int64 {
	return int64(len(selector.solution.Entities))
}

func (selector *originalEntitySelector) IsNeverEnding() bool {
	return false
}

//** Random

type randomEntitySelector struct {
	solution *model.Solution
	random   *rand.Rand
}

// NewRandomEntitySelector draws entities uniformly, forever
func NewRandomEntitySelector(solution *model.Solution, random *rand.Rand) EntitySelector {
	return &randomEntitySelector{solution: solution, random: random}
}

func (selector *randomEntitySelector) Iterate() iter.Seq[model.Entity] {
	return func(yield func(model.Entity) bool) {
		entities := selector.solution.Entities
		if len(entities) == 0 {
			return
		}
		for yield(entities[selector.random.IntN(len(entities))]) {
		}
	}
}

func (selector *randomEntitySelector) Size() int64 {
	return int64(len(selector.solution.Entities))
}

func (selector *randomEntitySelector) IsNeverEnding() bool {
	return true
}

//** Pin filter

type movableEntitySelector struct {
	child    EntitySelector
	variable model.ListVariable
}

// FilterPinnedEntities drops the entities whose whole list is pinned. The child is returned as is when the
// variable does not support pinning.
func FilterPinnedEntities(child EntitySelector, variable model.ListVariable) EntitySelector {
	if !variable.SupportsPinning() {
		return child
	}
	return &movableEntitySelector{child: child, variable: variable}
}

func (selector *movableEntitySelector) Iterate() iter.Seq[model.Entity] {
	return filtered(selector.child, func(entity model.Entity) bool {
		return !selector.variable.IsEntityPinned(entity)
	})
}

func (selector *movableEntitySelector) Size() int64 {
	if selector.child.IsNeverEnding() {
		return selector.child.Size()
	}
	return count[model.Entity](selector)
}

func (selector *movableEntitySelector) IsNeverEnding() bool {
	return selector.child.IsNeverEnding()
}

// Maximum number of consecutive rejected selections before a filtered never-ending iteration gives up
const bailOutSize = 1_000

// Yields the child's selections the predicate accepts. A never-ending child is abandoned once too many
// consecutive selections were rejected, so a neighbourhood without any acceptable selection ends instead
// of spinning.
func filtered[T any](child Selector[T], accept func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		rejected, limit := 0, int64(bailOutSize)
		if child.IsNeverEnding() {
			limit += child.Size() * 10
		}
		for selection := range child.Iterate() {
			if !accept(selection) {
				rejected++
				if child.IsNeverEnding() && int64(rejected) > limit {
					return
				}
				continue
			}
			rejected = 0
			if !yield(selection) {
				return
			}
		}
	}
}
