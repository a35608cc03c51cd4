package selector

import (
	"fmt"
	"iter"
	"log"
	"math/rand/v2"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/samber/lo"
)

type subListSelector struct {
	entities           EntitySelector
	variable           model.ListVariable
	minimumSubListSize int
	maximumSubListSize int
	random             *rand.Rand
}

// NewSubListSelector selects the runs of every entity's movable part whose length lies within
// [minimumSubListSize, maximumSubListSize]. Per entity, runs are enumerated longest first, then by start
// index. Random selection draws from the same enumeration, each run with the same probability. The entity
// selector must be finite either way, since every draw weighs all entities.
func NewSubListSelector(entities EntitySelector, variable model.ListVariable, minimumSubListSize, maximumSubListSize int, random *rand.Rand) (SubListSelector, error) {
	if entities == nil {
		return nil, fmt.Errorf("sub-list selector of \"%v\": %w: entity selector is required", variable.Name(), ErrMissingCollaborator)
	}
	if entities.IsNeverEnding() {
		return nil, fmt.Errorf("sub-list selector of \"%v\": %w", variable.Name(), ErrNeverEndingChild)
	}
	if minimumSubListSize < 1 || maximumSubListSize < minimumSubListSize {
		return nil, fmt.Errorf("sub-list selector of \"%v\": %w: minimum (%d) must be at least 1 and at most the maximum (%d)",
			variable.Name(), ErrInvalidSubListSize, minimumSubListSize, maximumSubListSize)
	}
	return &subListSelector{
		entities:           entities,
		variable:           variable,
		minimumSubListSize: minimumSubListSize,
		maximumSubListSize: maximumSubListSize,
		random:             random,
	}, nil
}

// Returns the first movable index and the number of runs the entity offers
func (selector *subListSelector) bounds(entity model.Entity) (firstIndex int, runs int64) {
	size := model.ListSize(selector.variable, entity)
	if selector.variable.SupportsPinning() {
		firstIndex = min(selector.variable.FirstUnpinnedIndex(entity), size)
	}
	available := size - firstIndex
	for length := selector.minimumSubListSize; length <= min(selector.maximumSubListSize, available); length++ {
		runs += int64(available - length + 1)
	}
	return firstIndex, runs
}

// Returns the run at the given rank of the entity's enumeration
func (selector *subListSelector) runAt(entity model.Entity, firstIndex int, rank int64) model.SubList {
	available := model.ListSize(selector.variable, entity) - firstIndex
	for length := min(selector.maximumSubListSize, available); length >= selector.minimumSubListSize; length-- {
		starts := int64(available - length + 1)
		if rank < starts {
			return model.NewSubList(entity, firstIndex+int(rank), length)
		}
		rank -= starts
	}
	log.Panicf("run rank out of range for entity %v", entity)
	return model.SubList{}
}

func (selector *subListSelector) Iterate() iter.Seq[model.SubList] {
	if selector.random != nil {
		return selector.iterateRandomly()
	}
	return func(yield func(model.SubList) bool) {
		for entity := range selector.entities.Iterate() {
			firstIndex, runs := selector.bounds(entity)
			for rank := int64(0); rank < runs; rank++ {
				if !yield(selector.runAt(entity, firstIndex, rank)) {
					return
				}
			}
		}
	}
}

func (selector *subListSelector) iterateRandomly() iter.Seq[model.SubList] {
	return func(yield func(model.SubList) bool) {
		for {
			type entityRuns struct {
				entity     model.Entity
				firstIndex int
				runs       int64
			}
			var candidates []entityRuns
			for entity := range selector.entities.Iterate() {
				firstIndex, runs := selector.bounds(entity)
				candidates = append(candidates, entityRuns{entity, firstIndex, runs})
			}
			total := lo.SumBy(candidates, func(candidate entityRuns) int64 { return candidate.runs })
			if total == 0 {
				return
			}

			draw := selector.random.Int64N(total)
			for _, candidate := range candidates {
				if draw < candidate.runs {
					if !yield(selector.runAt(candidate.entity, candidate.firstIndex, draw)) {
						return
					}
					break
				}
				draw -= candidate.runs
			}
		}
	}
}

func (selector *subListSelector) Size() int64 {
	var total int64
	for entity := range selector.entities.Iterate() {
		_, runs := selector.bounds(entity)
		total += runs
	}
	return total
}

func (selector *subListSelector) IsNeverEnding() bool {
	return selector.random != nil
}
