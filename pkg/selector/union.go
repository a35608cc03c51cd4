package selector

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/samber/lo"
)

type unionMoveSelector struct {
	children []MoveSelector
	random   *rand.Rand
}

// NewUnionMoveSelector combines move selectors. Original selection concatenates the children; random
// selection (non-nil random) picks a child uniformly for every move, dropping children that run out.
func NewUnionMoveSelector(random *rand.Rand, children ...MoveSelector) (MoveSelector, error) {
	if len(children) == 0 || lo.Contains(children, nil) {
		return nil, fmt.Errorf("union move selector: %w: at least one child selector is required and none may be nil", ErrMissingCollaborator)
	}
	if random == nil && lo.SomeBy(children, func(child MoveSelector) bool { return child.IsNeverEnding() }) {
		return nil, fmt.Errorf("union move selector: %w", ErrNeverEndingChild)
	}
	return &unionMoveSelector{children: slices.Clone(children), random: random}, nil
}

func (selector *unionMoveSelector) Iterate() iter.Seq[move.Move] {
	if selector.random == nil {
		return func(yield func(move.Move) bool) {
			for _, child := range selector.children {
				for selected := range child.Iterate() {
					if !yield(selected) {
						return
					}
				}
			}
		}
	}
	return func(yield func(move.Move) bool) {
		type pulled struct {
			next func() (move.Move, bool)
			stop func()
		}
		active := lo.Map(selector.children, func(child MoveSelector, _ int) pulled {
			next, stop := iter.Pull(child.Iterate())
			return pulled{next: next, stop: stop}
		})
		defer func() {
			for _, child := range active {
				child.stop()
			}
		}()

		for len(active) > 0 {
			index := selector.random.IntN(len(active))
			selected, ok := active[index].next()
			if !ok {
				active[index].stop()
				active = slices.Delete(active, index, index+1)
				continue
			}
			if !yield(selected) {
				return
			}
		}
	}
}

func (selector *unionMoveSelector) Size() int64 {
	return lo.SumBy(selector.children, func(child MoveSelector) int64 { return child.Size() })
}

func (selector *unionMoveSelector) IsNeverEnding() bool {
	return lo.SomeBy(selector.children, func(child MoveSelector) bool { return child.IsNeverEnding() })
}
