package selector_test

import (
	"iter"
	"math/rand/v2"
	"testing"

	"github.com/limaJavier/listmoves/internal/testdomain"
	"github.com/limaJavier/listmoves/pkg/construction"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/limaJavier/listmoves/pkg/selector"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRuinRecreateMoveSelector(t *testing.T) {
	//** Arrange
	fixture := newFixture(testdomain.Options{AllowsUnassigned: true, Pinning: true})
	fixture.ann.PinToIndex = 1
	unassignedCount := func(*model.Solution) float64 { return float64(fixture.supply.UnassignedCount()) }
	config := selector.ListRuinRecreateMoveSelectorConfig{
		Values:             fixture.movableValues(),
		Variable:           fixture.variable,
		Supply:             fixture.supply,
		Phase:              construction.NewCheapestInsertionPhase(unassignedCount, nil),
		MinimumRuinedCount: 2,
		MaximumRuinedCount: 3,
		Random:             rand.New(rand.NewPCG(17, 19)),
	}
	moves, err := selector.NewListRuinRecreateMoveSelector(config)
	require.NoError(t, err)
	before := fixture.solution.Snapshot()

	t.Run("Draws distinct movable assigned values", func(t *testing.T) {
		drawn := 0
		for selected := range moves.Iterate() {
			if drawn == 50 {
				break
			}
			drawn++

			//** Assert
			ruined := selected.PlanningValues()
			assert.GreaterOrEqual(t, len(ruined), 2)
			assert.LessOrEqual(t, len(ruined), 3)
			assert.Len(t, lo.Uniq(ruined), len(ruined))
			assert.NotContains(t, ruined, fixture.values["A"], "A is pinned")
			assert.NotContains(t, ruined, fixture.values["Z"], "Z is unassigned")
			assert.True(t, selected.IsDoable())
		}
		assert.True(t, moves.IsNeverEnding())
	})

	t.Run("Ruin, recreate and undo", func(t *testing.T) {
		//** Arrange
		next, stop := iter.Pull(moves.Iterate())
		defer stop()
		selected, ok := next()
		require.True(t, ok)

		//** Act
		undo := move.Do(selected, fixture.supply)

		//** Assert
		assert.Equal(t, "A", fixture.ann.List()[0])
		assert.Equal(t, 1, fixture.supply.UnassignedCount(), "only Z stays unassigned")

		move.Do(undo, fixture.supply)
		assert.Equal(t, before, fixture.solution.Snapshot())
	})

	t.Run("Invalid counts", func(t *testing.T) {
		//** Arrange
		invalid := config
		invalid.MinimumRuinedCount = 0

		//** Act
		_, err := selector.NewListRuinRecreateMoveSelector(invalid)

		//** Assert
		assert.ErrorIs(t, err, selector.ErrInvalidRuinedCount)
	})

	t.Run("Size counts value batches", func(t *testing.T) {
		// 4 movable values: C(4,2) + C(4,3)
		assert.Equal(t, int64(6+4), moves.Size())
	})

	t.Run("Size and batches when fewer values than the minimum are movable", func(t *testing.T) {
		//** Arrange
		large := config
		large.MinimumRuinedCount = 5
		large.MaximumRuinedCount = 6
		oversized, err := selector.NewListRuinRecreateMoveSelector(large)
		require.NoError(t, err)

		//** Act
		next, stop := iter.Pull(oversized.Iterate())
		defer stop()
		selected, ok := next()

		//** Assert
		require.True(t, ok)
		assert.Len(t, selected.PlanningValues(), 4, "every movable value is ruined")
		assert.Equal(t, int64(1), oversized.Size())
	})
}
