package selector_test

import (
	"math/rand/v2"
	"testing"

	"github.com/limaJavier/listmoves/internal/testdomain"
	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/limaJavier/listmoves/pkg/selector"
	"github.com/limaJavier/listmoves/pkg/supply"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	variable model.ListVariable
	solution *model.Solution
	supply   supply.ListVariableStateSupply
	ann, bob *testdomain.Entity
	values   map[string]*testdomain.Value
}

// newFixture builds Ann=[A,B,C], Bob=[X,Y] and the unassigned value Z (only when unassigned values are allowed)
func newFixture(options testdomain.Options) *fixture {
	names := []string{"A", "B", "C", "X", "Y"}
	if options.AllowsUnassigned {
		names = append(names, "Z")
	}
	values := testdomain.NewValues(names...)
	byName := make(map[string]*testdomain.Value)
	for _, value := range values {
		byName[value.Name] = value
	}
	ann := testdomain.NewEntity("Ann", byName["A"], byName["B"], byName["C"])
	bob := testdomain.NewEntity("Bob", byName["X"], byName["Y"])
	variable := testdomain.NewVariable(options)
	solution := testdomain.NewSolution(variable, []*testdomain.Entity{ann, bob}, values)
	state := supply.NewListVariableStateSupply(variable)
	state.Initialize(solution)
	return &fixture{variable: variable, solution: solution, supply: state, ann: ann, bob: bob, values: byName}
}

func (fixture *fixture) entities() selector.EntitySelector {
	return selector.FilterPinnedEntities(selector.NewOriginalEntitySelector(fixture.solution), fixture.variable)
}

func (fixture *fixture) movableValues() selector.ValueSelector {
	return selector.FilterPinnedValues(selector.NewOriginalValueSelector(fixture.solution), fixture.variable, fixture.supply)
}

func (fixture *fixture) destinations(t *testing.T) selector.DestinationSelector {
	destinations, err := selector.NewElementDestinationSelector(fixture.entities(), fixture.movableValues(), fixture.variable, fixture.supply, nil)
	require.NoError(t, err)
	return destinations
}

func collect[T any](source selector.Selector[T], limit int) []T {
	var selections []T
	for selection := range source.Iterate() {
		if len(selections) == limit {
			break
		}
		selections = append(selections, selection)
	}
	return selections
}

func TestElementDestinationSelector(t *testing.T) {
	t.Run("Original order", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{AllowsUnassigned: true})
		destinations := fixture.destinations(t)

		//** Act
		selections := collect(destinations, -1)

		//** Assert
		assert.Equal(t, []model.ElementPosition{
			model.Assigned(fixture.ann, 0), model.Assigned(fixture.bob, 0),
			model.Assigned(fixture.ann, 1), model.Assigned(fixture.ann, 2), model.Assigned(fixture.ann, 3),
			model.Assigned(fixture.bob, 1), model.Assigned(fixture.bob, 2),
			model.Unassigned(),
		}, selections)
		assert.Equal(t, int64(2+6+1), destinations.Size())
	})

	t.Run("Pinned slots are skipped", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{Pinning: true})
		fixture.ann.PinToIndex = 2
		fixture.bob.Pinned = true

		//** Act
		selections := collect(fixture.destinations(t), -1)

		//** Assert
		assert.Equal(t, []model.ElementPosition{model.Assigned(fixture.ann, 2), model.Assigned(fixture.ann, 3)}, selections)
	})

	t.Run("Random draws stay within the original places", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{AllowsUnassigned: true})
		random := rand.New(rand.NewPCG(7, 7))
		destinations, err := selector.NewElementDestinationSelector(
			selector.NewRandomEntitySelector(fixture.solution, random),
			selector.NewRandomValueSelector(fixture.solution, random),
			fixture.variable, fixture.supply, random)
		require.NoError(t, err)
		g := NewWithT(t)

		//** Act
		selections := collect(destinations, 200)

		//** Assert
		g.Expect(destinations.IsNeverEnding()).To(BeTrue())
		g.Expect(selections).To(HaveLen(200))
		g.Expect(selections).To(HaveEach(BeElementOf(collect(fixture.destinations(t), -1))))
		g.Expect(selections).To(ContainElement(model.Unassigned()))
	})

	t.Run("Invalid configuration", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{})
		random := rand.New(rand.NewPCG(1, 1))

		//** Act
		_, neverEnding := selector.NewElementDestinationSelector(selector.NewRandomEntitySelector(fixture.solution, random), fixture.movableValues(), fixture.variable, fixture.supply, nil)
		_, missing := selector.NewElementDestinationSelector(fixture.entities(), fixture.movableValues(), fixture.variable, nil, nil)

		//** Assert
		assert.ErrorIs(t, neverEnding, selector.ErrNeverEndingChild)
		assert.ErrorIs(t, missing, selector.ErrMissingCollaborator)
	})
}

func TestSubListSelector(t *testing.T) {
	t.Run("Original enumeration", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{Pinning: true})
		fixture.bob.PinToIndex = 1
		subLists, err := selector.NewSubListSelector(fixture.entities(), fixture.variable, 1, 2, nil)
		require.NoError(t, err)

		//** Act
		selections := collect(subLists, -1)

		//** Assert
		assert.Equal(t, []model.SubList{
			model.NewSubList(fixture.ann, 0, 2), model.NewSubList(fixture.ann, 1, 2),
			model.NewSubList(fixture.ann, 0, 1), model.NewSubList(fixture.ann, 1, 1), model.NewSubList(fixture.ann, 2, 1),
			model.NewSubList(fixture.bob, 1, 1),
		}, selections)
		assert.Equal(t, int64(6), subLists.Size())
	})

	t.Run("Random draws stay within the enumeration", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{})
		original, err := selector.NewSubListSelector(fixture.entities(), fixture.variable, 2, 3, nil)
		require.NoError(t, err)
		random, err := selector.NewSubListSelector(fixture.entities(), fixture.variable, 2, 3, rand.New(rand.NewPCG(3, 5)))
		require.NoError(t, err)
		g := NewWithT(t)

		//** Act
		selections := collect(random, 100)

		//** Assert
		g.Expect(selections).To(HaveLen(100))
		g.Expect(selections).To(HaveEach(BeElementOf(collect(original, -1))))
		g.Expect(selections).To(ContainElement(model.NewSubList(fixture.bob, 0, 2)))
	})

	t.Run("Invalid sizes", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{})

		//** Act
		_, tooSmall := selector.NewSubListSelector(fixture.entities(), fixture.variable, 0, 2, nil)
		_, inverted := selector.NewSubListSelector(fixture.entities(), fixture.variable, 3, 2, nil)

		//** Assert
		assert.ErrorIs(t, tooSmall, selector.ErrInvalidSubListSize)
		assert.ErrorIs(t, inverted, selector.ErrInvalidSubListSize)
	})
}

func TestListChangeMoveSelector(t *testing.T) {
	t.Run("Original enumeration is complete", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{})
		values := selector.NewOriginalValueSelector(fixture.solution)
		destinations := fixture.destinations(t)
		moves, err := selector.NewListChangeMoveSelector(values, destinations, fixture.variable, fixture.supply, false)
		require.NoError(t, err)

		//** Act
		selections := collect(moves, -1)

		//** Assert
		m, n := values.Size(), destinations.Size()
		assert.Equal(t, m*n, moves.Size())
		assert.Len(t, selections, int(m*n))
		keys := make(map[any]bool)
		for _, selected := range selections {
			keys[move.Key(selected)] = true
		}
		assert.Len(t, keys, int(m*n), "moves must be distinct")
	})

	t.Run("Dispatch on positions", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{AllowsUnassigned: true})
		moves, err := selector.NewListChangeMoveSelector(selector.NewOriginalValueSelector(fixture.solution), fixture.destinations(t), fixture.variable, fixture.supply, false)
		require.NoError(t, err)

		//** Act
		selections := collect(moves, -1)

		//** Assert
		descriptions := make([]string, 0, len(selections))
		for _, selected := range selections {
			descriptions = append(descriptions, selected.String())
		}
		g := NewWithT(t)
		g.Expect(descriptions).To(ContainElements("C {Ann[2]->Bob[0]}", "C {Ann[2]->null}", "Z {null->Ann[0]}", "No change"))
	})

	t.Run("Random pairs never end", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{})
		random := rand.New(rand.NewPCG(11, 13))
		destinations, err := selector.NewElementDestinationSelector(
			selector.NewRandomEntitySelector(fixture.solution, random), selector.NewRandomValueSelector(fixture.solution, random),
			fixture.variable, fixture.supply, random)
		require.NoError(t, err)
		moves, err := selector.NewListChangeMoveSelector(selector.NewRandomValueSelector(fixture.solution, random), destinations, fixture.variable, fixture.supply, true)
		require.NoError(t, err)
		recorder := director.NewRecorder()

		//** Act & Assert
		executed := 0
		for selected := range moves.Iterate() {
			if executed == 100 {
				break
			}
			if selected.IsDoable() {
				// Moves are built against the current state, so each one is undone before the next pull
				undo := move.Do(selected, director.Multi(fixture.supply, recorder))
				move.Do(undo, director.Multi(fixture.supply, recorder))
			}
			executed++
		}
		assert.Equal(t, 100, executed)
		assert.Equal(t, []string{"A", "B", "C"}, fixture.ann.List())
		assert.True(t, moves.IsNeverEnding())
	})

	t.Run("Original selection rejects never-ending children", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{})
		random := selector.NewRandomValueSelector(fixture.solution, rand.New(rand.NewPCG(1, 2)))

		//** Act
		_, err := selector.NewListChangeMoveSelector(random, fixture.destinations(t), fixture.variable, fixture.supply, false)

		//** Assert
		assert.ErrorIs(t, err, selector.ErrNeverEndingChild)
	})
}

func TestListSwapMoveSelector(t *testing.T) {
	t.Run("Swap with an unassigned value", func(t *testing.T) {
		//** Arrange
		values := testdomain.NewValues("A", "B", "Z")
		ann := testdomain.NewEntity("Ann", values[0], values[1])
		variable := testdomain.NewVariable(testdomain.Options{AllowsUnassigned: true})
		solution := testdomain.NewSolution(variable, []*testdomain.Entity{ann}, values)
		state := supply.NewListVariableStateSupply(variable)
		state.Initialize(solution)
		moves, err := selector.NewListSwapMoveSelector(
			selector.NewFixedValueSelector([]model.Value{values[0]}),
			selector.NewFixedValueSelector([]model.Value{values[2]}),
			variable, state, false)
		require.NoError(t, err)

		//** Act
		selections := collect(moves, -1)
		require.Len(t, selections, 1)
		move.Do(selections[0], state)

		//** Assert
		assert.Equal(t, "A {Ann[0]->null}+Z {null->Ann[0]}", selections[0].String())
		assert.Equal(t, []string{"Z", "B"}, ann.List())
		assert.Equal(t, model.Unassigned(), state.ElementPosition(values[0]))
	})

	t.Run("Same value and two unassigned values change nothing", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{AllowsUnassigned: true})
		unassigned := &testdomain.Value{Name: "W"}
		fixture.solution.Values = append(fixture.solution.Values, unassigned)
		fixture.supply.Initialize(fixture.solution)
		z := fixture.values["Z"]
		moves, err := selector.NewListSwapMoveSelector(
			selector.NewFixedValueSelector([]model.Value{z, fixture.values["A"]}),
			selector.NewFixedValueSelector([]model.Value{unassigned, fixture.values["A"]}),
			fixture.variable, fixture.supply, false)
		require.NoError(t, err)

		//** Act
		selections := collect(moves, -1)

		//** Assert
		assert.Equal(t, int64(4), moves.Size())
		assert.Equal(t, "No change", selections[0].String())
		assert.Equal(t, "A {Ann[0]->null}+Z {null->Ann[0]}", selections[1].String())
		assert.Equal(t, "A {Ann[0]->null}+W {null->Ann[0]}", selections[2].String())
		assert.Equal(t, "No change", selections[3].String())
	})
}

func TestSubListMoveSelectors(t *testing.T) {
	t.Run("Change with reversing moves", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{})
		subLists, err := selector.NewSubListSelector(fixture.entities(), fixture.variable, 2, 2, nil)
		require.NoError(t, err)
		moves, err := selector.NewSubListChangeMoveSelector(subLists, fixture.destinations(t), fixture.variable, true, nil)
		require.NoError(t, err)

		//** Act
		selections := collect(moves, -1)

		//** Assert
		assert.Len(t, selections, 3*7*2)
		assert.Equal(t, int64(len(selections)), moves.Size())
		assert.Equal(t, "|2| {Ann[0..2]->Ann[0]}", selections[0].String())
		assert.Equal(t, "|2| {Ann[0..2]-reversing->Ann[0]}", selections[1].String())
		assert.True(t, selections[1].IsDoable())
		assert.False(t, selections[0].IsDoable())
	})

	t.Run("Unassign destination", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{AllowsUnassigned: true})
		subLists, err := selector.NewSubListSelector(fixture.entities(), fixture.variable, 3, 3, nil)
		require.NoError(t, err)
		moves, err := selector.NewSubListChangeMoveSelector(subLists, fixture.destinations(t), fixture.variable, true, nil)
		require.NoError(t, err)

		//** Act
		selections := collect(moves, -1)

		//** Assert
		// 8 destinations are yielded (Z has no slot after it), only the 7 assigned ones are reversed
		assert.Len(t, selections, 8+7)
		assert.Equal(t, int64(9+8), moves.Size())
		last := selections[len(selections)-1]
		assert.IsType(t, &move.SubListUnassignMove{}, last)
		assert.Equal(t, "|3| {Ann[0..3]->null}", last.String())
	})

	t.Run("Swap skips identical runs", func(t *testing.T) {
		//** Arrange
		fixture := newFixture(testdomain.Options{})
		subLists, err := selector.NewSubListSelector(fixture.entities(), fixture.variable, 1, 1, nil)
		require.NoError(t, err)
		moves, err := selector.NewSubListSwapMoveSelector(subLists, subLists, fixture.variable, false, nil)
		require.NoError(t, err)

		//** Act
		selections := collect(moves, -1)

		//** Assert
		assert.Len(t, selections, 5*5-5)
		assert.Equal(t, "{Ann[0..1]} <-> {Ann[1..2]}", selections[0].String())
	})
}

func TestPinSafety(t *testing.T) {
	//** Arrange
	fixture := newFixture(testdomain.Options{Pinning: true, AllowsUnassigned: true})
	fixture.ann.PinToIndex = 2
	fixture.bob.PinToIndex = 1
	pinned := map[model.Entity]int{fixture.ann: 2, fixture.bob: 1}

	values := fixture.movableValues()
	destinations := fixture.destinations(t)
	subLists, err := selector.NewSubListSelector(fixture.entities(), fixture.variable, 1, 3, nil)
	require.NoError(t, err)

	changes, err := selector.NewListChangeMoveSelector(values, destinations, fixture.variable, fixture.supply, false)
	require.NoError(t, err)
	swaps, err := selector.NewListSwapMoveSelector(values, values, fixture.variable, fixture.supply, false)
	require.NoError(t, err)
	subListChanges, err := selector.NewSubListChangeMoveSelector(subLists, destinations, fixture.variable, true, nil)
	require.NoError(t, err)
	subListSwaps, err := selector.NewSubListSwapMoveSelector(subLists, subLists, fixture.variable, true, nil)
	require.NoError(t, err)
	union, err := selector.NewUnionMoveSelector(nil, changes, swaps, subListChanges, subListSwaps)
	require.NoError(t, err)

	// Every relocated element must come from outside the pinned prefix
	var sources func(selected move.Move) []model.PositionInList
	sources = func(selected move.Move) []model.PositionInList {
		switch selected := selected.(type) {
		case *move.ListChangeMove:
			return []model.PositionInList{selected.Source()}
		case *move.ListUnassignMove:
			return []model.PositionInList{selected.Source()}
		case *move.ListSwapMove:
			return []model.PositionInList{selected.Left(), selected.Right()}
		case *move.SubListChangeMove:
			return []model.PositionInList{model.Assigned(selected.Source().Entity, selected.Source().FromIndex)}
		case *move.SubListUnassignMove:
			return []model.PositionInList{model.Assigned(selected.Source().Entity, selected.Source().FromIndex)}
		case *move.SubListSwapMove:
			return []model.PositionInList{
				model.Assigned(selected.Left().Entity, selected.Left().FromIndex),
				model.Assigned(selected.Right().Entity, selected.Right().FromIndex),
			}
		case *move.CompositeMove:
			var positions []model.PositionInList
			for _, child := range selected.Children() {
				positions = append(positions, sources(child)...)
			}
			return positions
		default:
			return nil
		}
	}

	//** Act
	selections := collect(union, -1)

	//** Assert
	assert.Equal(t, union.Size(), changes.Size()+swaps.Size()+subListChanges.Size()+subListSwaps.Size())
	assert.NotEmpty(t, selections)
	for _, selected := range selections {
		for _, source := range sources(selected) {
			assert.GreaterOrEqual(t, source.Index, pinned[source.Entity], "%v moves a pinned element", selected)
		}
		if change, ok := selected.(*move.ListChangeMove); ok {
			assert.GreaterOrEqual(t, change.Destination().Index, pinned[change.Destination().Entity], "%v inserts inside a pinned prefix", selected)
		}
	}
}

func TestRandomUnionMoveSelector(t *testing.T) {
	//** Arrange
	fixture := newFixture(testdomain.Options{})
	changes, err := selector.NewListChangeMoveSelector(selector.NewOriginalValueSelector(fixture.solution), fixture.destinations(t), fixture.variable, fixture.supply, false)
	require.NoError(t, err)
	swaps, err := selector.NewListSwapMoveSelector(selector.NewOriginalValueSelector(fixture.solution), selector.NewOriginalValueSelector(fixture.solution), fixture.variable, fixture.supply, false)
	require.NoError(t, err)
	union, err := selector.NewUnionMoveSelector(rand.New(rand.NewPCG(5, 8)), changes, swaps)
	require.NoError(t, err)

	//** Act
	selections := collect(union, -1)

	//** Assert
	assert.Len(t, selections, int(changes.Size()+swaps.Size()), "finite children are drained, then dropped")
	_, err = selector.NewUnionMoveSelector(nil)
	assert.ErrorIs(t, err, selector.ErrMissingCollaborator)
}
