package move_test

import (
	"testing"

	"github.com/limaJavier/listmoves/internal/testdomain"
	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/stretchr/testify/assert"
)

// appendingPhase assigns every eligible value at the end of one entity, skipping the ones it is told to leave out
type appendingPhase struct {
	entity   model.Entity
	skip     map[model.Value]bool
	recreate int
}

func (phase *appendingPhase) Recreate(scope move.RecreateScope) {
	phase.recreate++
	for _, value := range scope.Values {
		if phase.skip[value] {
			continue
		}
		move.Do(move.NewListAssignMove(scope.Variable, value, phase.entity, model.ListSize(scope.Variable, phase.entity)), scope.Director)
	}
}

// trailingPhase appends every value to the last entity of whichever solution it is given
type trailingPhase struct{}

func (trailingPhase) Recreate(scope move.RecreateScope) {
	last := scope.Solution.Entities[len(scope.Solution.Entities)-1]
	for _, value := range scope.Values {
		move.Do(move.NewListAssignMove(scope.Variable, value, last, model.ListSize(scope.Variable, last)), scope.Director)
	}
}

func newRuinScenario() (*scenario, *testdomain.Entity, *testdomain.Entity) {
	values := testdomain.NewValues("p", "q", "r", "s", "u", "w")
	byName := make(map[string]*testdomain.Value)
	for _, value := range values {
		byName[value.Name] = value
	}
	e1 := testdomain.NewEntity("e1", values[0], values[1], values[2], values[3])
	e2 := testdomain.NewEntity("e2", values[4], values[5])
	variable := testdomain.NewVariable(testdomain.Options{AllowsUnassigned: true})
	return newScenarioOf(variable, []*testdomain.Entity{e1, e2}, values, byName), e1, e2
}

func TestListRuinRecreateMove(t *testing.T) {
	t.Run("Removal order", func(t *testing.T) {
		//** Arrange
		scenario, e1, e2 := newRuinScenario()
		q, u, s := scenario.values["q"], scenario.values["u"], scenario.values["s"]
		phase := &appendingPhase{entity: e2}
		ruin := move.NewListRuinRecreateMove(scenario.variable, scenario.supply, phase, []model.Value{q, u, s}, nil)

		//** Act
		order := ruin.RemovalOrder()
		scenario.recorder.Reset()
		ruin.Execute(scenario.director())

		//** Assert
		assert.Equal(t, []model.PositionInList{model.Assigned(e1, 3), model.Assigned(e1, 1), model.Assigned(e2, 0)}, order)
		removals := changes(scenario.recorder.Events())[:6]
		assert.Equal(t, []director.Event{
			before(e1, 3, 4), after(e1, 3, 3),
			before(e1, 1, 2), after(e1, 1, 1),
			before(e2, 0, 1), after(e2, 0, 0),
		}, removals)
		assert.Equal(t, []model.Entity{e1, e2}, ruin.PlanningEntities())
	})

	t.Run("Recreate and undo", func(t *testing.T) {
		//** Arrange
		scenario, e1, e2 := newRuinScenario()
		q, u, s := scenario.values["q"], scenario.values["u"], scenario.values["s"]
		phase := &appendingPhase{entity: e2, skip: map[model.Value]bool{s: true}}
		ruin := move.NewListRuinRecreateMove(scenario.variable, scenario.supply, phase, []model.Value{q, u, s}, nil)
		before := scenario.solution.Snapshot()

		//** Act
		assert.True(t, ruin.IsDoable())
		assert.Panics(t, func() { ruin.CreateUndoMove() })
		undo := move.Do(ruin, scenario.director())

		//** Assert
		assert.Equal(t, 1, phase.recreate)
		assert.Equal(t, []string{"p", "r"}, e1.List())
		assert.Equal(t, []string{"w", "q", "u"}, e2.List())
		assert.Equal(t, model.Unassigned(), scenario.supply.ElementPosition(s))
		assert.Equal(t, 1, scenario.supply.UnassignedCount())

		replay, ok := undo.(*move.ListRuinRecreateMove)
		assert.True(t, ok)
		assert.True(t, replay.IsReplay())

		move.Do(undo, scenario.director())
		assert.Equal(t, before, scenario.solution.Snapshot())
		assert.Equal(t, 1, phase.recreate, "the undo must not run the construction phase again")
		assert.Equal(t, model.Assigned(e1, 3), scenario.supply.ElementPosition(s))
		assert.Equal(t, 0, scenario.supply.UnassignedCount())

		//** Act: redo through the undo of the replay
		move.Do(undo.CreateUndoMove(), scenario.director())

		//** Assert
		assert.Equal(t, []string{"w", "q", "u"}, e2.List())
		assert.Equal(t, 1, phase.recreate)
	})

	t.Run("Rebase", func(t *testing.T) {
		//** Arrange
		working, e1, e2 := newRuinScenario()
		authoritative, f1, f2 := newRuinScenario()
		q, u := working.values["q"], working.values["u"]
		ruin := move.NewListRuinRecreateMove(working.variable, working.supply, trailingPhase{}, []model.Value{q, u}, nil)
		copies := map[any]any{e1: f1, e2: f2}
		for name, value := range working.values {
			copies[value] = authoritative.values[name]
		}
		before := working.solution.Snapshot()

		//** Act
		rebased := ruin.Rebase(model.NewLookupRebaser(copies))
		undo := move.Do(rebased, authoritative.director())

		//** Assert
		assert.Equal(t, []model.Value{copies[q], copies[u]}, rebased.PlanningValues())
		assert.Equal(t, []model.Entity{f1, f2}, rebased.PlanningEntities())
		assert.False(t, move.Equal(ruin, rebased))
		assert.Equal(t, before, working.solution.Snapshot(), "the working copy is left untouched")
		assert.Equal(t, []string{"p", "r", "s"}, f1.List())
		assert.Equal(t, []string{"w", "q", "u"}, f2.List())
		assert.Equal(t, model.Assigned(f2, 2), authoritative.supply.ElementPosition(copies[u]))

		move.Do(undo, authoritative.director())
		assert.Equal(t, []string{"p", "q", "r", "s"}, f1.List())
		assert.Equal(t, []string{"u", "w"}, f2.List())
		assert.Equal(t, model.Assigned(f1, 1), authoritative.supply.ElementPosition(copies[q]))
	})

	t.Run("Rebased move needs a state supply in its director", func(t *testing.T) {
		//** Arrange
		working, e1, e2 := newRuinScenario()
		authoritative, f1, f2 := newRuinScenario()
		q := working.values["q"]
		ruin := move.NewListRuinRecreateMove(working.variable, working.supply, trailingPhase{}, []model.Value{q}, nil)
		rebased := ruin.Rebase(model.NewLookupRebaser(map[any]any{e1: f1, e2: f2, q: authoritative.values["q"]}))

		//** Act & Assert
		assert.Panics(t, func() { rebased.Execute(director.Nop{}) })
		assert.Equal(t, []string{"p", "q", "r", "s"}, f1.List())
	})
}
