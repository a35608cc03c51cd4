package move

import (
	"cmp"
	"fmt"
	"log"
	"log/slog"
	"slices"

	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/supply"
	"github.com/samber/lo"
)

// ConstructionPhase places values that are currently unassigned. Ruin-and-recreate runs it to completion
// on the ruined values; whatever it leaves unassigned stays unassigned.
type ConstructionPhase interface {
	Recreate(scope RecreateScope)
}

// RecreateScope is what a construction phase may work with: only Values are eligible for placement, and
// every mutation must go through Director. Solution is the one being executed on.
type RecreateScope struct {
	Variable model.ListVariable
	Solution *model.Solution
	Supply   supply.ListVariableStateSupply
	Director director.Director
	Values   []model.Value
}

// ListRuinRecreateMove removes a batch of values and lets a construction phase place them again. The
// director given to Execute must keep a state supply of the variable current; the move asks that supply
// where the values are, so a rebased move works on the solution it is executed against.
//
// Its undo is a replay: a move of the same type that puts each value back to a recorded position without
// running any construction phase.
type ListRuinRecreateMove struct {
	variable         model.ListVariable
	supply           supply.ListVariableStateSupply
	phase            ConstructionPhase
	logger           *slog.Logger
	ruinedValues     []model.Value
	affectedEntities []model.Entity

	replay bool
	// Where the values were when the move started, and where they ended up
	fromPositions []model.ElementPosition
	toPositions   []model.ElementPosition
}

type ruinKey struct {
	values   any
	entities any
	replay   bool
	targets  any
}

type placement struct {
	value    model.Value
	position model.PositionInList
}

func NewListRuinRecreateMove(variable model.ListVariable, stateSupply supply.ListVariableStateSupply, phase ConstructionPhase, ruinedValues []model.Value, logger *slog.Logger) *ListRuinRecreateMove {
	if logger == nil {
		logger = slog.Default()
	}
	ruinedValues = slices.Clone(ruinedValues)
	entities := lo.Uniq(lo.FilterMap(ruinedValues, func(value model.Value, _ int) (model.Entity, bool) {
		position, ok := stateSupply.ElementPosition(value).(model.PositionInList)
		return position.Entity, ok
	}))

	return &ListRuinRecreateMove{
		variable:         variable,
		supply:           stateSupply,
		phase:            phase,
		logger:           logger,
		ruinedValues:     ruinedValues,
		affectedEntities: entities,
	}
}

func newListRuinRecreateReplay(origin *ListRuinRecreateMove, fromPositions, toPositions []model.ElementPosition) *ListRuinRecreateMove {
	return &ListRuinRecreateMove{
		variable:         origin.variable,
		supply:           origin.supply,
		phase:            origin.phase,
		logger:           origin.logger,
		ruinedValues:     origin.ruinedValues,
		affectedEntities: origin.affectedEntities,
		replay:           true,
		fromPositions:    slices.Clone(fromPositions),
		toPositions:      slices.Clone(toPositions),
	}
}

func (move *ListRuinRecreateMove) RuinedValues() []model.Value {
	return slices.Clone(move.ruinedValues)
}

// IsReplay checks whether the move restores recorded positions instead of running a construction phase
func (move *ListRuinRecreateMove) IsReplay() bool {
	return move.replay
}

func (move *ListRuinRecreateMove) IsDoable() bool {
	return true
}

func (move *ListRuinRecreateMove) Execute(scoreDirector director.Director) {
	if move.replay {
		move.remove(scoreDirector, move.fromPositions)
		move.insert(scoreDirector, move.toPositions)
		return
	}

	stateSupply := move.stateSupply(scoreDirector)
	originals := currentPositions(stateSupply, move.ruinedValues)
	move.remove(scoreDirector, originals)
	scoreDirector.TriggerVariableListeners()

	move.phase.Recreate(RecreateScope{
		Variable: move.variable,
		Solution: stateSupply.Solution(),
		Supply:   stateSupply,
		Director: scoreDirector,
		Values:   slices.Clone(move.ruinedValues),
	})

	move.fromPositions = originals
	move.toPositions = currentPositions(stateSupply, move.ruinedValues)
	move.logger.Debug("Ruined and recreated values",
		"variable", move.variable.Name(),
		"ruined", len(move.ruinedValues),
		"leftUnassigned", lo.CountBy(move.toPositions, func(position model.ElementPosition) bool { return !model.IsAssigned(position) }))
}

// Returns the state supply the director keeps current, falling back to the one the move was built with
func (move *ListRuinRecreateMove) stateSupply(scoreDirector director.Director) supply.ListVariableStateSupply {
	found, ok := director.Find(scoreDirector, func(candidate supply.ListVariableStateSupply) bool {
		return candidate.Variable().Name() == move.variable.Name()
	})
	if ok {
		return found
	}
	if move.supply == nil {
		log.Panicf("%v was executed with a director that keeps no state supply of \"%v\" current", move, move.variable.Name())
	}
	return move.supply
}

func currentPositions(stateSupply supply.ListVariableStateSupply, values []model.Value) []model.ElementPosition {
	return lo.Map(values, func(value model.Value, _ int) model.ElementPosition {
		return stateSupply.ElementPosition(value)
	})
}

// Removes the assigned values entity by entity, highest index first, so pending indices stay valid
func (move *ListRuinRecreateMove) remove(scoreDirector director.Director, positions []model.ElementPosition) {
	for _, placed := range move.placements(positions, true) {
		entity, index := placed.position.Entity, placed.position.Index
		if current := model.Element(move.variable, entity, index); current != placed.value {
			log.Panicf("%v expected value %v at %v but found %v", move, placed.value, placed.position, current)
		}
		scoreDirector.BeforeListVariableElementUnassigned(move.variable, placed.value)
		scoreDirector.BeforeListVariableChanged(move.variable, entity, index, index+1)
		model.RemoveElement(move.variable, entity, index)
		scoreDirector.AfterListVariableChanged(move.variable, entity, index, index)
		scoreDirector.AfterListVariableElementUnassigned(move.variable, placed.value)
	}
}

// Inserts the values entity by entity, lowest index first, so each target index is valid when reached
func (move *ListRuinRecreateMove) insert(scoreDirector director.Director, positions []model.ElementPosition) {
	for _, placed := range move.placements(positions, false) {
		entity, index := placed.position.Entity, placed.position.Index
		scoreDirector.BeforeListVariableElementAssigned(move.variable, placed.value)
		scoreDirector.BeforeListVariableChanged(move.variable, entity, index, index)
		model.AddElement(move.variable, entity, index, placed.value)
		scoreDirector.AfterListVariableChanged(move.variable, entity, index, index+1)
		scoreDirector.AfterListVariableElementAssigned(move.variable, placed.value)
	}
}

// Returns the assigned placements grouped by entity (in first-seen order) and sorted by index
func (move *ListRuinRecreateMove) placements(positions []model.ElementPosition, descending bool) []placement {
	assigned := lo.FilterMap(move.ruinedValues, func(value model.Value, index int) (placement, bool) {
		position, ok := positions[index].(model.PositionInList)
		return placement{value: value, position: position}, ok
	})
	entities := lo.Uniq(lo.Map(assigned, func(placed placement, _ int) model.Entity {
		return placed.position.Entity
	}))

	ordered := make([]placement, 0, len(assigned))
	for _, entity := range entities {
		group := lo.Filter(assigned, func(placed placement, _ int) bool {
			return placed.position.Entity == entity
		})
		slices.SortFunc(group, func(left, right placement) int {
			if descending {
				return cmp.Compare(right.position.Index, left.position.Index)
			}
			return cmp.Compare(left.position.Index, right.position.Index)
		})
		ordered = append(ordered, group...)
	}
	return ordered
}

// RemovalOrder returns the positions the ruin removes, in removal order, given where the values are now
func (move *ListRuinRecreateMove) RemovalOrder() []model.PositionInList {
	positions := move.fromPositions
	if !move.replay {
		if move.supply == nil {
			log.Panicf("%v has no state supply to tell where its values are", move)
		}
		positions = currentPositions(move.supply, move.ruinedValues)
	}
	return lo.Map(move.placements(positions, true), func(placed placement, _ int) model.PositionInList {
		return placed.position
	})
}

func (move *ListRuinRecreateMove) CreateUndoMove() Move {
	if move.toPositions == nil {
		log.Panicf("cannot create the undo move of %v before it was executed", move)
	}
	return newListRuinRecreateReplay(move, move.toPositions, move.fromPositions)
}

func (move *ListRuinRecreateMove) Rebase(rebaser model.Rebaser) Move {
	rebasePositions := func(positions []model.ElementPosition) []model.ElementPosition {
		if positions == nil {
			return nil
		}
		return lo.Map(positions, func(position model.ElementPosition, _ int) model.ElementPosition {
			return model.RebasePosition(position, rebaser)
		})
	}
	// The supply belongs to the source solution; the rebased move finds the destination's in its director
	return &ListRuinRecreateMove{
		variable:         move.variable,
		phase:            move.phase,
		logger:           move.logger,
		ruinedValues:     rebaseAll(move.ruinedValues, rebaser),
		affectedEntities: lo.Map(move.affectedEntities, func(entity model.Entity, _ int) model.Entity { return rebaser.Rebase(entity) }),
		replay:           move.replay,
		fromPositions:    rebasePositions(move.fromPositions),
		toPositions:      rebasePositions(move.toPositions),
	}
}

func (move *ListRuinRecreateMove) PlanningEntities() []model.Entity {
	if !move.replay {
		return slices.Clone(move.affectedEntities)
	}
	touched := lo.FilterMap(append(slices.Clone(move.fromPositions), move.toPositions...), func(position model.ElementPosition, _ int) (model.Entity, bool) {
		assigned, ok := position.(model.PositionInList)
		return assigned.Entity, ok
	})
	return lo.Uniq(touched)
}

func (move *ListRuinRecreateMove) PlanningValues() []model.Value {
	return slices.Clone(move.ruinedValues)
}

func (move *ListRuinRecreateMove) key() any {
	key := ruinKey{values: chainOf(move.ruinedValues), entities: chainOf(move.affectedEntities), replay: move.replay}
	if move.replay {
		key.targets = chainOf(move.toPositions)
	}
	return key
}

func (move *ListRuinRecreateMove) String() string {
	if move.replay {
		return fmt.Sprintf("ListRuinRecreateMove{%v, values=%v, replaying to %v}", move.variable.Name(), move.ruinedValues, move.toPositions)
	}
	return fmt.Sprintf("ListRuinRecreateMove{%v, values=%v, entities=%v}", move.variable.Name(), move.ruinedValues, move.affectedEntities)
}
