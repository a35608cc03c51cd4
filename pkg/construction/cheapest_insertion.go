// Package construction places unassigned list values, one at a time, where they cost the least.
package construction

import (
	"log/slog"
	"math"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
)

// CostFunction evaluates the current state of the working solution; lower is better
type CostFunction func(solution *model.Solution) float64

type cheapestInsertionPhase struct {
	cost   CostFunction
	logger *slog.Logger
}

// NewCheapestInsertionPhase returns the construction phase that tries every movable slot of every entity
// for each value, in the order the values are given, and keeps the cheapest one. A value no entity
// accepts is left unassigned. It works on whichever solution the recreate scope names.
func NewCheapestInsertionPhase(cost CostFunction, logger *slog.Logger) move.ConstructionPhase {
	if logger == nil {
		logger = slog.Default()
	}
	return &cheapestInsertionPhase{
		cost:   cost,
		logger: logger,
	}
}

func (phase *cheapestInsertionPhase) Recreate(scope move.RecreateScope) {
	placed := 0
	for _, value := range scope.Values {
		if model.IsAssigned(scope.Supply.ElementPosition(value)) {
			continue
		}

		best, bestCost := move.Move(nil), math.Inf(1)
		for _, entity := range scope.Solution.Entities {
			if scope.Variable.IsEntityPinned(entity) {
				continue
			}
			firstIndex := 0
			if scope.Variable.SupportsPinning() {
				firstIndex = scope.Variable.FirstUnpinnedIndex(entity)
			}
			for index := firstIndex; index <= model.ListSize(scope.Variable, entity); index++ {
				assign := move.NewListAssignMove(scope.Variable, value, entity, index)
				if !assign.IsDoable() {
					continue
				}
				undo := move.Do(assign, scope.Director)
				cost := phase.cost(scope.Solution)
				move.Do(undo, scope.Director)
				if cost < bestCost {
					best, bestCost = assign, cost
				}
			}
		}

		if best == nil {
			phase.logger.Debug("No entity accepts value, leaving it unassigned", "variable", scope.Variable.Name(), "value", value)
			continue
		}
		move.Do(best, scope.Director)
		placed++
	}
	phase.logger.Debug("Cheapest insertion finished", "variable", scope.Variable.Name(), "values", len(scope.Values), "placed", placed)
}
