package config

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/limaJavier/listmoves/pkg/selector"
	"github.com/limaJavier/listmoves/pkg/supply"
	"github.com/samber/lo"
)

// Build creates the move selector tree the configuration describes over the given solution. Several
// selectors are combined in a union, which picks a child at random when any child selects randomly. The
// construction phase is only needed by ruin-and-recreate selectors.
func Build(config Config, solution *model.Solution, stateSupply supply.ListVariableStateSupply, phase move.ConstructionPhase, logger *slog.Logger) (selector.MoveSelector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	random := rand.New(rand.NewPCG(config.Seed, config.Seed))

	children := make([]selector.MoveSelector, 0, len(config.MoveSelectors))
	for index, selectorConfig := range config.MoveSelectors {
		child, err := buildMoveSelector(selectorConfig, solution, stateSupply, phase, random, logger)
		if err != nil {
			return nil, fmt.Errorf("moveSelectors[%d] (%v): %w", index, selectorConfig.Type, err)
		}
		children = append(children, child)
	}
	if len(children) == 1 {
		return children[0], nil
	}

	var unionRandom *rand.Rand
	if lo.SomeBy(config.MoveSelectors, func(selectorConfig MoveSelectorConfig) bool { return selectorConfig.SelectionOrder == Random }) {
		unionRandom = random
	}
	return selector.NewUnionMoveSelector(unionRandom, children...)
}

func buildMoveSelector(selectorConfig MoveSelectorConfig, solution *model.Solution, stateSupply supply.ListVariableStateSupply, phase move.ConstructionPhase, random *rand.Rand, logger *slog.Logger) (selector.MoveSelector, error) {
	variable := solution.Variable
	var order *rand.Rand
	if selectorConfig.SelectionOrder == Random {
		order = random
	}

	// Sub-list selectors weigh every entity on each draw, so they always walk the entities in order
	originalEntities := func() selector.EntitySelector {
		return selector.FilterPinnedEntities(selector.NewOriginalEntitySelector(solution), variable)
	}
	entities := func() selector.EntitySelector {
		if order == nil {
			return originalEntities()
		}
		return selector.FilterPinnedEntities(selector.NewRandomEntitySelector(solution, order), variable)
	}
	values := func() selector.ValueSelector {
		if order == nil {
			return selector.FilterPinnedValues(selector.NewOriginalValueSelector(solution), variable, stateSupply)
		}
		return selector.FilterPinnedValues(selector.NewRandomValueSelector(solution, order), variable, stateSupply)
	}
	destinations := func() (selector.DestinationSelector, error) {
		return selector.NewElementDestinationSelector(entities(), values(), variable, stateSupply, order)
	}

	switch selectorConfig.Type {
	case ListChange:
		destinations, err := destinations()
		if err != nil {
			return nil, err
		}
		return selector.NewListChangeMoveSelector(values(), destinations, variable, stateSupply, order != nil)

	case ListSwap:
		return selector.NewListSwapMoveSelector(values(), values(), variable, stateSupply, order != nil)

	case SubListChange:
		subLists, err := selector.NewSubListSelector(originalEntities(), variable, selectorConfig.MinimumSubListSize, selectorConfig.MaximumSubListSize, order)
		if err != nil {
			return nil, err
		}
		destinations, err := destinations()
		if err != nil {
			return nil, err
		}
		return selector.NewSubListChangeMoveSelector(subLists, destinations, variable, selectorConfig.SelectReversingMoveToo, order)

	case SubListSwap:
		left, err := selector.NewSubListSelector(originalEntities(), variable, selectorConfig.MinimumSubListSize, selectorConfig.MaximumSubListSize, order)
		if err != nil {
			return nil, err
		}
		right, err := selector.NewSubListSelector(originalEntities(), variable, selectorConfig.MinimumSubListSize, selectorConfig.MaximumSubListSize, order)
		if err != nil {
			return nil, err
		}
		return selector.NewSubListSwapMoveSelector(left, right, variable, selectorConfig.SelectReversingMoveToo, order)

	case RuinRecreate:
		return selector.NewListRuinRecreateMoveSelector(selector.ListRuinRecreateMoveSelectorConfig{
			Values:             selector.FilterPinnedValues(selector.NewOriginalValueSelector(solution), variable, stateSupply),
			Variable:           variable,
			Supply:             stateSupply,
			Phase:              phase,
			MinimumRuinedCount: selectorConfig.MinimumRuinedCount,
			MaximumRuinedCount: selectorConfig.MaximumRuinedCount,
			Random:             random,
			Logger:             logger,
		})
	}
	return nil, fmt.Errorf("%w: unknown move selector type \"%v\"", ErrInvalidConfig, selectorConfig.Type)
}
