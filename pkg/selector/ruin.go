package selector

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/limaJavier/listmoves/pkg/supply"
)

type listRuinRecreateMoveSelector struct {
	values             ValueSelector
	variable           model.ListVariable
	supply             supply.ListVariableStateSupply
	phase              move.ConstructionPhase
	minimumRuinedCount int
	maximumRuinedCount int
	random             *rand.Rand
	logger             *slog.Logger
}

// ListRuinRecreateMoveSelectorConfig gathers the collaborators of NewListRuinRecreateMoveSelector
type ListRuinRecreateMoveSelectorConfig struct {
	// Finite selector of the values that may be ruined; pinned values should already be filtered out
	Values             ValueSelector
	Variable           model.ListVariable
	Supply             supply.ListVariableStateSupply
	Phase              move.ConstructionPhase
	MinimumRuinedCount int
	MaximumRuinedCount int
	Random             *rand.Rand
	Logger             *slog.Logger
}

// NewListRuinRecreateMoveSelector draws, forever, ruin-and-recreate moves over k distinct assigned values,
// with k uniform in [MinimumRuinedCount, MaximumRuinedCount] and capped by the number of assigned values
func NewListRuinRecreateMoveSelector(config ListRuinRecreateMoveSelectorConfig) (MoveSelector, error) {
	if config.Values == nil || config.Variable == nil || config.Supply == nil || config.Phase == nil || config.Random == nil {
		return nil, fmt.Errorf("ruin-and-recreate move selector: %w: values, variable, supply, construction phase and random are required", ErrMissingCollaborator)
	}
	if config.Values.IsNeverEnding() {
		return nil, fmt.Errorf("ruin-and-recreate move selector of \"%v\": %w", config.Variable.Name(), ErrNeverEndingChild)
	}
	if config.MinimumRuinedCount < 1 || config.MaximumRuinedCount < config.MinimumRuinedCount {
		return nil, fmt.Errorf("ruin-and-recreate move selector of \"%v\": %w: minimum (%d) must be at least 1 and at most the maximum (%d)",
			config.Variable.Name(), ErrInvalidRuinedCount, config.MinimumRuinedCount, config.MaximumRuinedCount)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &listRuinRecreateMoveSelector{
		values:             config.Values,
		variable:           config.Variable,
		supply:             config.Supply,
		phase:              config.Phase,
		minimumRuinedCount: config.MinimumRuinedCount,
		maximumRuinedCount: config.MaximumRuinedCount,
		random:             config.Random,
		logger:             logger,
	}, nil
}

func (selector *listRuinRecreateMoveSelector) candidates() []model.Value {
	var assigned []model.Value
	for value := range selector.values.Iterate() {
		if model.IsAssigned(selector.supply.ElementPosition(value)) {
			assigned = append(assigned, value)
		}
	}
	return assigned
}

func (selector *listRuinRecreateMoveSelector) Iterate() iter.Seq[move.Move] {
	return func(yield func(move.Move) bool) {
		for {
			candidates := selector.candidates()
			if len(candidates) == 0 {
				return
			}
			minimum := min(selector.minimumRuinedCount, len(candidates))
			maximum := min(selector.maximumRuinedCount, len(candidates))
			count := minimum + selector.random.IntN(maximum-minimum+1)

			// Partial Fisher-Yates: the first count candidates become a uniform sample without replacement
			for index := range count {
				swapped := index + selector.random.IntN(len(candidates)-index)
				candidates[index], candidates[swapped] = candidates[swapped], candidates[index]
			}
			ruined := candidates[:count]

			if !yield(move.NewListRuinRecreateMove(selector.variable, selector.supply, selector.phase, ruined, selector.logger)) {
				return
			}
		}
	}
}

// Number of distinct batches of the currently assigned values, saturating at math.MaxInt64
func (selector *listRuinRecreateMoveSelector) Size() int64 {
	total := int64(len(selector.candidates()))
	var size int64
	if total == 0 {
		return size
	}
	// Batch sizes are clamped to the candidates the way Iterate clamps them
	for count := min(int64(selector.minimumRuinedCount), total); count <= min(int64(selector.maximumRuinedCount), total); count++ {
		size = saturatingAdd(size, binomial(total, count))
	}
	return size
}

func (selector *listRuinRecreateMoveSelector) IsNeverEnding() bool {
	return true
}

func binomial(n, k int64) int64 {
	k = min(k, n-k)
	result := int64(1)
	for i := int64(1); i <= k; i++ {
		if result > math.MaxInt64/(n-k+i) {
			return math.MaxInt64
		}
		result = result * (n - k + i) / i
	}
	return result
}

func saturatingAdd(left, right int64) int64 {
	if left > math.MaxInt64-right {
		return math.MaxInt64
	}
	return left + right
}
