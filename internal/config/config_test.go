package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/limaJavier/listmoves/internal/config"
	"github.com/limaJavier/listmoves/internal/testdomain"
	"github.com/limaJavier/listmoves/pkg/construction"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/limaJavier/listmoves/pkg/selector"
	"github.com/limaJavier/listmoves/pkg/supply"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
seed: 42
starts: 4
limit: 200
moveSelectors:
  - type: listChange
  - type: subListSwap
    selectionOrder: random
    selectReversingMoveToo: true
    maximumSubListSize: 3
  - type: ruinRecreate
    minimumRuinedCount: 2
`

func TestFromYaml(t *testing.T) {
	//** Act
	loaded, err := config.FromYaml([]byte(sample))

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, uint64(42), loaded.Seed)
	assert.Equal(t, 4, loaded.Starts)
	assert.Equal(t, 200, loaded.Limit)
	assert.Equal(t, []config.MoveSelectorConfig{
		{Type: config.ListChange, SelectionOrder: config.Original},
		{Type: config.SubListSwap, SelectionOrder: config.Random, SelectReversingMoveToo: true, MinimumSubListSize: 1, MaximumSubListSize: 3},
		{Type: config.RuinRecreate, SelectionOrder: config.Random, MinimumRuinedCount: 2, MaximumRuinedCount: config.DefaultMaximumRuinedCount},
	}, loaded.MoveSelectors)
}

func TestFromFile(t *testing.T) {
	t.Run("Json", func(t *testing.T) {
		//** Arrange
		file := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"moveSelectors": [{"type": "subListChange"}]}`), 0o644))

		//** Act
		loaded, err := config.FromFile(file)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Starts)
		assert.Equal(t, math.MaxInt, loaded.MoveSelectors[0].MaximumSubListSize)
	})

	t.Run("Yaml", func(t *testing.T) {
		//** Arrange
		file := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(file, []byte(sample), 0o644))

		//** Act
		loaded, err := config.FromFile(file)

		//** Assert
		require.NoError(t, err)
		assert.Len(t, loaded.MoveSelectors, 3)
	})

	t.Run("Missing file", func(t *testing.T) {
		//** Act
		_, err := config.FromFile(filepath.Join(t.TempDir(), "missing.yaml"))

		//** Assert
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		raw      map[string]any
		messages []string
	}{
		{
			name:     "Unknown key",
			raw:      map[string]any{"moveSelectors": []any{map[string]any{"type": "listChange", "reversing": true}}},
			messages: []string{"reversing"},
		},
		{
			name:     "No selectors",
			raw:      map[string]any{"seed": 1},
			messages: []string{"at least one move selector is required"},
		},
		{
			name:     "Unknown type",
			raw:      map[string]any{"moveSelectors": []any{map[string]any{"type": "kOpt"}}},
			messages: []string{"moveSelectors[0].type \"kOpt\""},
		},
		{
			name: "Every problem at once",
			raw: map[string]any{
				"starts": -1,
				"moveSelectors": []any{
					map[string]any{"type": "listSwap", "selectReversingMoveToo": true},
					map[string]any{"type": "subListChange", "minimumSubListSize": 3, "maximumSubListSize": 2},
					map[string]any{"type": "ruinRecreate", "selectionOrder": "original"},
					map[string]any{"type": "listChange", "selectionOrder": "shuffled", "maximumRuinedCount": 4},
				},
			},
			messages: []string{
				"starts must be at least 1",
				"moveSelectors[0].selectReversingMoveToo",
				"moveSelectors[1].maximumSubListSize (2)",
				"moveSelectors[2].selectionOrder of a ruin-and-recreate selector",
				"moveSelectors[3].selectionOrder \"shuffled\"",
				"moveSelectors[3] ruined counts",
			},
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			//** Act
			_, err := config.FromMap(testCase.raw)

			//** Assert
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			for _, message := range testCase.messages {
				assert.Contains(t, err.Error(), message)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	newSolution := func() (*model.Solution, supply.ListVariableStateSupply) {
		values := testdomain.NewValues("A", "B", "C", "X", "Y")
		ann := testdomain.NewEntity("Ann", values[0], values[1], values[2])
		bob := testdomain.NewEntity("Bob", values[3], values[4])
		variable := testdomain.NewVariable(testdomain.Options{})
		solution := testdomain.NewSolution(variable, []*testdomain.Entity{ann, bob}, values)
		state := supply.NewListVariableStateSupply(variable)
		state.Initialize(solution)
		return solution, state
	}

	t.Run("Single original selector", func(t *testing.T) {
		//** Arrange
		solution, state := newSolution()
		loaded := config.Config{Starts: 1, MoveSelectors: []config.MoveSelectorConfig{{Type: config.ListSwap, SelectionOrder: config.Original}}}

		//** Act
		moves, err := config.Build(loaded, solution, state, nil, nil)

		//** Assert
		require.NoError(t, err)
		assert.False(t, moves.IsNeverEnding())
		assert.Equal(t, int64(25), moves.Size())
	})

	t.Run("Union of original selectors", func(t *testing.T) {
		//** Arrange
		solution, state := newSolution()
		loaded, err := config.FromYaml([]byte("moveSelectors:\n  - type: listChange\n  - type: subListChange\n    maximumSubListSize: 2\n"))
		require.NoError(t, err)

		//** Act
		moves, err := config.Build(loaded, solution, state, nil, nil)

		//** Assert
		require.NoError(t, err)
		assert.False(t, moves.IsNeverEnding())
		types := make(map[string]bool)
		for selected := range moves.Iterate() {
			switch selected.(type) {
			case *move.ListChangeMove:
				types["change"] = true
			case *move.SubListChangeMove:
				types["subListChange"] = true
			}
		}
		g := NewWithT(t)
		g.Expect(types).To(HaveKey("change"))
		g.Expect(types).To(HaveKey("subListChange"))
	})

	t.Run("Random union with ruin and recreate", func(t *testing.T) {
		//** Arrange
		solution, state := newSolution()
		loaded, err := config.FromYaml([]byte(sample))
		require.NoError(t, err)
		phase := construction.NewCheapestInsertionPhase(func(*model.Solution) float64 { return 0 }, nil)

		//** Act
		moves, err := config.Build(loaded, solution, state, phase, nil)

		//** Assert
		require.NoError(t, err)
		assert.True(t, moves.IsNeverEnding())
		drawn := 0
		for range moves.Iterate() {
			if drawn++; drawn == 30 {
				break
			}
		}
		assert.Equal(t, 30, drawn)
	})

	t.Run("Ruin and recreate without construction phase", func(t *testing.T) {
		//** Arrange
		solution, state := newSolution()
		loaded := config.Config{Starts: 1, MoveSelectors: []config.MoveSelectorConfig{
			{Type: config.RuinRecreate, SelectionOrder: config.Random, MinimumRuinedCount: 1, MaximumRuinedCount: 2},
		}}

		//** Act
		_, err := config.Build(loaded, solution, state, nil, nil)

		//** Assert
		assert.ErrorIs(t, err, selector.ErrMissingCollaborator)
		assert.Contains(t, err.Error(), "moveSelectors[0] (ruinRecreate)")
	})
}
