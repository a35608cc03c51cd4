package main

import (
	"github.com/limaJavier/listmoves/internal/config"
	"github.com/limaJavier/listmoves/internal/metrics"
	"github.com/limaJavier/listmoves/internal/problem"
	"github.com/limaJavier/listmoves/pkg/construction"
	"github.com/limaJavier/listmoves/pkg/supply"
	"github.com/spf13/cobra"
)

type movesOutput struct {
	Problem    string          `json:"problem"`
	Routes     []problem.Route `json:"routes"`
	Unassigned []string        `json:"unassigned"`
	Size       int64           `json:"size"`
	Moves      []selectedMove  `json:"moves"`
}

type selectedMove struct {
	Move   string `json:"move"`
	Type   string `json:"type"`
	Doable bool   `json:"doable"`
}

func newMovesCommand(shared *options) *cobra.Command {
	limit := 0
	command := &cobra.Command{
		Use:   "moves",
		Short: "List the moves the configured selectors produce on the problem",
		RunE: func(cmd *cobra.Command, _ []string) error {
			routing, loaded, err := shared.load()
			if err != nil {
				return err
			}
			if limit == 0 {
				limit = loaded.Limit
			}

			stateSupply := supply.NewListVariableStateSupply(routing.Variable)
			stateSupply.Initialize(routing.Solution)
			logger := shared.logger(cmd)
			phase := construction.NewCheapestInsertionPhase(routing.Distance, logger)
			moves, err := config.Build(loaded, routing.Solution, stateSupply, phase, logger)
			if err != nil {
				return err
			}
			if limit <= 0 && moves.IsNeverEnding() {
				limit = 100
			}

			output := movesOutput{
				Problem:    routing.Name,
				Routes:     routing.Routes(),
				Unassigned: routing.Unassigned(),
				Size:       moves.Size(),
				Moves:      make([]selectedMove, 0),
			}
			for selected := range moves.Iterate() {
				if limit > 0 && len(output.Moves) == limit {
					break
				}
				output.Moves = append(output.Moves, selectedMove{
					Move:   selected.String(),
					Type:   metrics.MoveType(selected),
					Doable: selected.IsDoable(),
				})
			}
			return writeJson(cmd.OutOrStdout(), shared.outFile, output)
		},
	}
	command.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of moves to list; defaults to the configured limit, or 100 for never-ending selectors")
	return command
}
