package main

import (
	"fmt"
	"runtime"

	"github.com/limaJavier/listmoves/internal/config"
	"github.com/limaJavier/listmoves/internal/inspect"
	"github.com/limaJavier/listmoves/internal/metrics"
	"github.com/limaJavier/listmoves/pkg/construction"
	"github.com/limaJavier/listmoves/pkg/supply"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type startResult struct {
	Start int    `json:"start"`
	Seed  uint64 `json:"seed"`
	inspect.Summary
	Distance float64 `json:"distance"`
}

type checkOutput struct {
	Problem string        `json:"problem"`
	Starts  []startResult `json:"starts"`
	Failed  int           `json:"failed"`
}

func newCheckCommand(shared *options) *cobra.Command {
	var csvFile, metricsFile string
	command := &cobra.Command{
		Use:   "check",
		Short: "Execute and undo the configured moves on independent copies of the problem, verifying every one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			routing, loaded, err := shared.load()
			if err != nil {
				return err
			}
			logger := shared.logger(cmd)
			registry := prometheus.NewRegistry()
			inspection := metrics.NewInspectionMetrics(registry)

			results := make([]startResult, loaded.Starts)
			group, ctx := errgroup.WithContext(cmd.Context())
			group.SetLimit(runtime.GOMAXPROCS(0))
			for start := range loaded.Starts {
				group.Go(func() error {
					// Every start works on its own copy, so starts share nothing but the metrics
					working, _ := routing.Clone()
					startConfig := loaded
					startConfig.Seed = loaded.Seed + uint64(start)

					stateSupply := supply.NewListVariableStateSupply(working.Variable)
					stateSupply.Initialize(working.Solution)
					phase := construction.NewCheapestInsertionPhase(working.Distance, logger)
					moves, err := config.Build(startConfig, working.Solution, stateSupply, phase, logger)
					if err != nil {
						return err
					}

					inspector := inspect.NewInspector(working.Solution, stateSupply, inspection, logger.With("start", start))
					summary, err := inspector.CheckAll(ctx, moves, loaded.Limit)
					if err != nil {
						return fmt.Errorf("start %d: %w", start, err)
					}
					results[start] = startResult{
						Start:    start,
						Seed:     startConfig.Seed,
						Summary:  summary,
						Distance: working.Distance(working.Solution),
					}
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			output := checkOutput{
				Problem: routing.Name,
				Starts:  results,
				Failed:  lo.SumBy(results, func(result startResult) int { return result.Failed }),
			}
			if err := writeJson(cmd.OutOrStdout(), shared.outFile, output); err != nil {
				return err
			}
			if csvFile != "" {
				if err := toCsv(csvFile, results); err != nil {
					return err
				}
			}
			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
					return fmt.Errorf("cannot write metrics file: %w", err)
				}
			}
			if output.Failed > 0 {
				return fmt.Errorf("%d moves misbehaved", output.Failed)
			}
			return nil
		},
	}
	command.Flags().StringVar(&csvFile, "csv", "", "Path to a CSV file receiving one row per start")
	command.Flags().StringVar(&metricsFile, "metrics", "", "Path to a file receiving the inspection metrics in Prometheus text format")
	return command
}
