package main

import (
	"errors"
	"fmt"
	"sort"

	"hexzero/experiments"
	"hexzero/experiments/metrics"

	"github.com/spf13/cobra"
)

var (
	throughput []int

	arenaCmd = &cobra.Command{
		Use:   "arena",
		Short: "Play the configured agents against each other and write CSV records",
		Args:  cobra.NoArgs,
		RunE:  runArenaCommand,
	}
)

func init() {
	arenaCmd.Flags().IntSliceVar(&throughput, "throughput", nil, "measure throughput of the first search agent at these goroutine counts instead")
}

func runArenaCommand(cmd *cobra.Command, args []string) error {
	h := newGame()

	var result *experiments.Result
	var err error
	if len(throughput) > 0 {
		base, ok := firstSearchAgent(cfg.Arena.Agents)
		if !ok {
			return errors.New("throughput needs an mcts agent in the arena config")
		}
		result, err = experiments.RunThroughputExperiment(cmd.Context(), h, base, throughput, cfg.Arena.Games, cfg.Arena.Output)
	} else {
		if len(cfg.Arena.Agents) < 2 {
			return errors.New("arena needs at least two agents")
		}
		result, err = experiments.RunRoundRobin(cmd.Context(), h, cfg.Arena.Agents, cfg.Arena.Games, cfg.Arena.Output)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ids := make([]int, 0, len(result.Scores))
	for id := range result.Scores {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		score := result.Scores[id]
		fmt.Fprintf(out, "agent %d: %d games, %d wins, %d losses\n", id, score.Games, score.Wins, score.Losses)
	}
	if result.Dir != "" {
		fmt.Fprintf(out, "records written to %s\n", result.Dir)
	}
	return nil
}

func firstSearchAgent(configs []metrics.AgentConfig) (metrics.AgentConfig, bool) {
	for _, c := range configs {
		if c.Kind == metrics.KindMCTS {
			return c, true
		}
	}
	return metrics.AgentConfig{}, false
}
