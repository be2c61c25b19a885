package experiments

import (
	"context"

	"hexzero/experiments/metrics"
	"hexzero/game"
)

// RunThroughputExperiment measures search throughput as goroutines grow.
// Each matchup uses the same config for both players, for the same playing
// strength and similar game length.
func RunThroughputExperiment(ctx context.Context, h *game.Hex, base metrics.AgentConfig, goroutines []int, games int, output string) (*Result, error) {
	configs := make([]metrics.AgentConfig, len(goroutines))
	matchUps := make([][]metrics.AgentConfig, len(goroutines))
	for i, g := range goroutines {
		config := base
		config.ID = i + 1
		config.Kind = metrics.KindMCTS
		config.Goroutines = g
		configs[i] = config
		matchUps[i] = []metrics.AgentConfig{config, config}
	}
	return runExperiment(ctx, h, "throughput", configs, matchUps, games, output)
}
