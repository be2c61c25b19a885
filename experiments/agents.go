package experiments

import (
	"fmt"

	"hexzero/config"
	"hexzero/experiments/metrics"
	"hexzero/game"
	"hexzero/searcher"
	"hexzero/searcher/agent"
)

// NewOracle builds the network-free oracle named in the configuration.
func NewOracle(h *game.Hex, name string, rollouts int, seed uint64, cache bool) (game.Oracle, error) {
	var oracle game.Oracle
	switch name {
	case config.OracleUniform:
		oracle = searcher.UniformOracle{Game: h}
	case config.OracleRollout:
		oracle = searcher.NewRolloutOracle(h, rollouts, seed)
	default:
		return nil, fmt.Errorf("unknown oracle %q", name)
	}
	if cache {
		oracle = searcher.NewCachedOracle(h, oracle)
	}
	return oracle, nil
}

// NewSearch builds an MCTS from the search section of the configuration.
func NewSearch(h *game.Hex, c config.SearchConfig) (*searcher.MCTS, error) {
	oracle, err := NewOracle(h, c.Oracle, c.Rollouts, c.Seed, c.Cache)
	if err != nil {
		return nil, err
	}
	return searcher.NewMCTS(h, oracle, c.Goroutines,
		searcher.WithEpisodes(c.Episodes),
		searcher.WithDuration(c.Duration),
		searcher.WithCPuct(c.CPuct),
		searcher.WithMetrics(),
	), nil
}

func createAgent(h *game.Hex, c metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	switch c.Kind {
	case metrics.KindRandom:
		return agent.NewRandomAgent(seed), nil
	case metrics.KindMCTS:
		mcts, err := createMCTS(h, c, seed)
		if err != nil {
			return nil, err
		}
		return agent.NewEvaluationAgent(mcts), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", c.Kind)
}

func createMCTS(h *game.Hex, c metrics.AgentConfig, seed uint64) (*searcher.MCTS, error) {
	oracle, err := NewOracle(h, c.Oracle, c.Rollouts, seed, false)
	if err != nil {
		return nil, err
	}

	options := []searcher.Option{}
	if c.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(c.Episodes))
	}
	if c.Duration > 0 {
		options = append(options, searcher.WithDuration(c.Duration))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(h, oracle, c.Goroutines, options...), nil
}
