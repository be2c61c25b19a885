package agent

import (
	"context"
	"sync"

	"hexzero/experiments/metrics"
	"hexzero/game"
	"hexzero/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	sync.Mutex
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. Moves
// are sampled from the visit distribution sharpened by temperature.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(ctx context.Context, board *game.Board, player game.Player) (int, metrics.SearchMetric, error) {
	policy, err := a.mcts.Search(ctx, board, player, 0, a.temperature)
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}

	a.Lock()
	sampled := a.rng.Float64()
	a.Unlock()
	return Sample(policy, sampled), a.mcts.Metrics(), nil
}

// Sample walks the cumulative distribution up to the uniform draw u.
func Sample(policy []float64, u float64) int {
	cumulative := 0.0
	last := -1
	for action, prob := range policy {
		if prob <= 0 {
			continue
		}
		last = action
		cumulative += prob
		if u < cumulative {
			return action
		}
	}
	return last // Fallback in case of rounding errors
}
